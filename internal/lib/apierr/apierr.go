// Package apierr описывает ошибки бизнес-логики с признаком вида (Kind).
//
// Сервисы возвращают *Error, а HTTP-слой по виду ошибки выбирает код ответа.
// Сообщение Msg предназначено для клиента, обёрнутая ошибка Err нужна только для логов.
package apierr

import (
	"errors"
	"fmt"
)

// Kind вид ошибки бизнес-логики.
type Kind int

const (
	// Internal непредвиденный сбой (хранилище, сеть и т.п.).
	Internal Kind = iota
	// NotFound запись с указанным идентификатором или ключом не найдена.
	NotFound
	// NoSubscription у пользователя нет активного плана.
	NoSubscription
	// Conflict нарушено ограничение уникальности.
	Conflict
	// Referenced запись нельзя удалить, на неё ссылаются другие записи.
	Referenced
	// Invalid входные данные не прошли проверку.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case NoSubscription:
		return "no_subscription"
	case Conflict:
		return "conflict"
	case Referenced:
		return "referenced"
	case Invalid:
		return "invalid"
	default:
		return "internal"
	}
}

// Error ошибка бизнес-логики.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New создаёт ошибку заданного вида с форматированным сообщением.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap создаёт ошибку заданного вида, сохраняя причину.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf возвращает вид ошибки. Для ошибок не из этого пакета возвращает Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message возвращает клиентское сообщение ошибки или пустую строку.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}

// Is сообщает, относится ли ошибка к указанному виду.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
