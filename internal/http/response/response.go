// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: ошибок, сообщений валидации
// и HTTP-статусов для ошибок бизнес-логики.
package response

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/gymbo-api/internal/lib/apierr"
	"github.com/magabrotheeeer/gymbo-api/internal/lib/sl"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status: статус запроса ("OK" или "Error").
// Поле Error: текст ошибки (опционально, при неуспехе).
// Поле Data: данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s characters long", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters long", err.Field(), err.Param()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

type ctxKey struct{}

// WithLegacyStatus помечает контекст запроса: все ошибки бизнес-логики отдаются
// со статусом 500 и пустым телом.
func WithLegacyStatus(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, true)
}

func legacyStatus(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKey{}).(bool)
	return v
}

// StatusFor возвращает HTTP-статус для ошибки сервиса.
func StatusFor(r *http.Request, err error) int {
	kind := apierr.KindOf(err)
	if kind == apierr.Internal || legacyStatus(r.Context()) {
		return http.StatusInternalServerError
	}

	switch kind {
	case apierr.NotFound, apierr.NoSubscription:
		return http.StatusNotFound
	case apierr.Conflict, apierr.Referenced:
		return http.StatusConflict
	case apierr.Invalid:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ServiceError логирует ошибку сервиса и отправляет ответ с подходящим статусом.
// Ошибки без клиентского сообщения отдаются с текстом fallback.
func ServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, fallback string) {
	log.Error(fallback, sl.Err(err))
	w.WriteHeader(StatusFor(r, err))
	if legacyStatus(r.Context()) {
		return
	}

	msg := apierr.Message(err)
	if msg == "" {
		msg = fallback
	}
	render.JSON(w, r, Error(msg))
}
