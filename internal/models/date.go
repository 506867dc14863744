package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout формат даты в JSON (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Date календарная дата без времени и часового пояса.
type Date struct {
	time.Time
}

// NewDate возвращает дату с указанными годом, месяцем и днём.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf возвращает календарную дату момента t в его часовом поясе.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate разбирает дату в формате YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// After сообщает, что d строго позже other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON кодирует дату строкой YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON принимает строку YYYY-MM-DD.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if !strings.HasPrefix(s, `"`) || !strings.HasSuffix(s, `"`) || len(s) < 2 {
		return fmt.Errorf("date must be a string in format %s", DateLayout)
	}
	parsed, err := ParseDate(strings.Trim(s, `"`))
	if err != nil {
		return fmt.Errorf("date must be in format %s: %w", DateLayout, err)
	}
	*d = parsed
	return nil
}
