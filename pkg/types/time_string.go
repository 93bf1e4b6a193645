package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString время в формате "HH:MM" (время сбора на экскурсию)
type TimeString string

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// NewTimeString создает TimeString из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.TrimSpace(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NormalizeTimeString приводит «сырое» время из внешних источников к "HH:MM"
// Каталог отдает время в разных форматах: "9:5", "09.05", "09:05:00"
// Возвращает пустую строку, если нормализовать не удалось
func NormalizeTimeString(raw string) TimeString {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return ""
	}
	hh, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return ""
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return ""
	}
	return TimeString(fmt.Sprintf("%02d:%02d", hh, mm))
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse("15:04", string(t)); err != nil {
		return ErrInvalidTimeString
	}
	return nil
}

// IsZero проверяет, что время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}
