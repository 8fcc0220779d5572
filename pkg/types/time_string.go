package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat возвращается, когда строка времени не соответствует формату "HH:MM"
var ErrInvalidTimeFormat = errors.New("types: invalid time string format")

// TimeString время в формате "HH:MM" (минуты с начала дня в текстовом виде).
// Используется для времени начала/окончания слотов и смен.
// Значения не нормализуются: минуты >= 1440 форматируются как есть ("25:30"),
// переход через полночь не поддерживается и отсекается на уровне валидации слотов.
type TimeString string

// NewTimeString создает TimeString из time.Time (часы и минуты, без секунд)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки с проверкой формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала дня.
// Значения >= 1440 не оборачиваются через полночь.
func NewTimeStringFromMinutes(minutes int) TimeString {
	hours := minutes / 60
	rest := minutes % 60
	return TimeString(fmt.Sprintf("%02d:%02d", hours, rest))
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что строка разбирается как "HH:MM".
// Границы не проверяются: "25:00" считается корректным по формату,
// вызывающая сторона не должна полагаться на неявную валидацию диапазона.
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes возвращает количество минут с начала дня
func (t TimeString) Minutes() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	return hours*60 + minutes, nil
}

// AddMinutes возвращает новое время, сдвинутое на указанное количество минут
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(total + minutes), nil
}

// IsBefore возвращает true, если t строго раньше other.
// Некорректные значения считаются несравнимыми (false).
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a > b
}
