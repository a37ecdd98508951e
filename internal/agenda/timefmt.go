package agenda

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NormalizeTime приводит время из API (HH:MM:SS) к формату сетки (HH:MM)
func NormalizeTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// ExpandTime приводит время сетки (HH:MM) к формату API (HH:MM:SS)
func ExpandTime(t string) string {
	if len(t) == 5 {
		return t + ":00"
	}
	return t
}

// ParseDate проверяет дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// ParseSlotTime проверяет время в формате HH:MM
func ParseSlotTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, NormalizeTime(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

// ShiftDate сдвигает дату на days дней
func ShiftDate(date string, days int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, days).Format(DateLayout), nil
}
