package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date format used throughout.
const DateLayout = "2006-01-02"

// TimeLayout is the wall-clock format for meeting start/end times.
const TimeLayout = "15:04"

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves an English weekday name (case-insensitive) to a
// time.Weekday. An unrecognized name is a validation error, never an
// empty calendar.
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weekday %q (expected monday..sunday)", ErrValidation, name)
	}
	return wd, nil
}

// DateOnly truncates t to midnight UTC, keeping only the calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// ParseDate parses a required YYYY-MM-DD date with a field-aware error.
func ParseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: invalid date %q (expected YYYY-MM-DD)", ErrValidation, field, value)
	}
	return t, nil
}

// ParseOptionalDate parses an optional YYYY-MM-DD date; empty means nil.
func ParseOptionalDate(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDate(*value, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ValidateClockTime checks an optional HH:MM wall-clock string.
func ValidateClockTime(value, field string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(TimeLayout, value); err != nil {
		return fmt.Errorf("%w: %s: invalid time %q (expected HH:MM)", ErrValidation, field, value)
	}
	return nil
}
