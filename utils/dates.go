package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts "2006-01-02" or a full RFC3339 timestamp and returns the
// value normalized to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOnly(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOnly(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
}

// DateOnly strips the time-of-day component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return DateOnly(time.Now().UTC())
}
