package utils

import (
	"testing"
	"time"
)

func d(t *testing.T, s string) time.Time {
	t.Helper()
	out, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return out
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	if got := d(t, "2025-01-10"); !got.Equal(want) {
		t.Errorf("plain date = %v, want %v", got, want)
	}
	// RFC3339 input collapses to the calendar date
	if got := d(t, "2025-01-10T15:04:05+07:00"); !got.Equal(want) {
		t.Errorf("rfc3339 date = %v, want %v", got, want)
	}
	if _, err := ParseDate("10/01/2025"); err == nil {
		t.Error("expected error for unsupported layout")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2025, 1, 10, 23, 59, 1, 500, time.UTC)
	want := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	if got := DateOnly(in); !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
}
