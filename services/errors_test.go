package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	mysql "github.com/go-sql-driver/mysql"
)

func TestWrapStoreErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"context deadline", context.DeadlineExceeded, ErrTimeout},
		{"wrapped deadline", fmt.Errorf("commit: %w", context.DeadlineExceeded), ErrTimeout},
		{"mysql lock wait timeout", &mysql.MySQLError{Number: 1205}, ErrTimeout},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, ErrStoreUnavailable},
		{"other mysql error", &mysql.MySQLError{Number: 1062}, ErrStoreUnavailable},
		{"generic store error", errors.New("connection refused"), ErrStoreUnavailable},
	}
	for _, tc := range cases {
		got := wrapStoreErr(tc.in)
		if tc.want == nil {
			if got != nil {
				t.Errorf("%s: wrapStoreErr = %v, want nil", tc.name, got)
			}
			continue
		}
		if !errors.Is(got, tc.want) {
			t.Errorf("%s: wrapStoreErr = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestWrapStoreErrPassesEngineErrorsThrough(t *testing.T) {
	engine := []error{
		ErrNotFound,
		ErrTimeout,
		ErrStoreUnavailable,
		&ValidationError{Field: "interval", Reason: "check_in must be before check_out"},
		&ConflictError{RoomID: 1, BookingIDs: []uint{7}},
		&InvalidTransitionError{From: "Completed", To: "Active"},
	}
	for _, in := range engine {
		if got := wrapStoreErr(in); got != in {
			t.Errorf("wrapStoreErr(%v) = %v, want identical error", in, got)
		}
	}
}
