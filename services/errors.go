package services

import (
	"context"
	"errors"
	"fmt"

	mysql "github.com/go-sql-driver/mysql"
)

var (
	ErrNotFound         = errors.New("not_found")
	ErrTimeout          = errors.New("timeout")
	ErrStoreUnavailable = errors.New("store_unavailable")
)

// ValidationError rejects a request before any transaction is opened.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// ConflictError carries the bookings whose intervals overlap the requested
// one. Always recoverable: the caller picks another interval.
type ConflictError struct {
	RoomID     uint
	BookingIDs []uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room %d already booked (conflicts: %v)", e.RoomID, e.BookingIDs)
}

// InvalidTransitionError is a caller error; it is never retried. Op is set
// when an operation other than a status change (date modification) was
// attempted from a state that forbids it.
type InvalidTransitionError struct {
	From, To string
	Op       string
}

func (e *InvalidTransitionError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s not allowed while %s", e.Op, e.From)
	}
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// wrapStoreErr maps driver and context failures onto the engine taxonomy.
// Engine errors pass through untouched so callers can errors.As on them.
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	var ce *ConflictError
	var ve *ValidationError
	var te *InvalidTransitionError
	if errors.As(err, &ce) || errors.As(err, &ve) || errors.As(err, &te) ||
		errors.Is(err, ErrNotFound) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1205: // lock wait timeout
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		case 1213: // deadlock, victim rolled back
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
