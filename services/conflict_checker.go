package services

import (
	"time"

	"gorm.io/gorm"
)

// ConflictChecker decides whether a candidate interval may occupy a room.
// It must run inside the same transaction as the mutation that follows it —
// a check in one transaction and an insert in another is a check-then-act
// race and loses the no-double-booking invariant.
type ConflictChecker struct {
	Index IntervalIndex
}

// Check returns nil when [checkIn, checkOut) is free for roomID, or a
// *ConflictError listing every overlapping booking. excludeBookingID is set
// when modifying an existing booking's dates.
func (cc ConflictChecker) Check(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) error {
	entries, err := cc.Index.Overlapping(tx, roomID, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.BookingID)
	}
	return &ConflictError{RoomID: roomID, BookingIDs: ids}
}
