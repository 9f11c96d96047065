package services

import (
	"time"

	"gorm.io/gorm"

	"hotel-allocation/models"
)

// IntervalEntry is the denormalized (room, booking, interval, status)
// projection used for overlap queries. It is always derived from the bookings
// table inside the caller's transaction and is never a source of truth of its
// own.
type IntervalEntry struct {
	BookingID uint                 `gorm:"column:id"`
	RoomID    uint                 `gorm:"column:room_id"`
	CheckIn   time.Time            `gorm:"column:check_in"`
	CheckOut  time.Time            `gorm:"column:check_out"`
	Status    models.BookingStatus `gorm:"column:status"`
}

// IntervalIndex answers overlap queries for a room. Mutation of the index is
// mutation of the bookings table: inserting a booking, changing its dates, or
// changing its status inside the same transaction updates the projection
// atomically.
type IntervalIndex struct{}

// Overlapping returns the entries for roomID whose half-open interval
// intersects [checkIn, checkOut). Two intervals [a1,a2) and [b1,b2) overlap
// iff a1 < b2 AND b1 < a2. Only statuses in models.ConflictStatuses
// participate; cancelled and completed rows stay in the table but are
// filtered out here. excludeBookingID, when non-zero, drops that booking from
// the result so a modification does not conflict with its own prior interval.
func (IntervalIndex) Overlapping(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) ([]IntervalEntry, error) {
	q := tx.Model(&models.Booking{}).
		Select("id", "room_id", "check_in", "check_out", "status").
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ConflictStatuses).
		Where("check_in < ? AND ? < check_out", checkOut, checkIn).
		Order("check_in ASC")
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var entries []IntervalEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateInterval rewrites a booking's interval in place. Runs in the caller's
// transaction; the caller has already re-checked conflicts for the new dates.
func (IntervalIndex) UpdateInterval(tx *gorm.DB, bookingID uint, checkIn, checkOut time.Time) error {
	return tx.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{"check_in": checkIn, "check_out": checkOut}).Error
}

// UpdateStatus moves a booking between statuses, which adds or removes its
// interval from conflict consideration. Rows are never deleted on
// cancellation.
func (IntervalIndex) UpdateStatus(tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}
