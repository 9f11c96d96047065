package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"hotel-allocation/models"
)

// RoomStatusSynchronizer recomputes a room's derived status after any booking
// mutation touching it. It only ever writes Occupied or Vacant: Cleaning and
// Maintenance belong to the housekeeping workflow and are left untouched
// (sticky override). Housekeeping learns about checkouts from the
// booking.transitioned event, not from this synchronizer.
type RoomStatusSynchronizer struct{}

// Sync runs in the caller's transaction and returns the room's status after
// derivation.
func (RoomStatusSynchronizer) Sync(tx *gorm.DB, roomID uint, today time.Time) (models.RoomStatus, error) {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if room.Status.Overridden() {
		return room.Status, nil
	}

	var active int64
	err := tx.Model(&models.Booking{}).
		Where("room_id = ? AND status = ?", roomID, models.BookingActive).
		Where("check_in <= ? AND ? < check_out", today, today).
		Count(&active).Error
	if err != nil {
		return "", err
	}

	derived := models.RoomVacant
	if active > 0 {
		derived = models.RoomOccupied
	}
	if derived == room.Status {
		return derived, nil
	}
	if err := tx.Model(&models.Room{}).Where("id = ?", roomID).Update("status", derived).Error; err != nil {
		return "", err
	}
	return derived, nil
}
