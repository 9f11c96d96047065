package models

import (
	"gorm.io/gorm"
)

// RoomStatus is a closed enumeration. Occupied and Vacant are derived from the
// booking set by the status synchronizer; Maintenance and Cleaning are set by
// the housekeeping workflow and override derivation until housekeeping clears
// them.
type RoomStatus string

const (
	RoomVacant      RoomStatus = "Vacant"
	RoomOccupied    RoomStatus = "Occupied"
	RoomCleaning    RoomStatus = "Cleaning"
	RoomMaintenance RoomStatus = "Maintenance"
)

// Overridden reports whether the status is a housekeeping override the engine
// must not touch.
func (s RoomStatus) Overridden() bool {
	return s == RoomCleaning || s == RoomMaintenance
}

type Room struct {
	gorm.Model

	// Nullable so a room can be created before its type is assigned.
	RoomTypeID *uint `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`

	Status RoomStatus `json:"status" gorm:"column:status;size:32;default:Vacant"`

	Price        float64 `json:"price"`
	MaxOccupancy int     `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description  string  `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}

// Rooms are never hard-deleted while bookings reference them; gorm's soft
// delete acts as the retirement flag, and retired rooms drop out of every
// engine query.
