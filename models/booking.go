package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingStatus is a closed enumeration; the transition table in
// services/state_machine.go is the only place that relates these values.
type BookingStatus string

const (
	BookingConfirmed   BookingStatus = "Confirmed"
	BookingActive      BookingStatus = "Active"
	BookingCheckingOut BookingStatus = "Checking-Out"
	BookingCompleted   BookingStatus = "Completed"
	BookingCancelled   BookingStatus = "Cancelled"
)

// ConflictStatuses are the statuses whose intervals participate in overlap
// queries. Completed and cancelled bookings keep their rows for history but
// no longer occupy the room.
var ConflictStatuses = []BookingStatus{BookingConfirmed, BookingActive, BookingCheckingOut}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomID  uint `gorm:"index;column:room_id;not null" json:"room_id"`
	GuestID uint `gorm:"index;column:guest_id;not null" json:"guest_id"`

	ReferenceCode string        `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	Status        BookingStatus `gorm:"column:status;size:32;index" json:"status"`

	// Calendar dates normalized to midnight UTC. The stay is the half-open
	// interval [CheckIn, CheckOut), so a checkout and a check-in on the same
	// day do not conflict.
	CheckIn  time.Time `gorm:"column:check_in;index" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"check_out"`

	NumberOfGuests int     `gorm:"column:number_of_guests;default:1" json:"number_of_guests"`
	TotalPrice     float64 `gorm:"column:total_price" json:"total_price"`

	// Free-form details supplied by the booking channel (guest names, notes).
	Details datatypes.JSON `gorm:"column:details" json:"details,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
