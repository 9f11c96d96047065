// Package events carries the engine's outbound lifecycle events. Events are
// produced as plain values inside an allocation transaction and handed to a
// Publisher only after the transaction outcome is known — never as in-process
// callbacks that could observe uncommitted state.
package events

import (
	"time"

	"github.com/google/uuid"

	"hotel-allocation/models"
)

const (
	TypeBookingCreated          = "booking.created"
	TypeBookingTransitioned     = "booking.transitioned"
	TypeBookingConflictRejected = "booking.conflict_rejected"
)

// Event is the wire shape consumed by housekeeping and notification
// subscribers. From/To are set only on booking.transitioned.
type Event struct {
	ID         string               `json:"id"`
	Type       string               `json:"type"`
	BookingID  uint                 `json:"booking_id"`
	RoomID     uint                 `json:"room_id"`
	From       models.BookingStatus `json:"from,omitempty"`
	To         models.BookingStatus `json:"to,omitempty"`
	OccurredAt time.Time            `json:"occurred_at"`
}

func BookingCreated(bookingID, roomID uint) Event {
	return newEvent(TypeBookingCreated, bookingID, roomID)
}

func BookingTransitioned(bookingID, roomID uint, from, to models.BookingStatus) Event {
	e := newEvent(TypeBookingTransitioned, bookingID, roomID)
	e.From = from
	e.To = to
	return e
}

// BookingConflictRejected is emitted after a create or modify lost the room
// to an overlapping booking. bookingID is zero for rejected creations.
func BookingConflictRejected(bookingID, roomID uint) Event {
	return newEvent(TypeBookingConflictRejected, bookingID, roomID)
}

func newEvent(typ string, bookingID, roomID uint) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		BookingID:  bookingID,
		RoomID:     roomID,
		OccurredAt: time.Now().UTC(),
	}
}
