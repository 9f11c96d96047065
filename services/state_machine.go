package services

import "hotel-allocation/models"

// transitions is the single source of truth for the booking lifecycle.
// Completed and Cancelled have no row: they are terminal.
//
// The table gates ordering only. It deliberately does NOT gate temporal
// eligibility — checking in before the check_in date is legal here and is a
// policy decision for the caller, not an engine invariant.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingConfirmed:   {models.BookingActive, models.BookingCancelled},
	models.BookingActive:      {models.BookingCheckingOut, models.BookingCancelled},
	models.BookingCheckingOut: {models.BookingCompleted, models.BookingActive},
}

// IsTerminal reports whether no transition leaves the status.
func IsTerminal(s models.BookingStatus) bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether from -> to appears in the table. Self
// transitions are not legal.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates from -> to and returns the new status, or an
// InvalidTransitionError naming both ends.
func Transition(from, to models.BookingStatus) (models.BookingStatus, error) {
	if !CanTransition(from, to) {
		return from, &InvalidTransitionError{From: string(from), To: string(to)}
	}
	return to, nil
}
