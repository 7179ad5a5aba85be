package model

import "errors"

// Domain error taxonomy. Both trust domains report failures through
// these sentinels; handlers map them to HTTP statuses and machine
// readable kinds with errors.Is.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller lacks ownership of the
	// target entity.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is returned on failed login attempts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrCapacityExceeded is returned when a booking is attempted on a
	// full event.
	ErrCapacityExceeded = errors.New("event is fully booked")

	// ErrDuplicateBooking is returned when a user already holds a
	// confirmed booking for the event.
	ErrDuplicateBooking = errors.New("you have already booked this event")

	// ErrEventInactive is returned when a booking is attempted on a
	// cancelled event.
	ErrEventInactive = errors.New("event is no longer available")

	// ErrInvalidState is returned when an operation is not valid for
	// the entity's current state, e.g. cancelling an already-cancelled
	// booking.
	ErrInvalidState = errors.New("operation not valid in current state")

	// ErrValidation is wrapped around malformed-input failures.
	ErrValidation = errors.New("validation failed")
)
