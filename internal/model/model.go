// Package model defines the core domain types for the wellness booking system.
package model

import "time"

// Event represents a bookable wellness session hosted by a facilitator.
type Event struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	EventType           string    `json:"event_type"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Price               float64   `json:"price"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	IsActive            bool      `json:"is_active"`
	FacilitatorID       string    `json:"facilitator_id"`
	CreatedAt           time.Time `json:"created_at"`
}

// Remaining returns the number of open slots.
func (e *Event) Remaining() int {
	return e.MaxParticipants - e.CurrentParticipants
}

// IsFull returns true when no slots remain. A lowered max_participants
// can leave the count above the cap; that still reads as full.
func (e *Event) IsFull() bool {
	return e.CurrentParticipants >= e.MaxParticipants
}

// HasStarted reports whether the event's start time has passed.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.StartTime.After(now)
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a user's reservation against one event. Once cancelled it
// is terminal and kept as a historical record.
type Booking struct {
	ID       string        `json:"id"`
	EventID  string        `json:"event_id"`
	UserID   string        `json:"user_id"`
	Status   BookingStatus `json:"status"`
	BookedAt time.Time     `json:"booked_at"`
}

// BookingDetail is a booking joined with its event, and for the
// facilitator view also the booking user.
type BookingDetail struct {
	Booking
	Event *Event `json:"event,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// UserBookings partitions a user's bookings into upcoming and past.
// Derived view: confirmed bookings for future events are upcoming,
// everything else is past.
type UserBookings struct {
	Upcoming []BookingDetail `json:"upcoming"`
	Past     []BookingDetail `json:"past"`
	Total    int             `json:"total"`
}

// User is an end-user account in the public booking trust domain.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Facilitator is an event host, managed through the CRM trust domain.
type Facilitator struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	PasswordHash   string `json:"-"`
}

// EventFilter narrows event listings. Zero values mean no filtering.
type EventFilter struct {
	EventType     string
	FacilitatorID string
}

// RegisterRequest is the payload for creating a user account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest is the payload for both user and facilitator login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateBookingRequest is the payload for reserving a slot.
type CreateBookingRequest struct {
	EventID string `json:"event_id" validate:"required,uuid4"`
}

// UpdateEventRequest is the CRM patch for an event. Nil fields are
// left untouched.
type UpdateEventRequest struct {
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string  `json:"description,omitempty"`
	MaxParticipants *int     `json:"max_participants,omitempty" validate:"omitempty,min=1"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
}

// ErrorResponse is the JSON error envelope shared by both APIs.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
