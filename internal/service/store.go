// Package service implements business logic and orchestration between
// HTTP handlers and the repository layer. Services depend on narrow
// store interfaces; production wiring passes the pgx repositories.
package service

import (
	"context"
	"time"

	"github.com/wellnesshub/booking/internal/model"
)

// EventStore is the persistence surface the services need for events.
type EventStore interface {
	List(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	ListByFacilitator(ctx context.Context, facilitatorID string) ([]model.Event, error)
	Update(ctx context.Context, facilitatorID, eventID string, patch model.UpdateEventRequest) (*model.Event, error)
	Cancel(ctx context.Context, facilitatorID, eventID string) (*model.Event, error)
}

// BookingStore is the persistence surface for bookings. Create and
// Cancel are atomic: the capacity check-and-increment and the status
// flip-and-decrement each commit or fail as a unit.
type BookingStore interface {
	Create(ctx context.Context, userID, eventID string, now time.Time) (*model.Booking, error)
	Cancel(ctx context.Context, userID, bookingID string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.BookingDetail, error)
	ListByFacilitator(ctx context.Context, facilitatorID string) ([]model.BookingDetail, error)
}

// UserStore is the persistence surface for end-user accounts.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// FacilitatorStore is the persistence surface for facilitator accounts.
type FacilitatorStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Facilitator, error)
	GetByID(ctx context.Context, id string) (*model.Facilitator, error)
}
