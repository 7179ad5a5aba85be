package service

import (
	"context"
	"fmt"
	"time"

	"github.com/wellnesshub/booking/internal/model"
)

// BookingService orchestrates the user-facing reservation operations.
type BookingService struct {
	bookings BookingStore

	// now is swappable in tests.
	now func() time.Time
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings BookingStore) *BookingService {
	return &BookingService{bookings: bookings, now: time.Now}
}

// Create reserves a slot on an event for the user. The store applies
// the capacity check and increment as one atomic step, so under
// concurrent calls near the last open slot exactly the remaining
// number succeed and the rest fail with model.ErrCapacityExceeded.
func (s *BookingService) Create(ctx context.Context, userID, eventID string) (*model.Booking, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", model.ErrValidation)
	}
	return s.bookings.Create(ctx, userID, eventID, s.now())
}

// Cancel cancels the user's confirmed booking. Cancelling an
// already-cancelled booking reports the true prior state via
// model.ErrInvalidState; idempotent retry handling belongs to clients.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
	if bookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", model.ErrValidation)
	}
	return s.bookings.Cancel(ctx, userID, bookingID)
}

// ListForUser returns the user's bookings partitioned into upcoming
// and past. A booking is upcoming only while it is confirmed and its
// event has not started; cancelled bookings are past regardless of
// the event time.
func (s *BookingService) ListForUser(ctx context.Context, userID string) (*model.UserBookings, error) {
	details, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := &model.UserBookings{
		Upcoming: []model.BookingDetail{},
		Past:     []model.BookingDetail{},
		Total:    len(details),
	}
	for _, d := range details {
		if d.Status == model.BookingConfirmed && d.Event != nil && !d.Event.HasStarted(now) {
			result.Upcoming = append(result.Upcoming, d)
		} else {
			result.Past = append(result.Past, d)
		}
	}
	return result, nil
}
