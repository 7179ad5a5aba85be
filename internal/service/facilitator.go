package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wellnesshub/booking/internal/auth"
	"github.com/wellnesshub/booking/internal/model"
)

// FacilitatorService serves the CRM trust domain. The shared channel
// token only authenticates the caller's right to reach these
// operations; every one of them re-checks that the facilitator id
// owns the target entity.
type FacilitatorService struct {
	facilitators FacilitatorStore
	events       EventStore
	bookings     BookingStore
}

// NewFacilitatorService constructs a FacilitatorService.
func NewFacilitatorService(facilitators FacilitatorStore, events EventStore, bookings BookingStore) *FacilitatorService {
	return &FacilitatorService{facilitators: facilitators, events: events, bookings: bookings}
}

// Login verifies facilitator credentials.
func (s *FacilitatorService) Login(ctx context.Context, req model.LoginRequest) (*model.Facilitator, error) {
	f, err := s.facilitators.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("facilitator login: %w", err)
	}
	if !auth.CheckPassword(f.PasswordHash, req.Password) {
		return nil, model.ErrInvalidCredentials
	}
	return f, nil
}

// ListEvents returns every event owned by the facilitator, cancelled
// ones included so the CRM sees full history.
func (s *FacilitatorService) ListEvents(ctx context.Context, facilitatorID string) ([]model.Event, error) {
	if _, err := s.facilitators.GetByID(ctx, facilitatorID); err != nil {
		return nil, err
	}
	return s.events.ListByFacilitator(ctx, facilitatorID)
}

// ListBookings returns bookings for the facilitator's own events only.
func (s *FacilitatorService) ListBookings(ctx context.Context, facilitatorID string) ([]model.BookingDetail, error) {
	if _, err := s.facilitators.GetByID(ctx, facilitatorID); err != nil {
		return nil, err
	}
	return s.bookings.ListByFacilitator(ctx, facilitatorID)
}

// UpdateEvent applies a patch to an owned event. Lowering
// max_participants below the current count is accepted: existing
// attendees stay, the reservation path treats the event as full until
// cancellations bring the count under the new cap.
func (s *FacilitatorService) UpdateEvent(ctx context.Context, facilitatorID, eventID string, patch model.UpdateEventRequest) (*model.Event, error) {
	if patch.Title == nil && patch.Description == nil && patch.MaxParticipants == nil && patch.Price == nil {
		return nil, fmt.Errorf("%w: no fields to update", model.ErrValidation)
	}
	return s.events.Update(ctx, facilitatorID, eventID, patch)
}

// CancelEvent soft-deletes an owned event. Confirmed bookings are
// preserved as historical records.
func (s *FacilitatorService) CancelEvent(ctx context.Context, facilitatorID, eventID string) (*model.Event, error) {
	return s.events.Cancel(ctx, facilitatorID, eventID)
}
