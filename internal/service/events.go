package service

import (
	"context"
	"fmt"

	"github.com/wellnesshub/booking/internal/model"
)

// EventService serves the public read-only event views.
type EventService struct {
	events EventStore
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

// List returns active events matching the filter. Read-only: listing
// never touches participant counts.
func (s *EventService) List(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	return s.events.List(ctx, filter)
}

// Get returns a single event by ID, active or not.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: event id is required", model.ErrValidation)
	}
	return s.events.GetByID(ctx, id)
}
