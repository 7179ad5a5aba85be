package handler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wellnesshub/booking/internal/model"
)

// fakeStore backs the handler tests with the same semantics the pgx
// repositories provide, minus the SQL.
type fakeStore struct {
	mu           sync.Mutex
	events       map[string]*model.Event
	bookings     map[string]*model.Booking
	users        map[string]*model.User
	facilitators map[string]*model.Facilitator
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:       make(map[string]*model.Event),
		bookings:     make(map[string]*model.Booking),
		users:        make(map[string]*model.User),
		facilitators: make(map[string]*model.Facilitator),
	}
}

func (f *fakeStore) List(_ context.Context, filter model.EventFilter) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []model.Event
	for _, e := range f.events {
		if !e.IsActive {
			continue
		}
		if filter.EventType != "" && e.EventType != filter.EventType {
			continue
		}
		if filter.FacilitatorID != "" && e.FacilitatorID != filter.FacilitatorID {
			continue
		}
		events = append(events, *e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
	return events, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) ListByFacilitator(_ context.Context, facilitatorID string) ([]model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []model.Event
	for _, e := range f.events {
		if e.FacilitatorID == facilitatorID {
			events = append(events, *e)
		}
	}
	return events, nil
}

func (f *fakeStore) Update(_ context.Context, facilitatorID, eventID string, patch model.UpdateEventRequest) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if e.FacilitatorID != facilitatorID {
		return nil, model.ErrForbidden
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.MaxParticipants != nil {
		e.MaxParticipants = *patch.MaxParticipants
	}
	if patch.Price != nil {
		e.Price = *patch.Price
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) Cancel(_ context.Context, facilitatorID, eventID string) (*model.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if e.FacilitatorID != facilitatorID {
		return nil, model.ErrForbidden
	}
	e.IsActive = false
	cp := *e
	return &cp, nil
}

type fakeBookings struct{ *fakeStore }

func (f fakeBookings) Create(_ context.Context, userID, eventID string, now time.Time) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[eventID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if !e.IsActive {
		return nil, model.ErrEventInactive
	}
	if e.HasStarted(now) {
		return nil, fmt.Errorf("%w: event has already started", model.ErrInvalidState)
	}
	for _, b := range f.bookings {
		if b.EventID == eventID && b.UserID == userID && b.Status == model.BookingConfirmed {
			return nil, model.ErrDuplicateBooking
		}
	}
	if e.IsFull() {
		return nil, model.ErrCapacityExceeded
	}
	e.CurrentParticipants++
	b := &model.Booking{
		ID:       uuid.New().String(),
		EventID:  eventID,
		UserID:   userID,
		Status:   model.BookingConfirmed,
		BookedAt: now,
	}
	f.bookings[b.ID] = b
	cp := *b
	return &cp, nil
}

func (f fakeBookings) Cancel(_ context.Context, userID, bookingID string) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if b.UserID != userID {
		return nil, model.ErrForbidden
	}
	if b.Status != model.BookingConfirmed {
		return nil, fmt.Errorf("%w: booking is already cancelled", model.ErrInvalidState)
	}
	b.Status = model.BookingCancelled
	if e, ok := f.events[b.EventID]; ok && e.CurrentParticipants > 0 {
		e.CurrentParticipants--
	}
	cp := *b
	return &cp, nil
}

func (f fakeBookings) ListByUser(_ context.Context, userID string) ([]model.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var details []model.BookingDetail
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		d := model.BookingDetail{Booking: *b}
		if e, ok := f.events[b.EventID]; ok {
			cp := *e
			d.Event = &cp
		}
		details = append(details, d)
	}
	return details, nil
}

func (f fakeBookings) ListByFacilitator(_ context.Context, facilitatorID string) ([]model.BookingDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var details []model.BookingDetail
	for _, b := range f.bookings {
		e, ok := f.events[b.EventID]
		if !ok || e.FacilitatorID != facilitatorID {
			continue
		}
		d := model.BookingDetail{Booking: *b}
		cp := *e
		d.Event = &cp
		if u, ok := f.users[b.UserID]; ok {
			ucp := *u
			d.User = &ucp
		}
		details = append(details, d)
	}
	return details, nil
}

type fakeUsers struct{ *fakeStore }

func (f fakeUsers) Create(_ context.Context, username, email, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return nil, fmt.Errorf("%w: username or email already taken", model.ErrValidation)
		}
	}
	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeFacilitators struct{ *fakeStore }

func (f fakeFacilitators) GetByUsername(_ context.Context, username string) (*model.Facilitator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fac := range f.facilitators {
		if fac.Username == username {
			cp := *fac
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f fakeFacilitators) GetByID(_ context.Context, id string) (*model.Facilitator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fac, ok := f.facilitators[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *fac
	return &cp, nil
}
