package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wellnesshub/booking/internal/model"
)

// memStore is an in-memory implementation of the store interfaces
// with the same semantics as the pgx repositories: one lock guards
// every critical section, so the capacity check-and-increment and the
// cancel flip-and-decrement are atomic.
type memStore struct {
	mu           sync.Mutex
	events       map[string]*model.Event
	bookings     map[string]*model.Booking
	users        map[string]*model.User
	facilitators map[string]*model.Facilitator
}

func newMemStore() *memStore {
	return &memStore{
		events:       make(map[string]*model.Event),
		bookings:     make(map[string]*model.Booking),
		users:        make(map[string]*model.User),
		facilitators: make(map[string]*model.Facilitator),
	}
}

func (m *memStore) addFacilitator(f model.Facilitator) *model.Facilitator {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	m.facilitators[f.ID] = &f
	return &f
}

func (m *memStore) addEvent(e model.Event) *model.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	m.events[e.ID] = &e
	return &e
}

func (m *memStore) addUser(u model.User) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	m.users[u.ID] = &u
	return &u
}

func (m *memStore) eventCount(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[id].CurrentParticipants
}

// ─── EventStore ───────────────────────────────────────────────────────────────

func (m *memStore) List(_ context.Context, filter model.EventFilter) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []model.Event
	for _, e := range m.events {
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

func (m *memStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memStore) ListByFacilitator(_ context.Context, facilitatorID string) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []model.Event
	for _, e := range m.events {
		if e.FacilitatorID == facilitatorID {
			events = append(events, *e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartTime.Before(events[j].StartTime) })
	return events, nil
}

func (m *memStore) Update(_ context.Context, facilitatorID, eventID string, patch model.UpdateEventRequest) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
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

func (m *memStore) Cancel(_ context.Context, facilitatorID, eventID string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
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

// ─── BookingStore ─────────────────────────────────────────────────────────────

func (m *memStore) Create(_ context.Context, userID, eventID string, now time.Time) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return nil, model.ErrNotFound
	}
	if !e.IsActive {
		return nil, model.ErrEventInactive
	}
	if e.HasStarted(now) {
		return nil, fmt.Errorf("%w: event has already started", model.ErrInvalidState)
	}
	for _, b := range m.bookings {
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
	m.bookings[b.ID] = b
	cp := *b
	return &cp, nil
}

func (m *memStore) CancelBooking(_ context.Context, userID, bookingID string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
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
	if e, ok := m.events[b.EventID]; ok && e.CurrentParticipants > 0 {
		e.CurrentParticipants--
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var details []model.BookingDetail
	for _, b := range m.bookings {
		if b.UserID != userID {
			continue
		}
		d := model.BookingDetail{Booking: *b}
		if e, ok := m.events[b.EventID]; ok {
			cp := *e
			d.Event = &cp
		}
		details = append(details, d)
	}
	return details, nil
}

func (m *memStore) ListBookingsByFacilitator(_ context.Context, facilitatorID string) ([]model.BookingDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var details []model.BookingDetail
	for _, b := range m.bookings {
		e, ok := m.events[b.EventID]
		if !ok || e.FacilitatorID != facilitatorID {
			continue
		}
		d := model.BookingDetail{Booking: *b}
		ecp := *e
		d.Event = &ecp
		if u, ok := m.users[b.UserID]; ok {
			ucp := *u
			d.User = &ucp
		}
		details = append(details, d)
	}
	return details, nil
}

// ─── UserStore ────────────────────────────────────────────────────────────────

func (m *memStore) CreateUser(_ context.Context, username, email, passwordHash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
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
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// ─── FacilitatorStore ─────────────────────────────────────────────────────────

func (m *memStore) GetFacilitatorByUsername(_ context.Context, username string) (*model.Facilitator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.facilitators {
		if f.Username == username {
			cp := *f
			return &cp, nil
		}
	}
	return nil, model.ErrNotFound
}

func (m *memStore) GetFacilitatorByID(_ context.Context, id string) (*model.Facilitator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.facilitators[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

// Interface adapters: the store interfaces use overlapping method
// names (Create, Cancel, GetByUsername, ListByFacilitator), so
// memStore exposes each
// surface through a thin view.

type memBookings struct{ *memStore }

func (m memBookings) Create(ctx context.Context, userID, eventID string, now time.Time) (*model.Booking, error) {
	return m.memStore.Create(ctx, userID, eventID, now)
}

func (m memBookings) Cancel(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
	return m.memStore.CancelBooking(ctx, userID, bookingID)
}

func (m memBookings) ListByFacilitator(ctx context.Context, facilitatorID string) ([]model.BookingDetail, error) {
	return m.memStore.ListBookingsByFacilitator(ctx, facilitatorID)
}

type memUsers struct{ *memStore }

func (m memUsers) Create(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	return m.memStore.CreateUser(ctx, username, email, passwordHash)
}

func (m memUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.memStore.GetUserByUsername(ctx, username)
}

func (m memUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	return m.memStore.GetUserByID(ctx, id)
}

type memFacilitators struct{ *memStore }

func (m memFacilitators) GetByUsername(ctx context.Context, username string) (*model.Facilitator, error) {
	return m.memStore.GetFacilitatorByUsername(ctx, username)
}

func (m memFacilitators) GetByID(ctx context.Context, id string) (*model.Facilitator, error) {
	return m.memStore.GetFacilitatorByID(ctx, id)
}

var (
	_ EventStore       = (*memStore)(nil)
	_ BookingStore     = memBookings{}
	_ UserStore        = memUsers{}
	_ FacilitatorStore = memFacilitators{}
)
