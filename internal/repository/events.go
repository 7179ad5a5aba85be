// Package repository implements all database access for the booking
// system. It uses pgx directly (no ORM); every critical section is a
// transaction holding a row-level lock on the event, so concurrent
// operations on the same event serialize while different events do
// not contend.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellnesshub/booking/internal/model"
)

const eventColumns = `id, title, description, event_type, start_time, end_time,
	price, max_participants, current_participants, is_active, facilitator_id, created_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.EventType, &e.StartTime, &e.EndTime,
		&e.Price, &e.MaxParticipants, &e.CurrentParticipants, &e.IsActive,
		&e.FacilitatorID, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &e, nil
}

// EventRepository handles persistence for events, including the CRM
// mutations that must stay consistent with the reservation path.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// List returns active events ordered by start time, optionally
// filtered by event type and facilitator.
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_active = TRUE`
	args := []any{}
	if filter.EventType != "" {
		args = append(args, filter.EventType)
		query += fmt.Sprintf(" AND event_type = $%d", len(args))
	}
	if filter.FacilitatorID != "" {
		args = append(args, filter.FacilitatorID)
		query += fmt.Sprintf(" AND facilitator_id = $%d", len(args))
	}
	query += " ORDER BY start_time ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListByFacilitator returns all events owned by a facilitator,
// cancelled ones included, ordered by start time.
func (r *EventRepository) ListByFacilitator(ctx context.Context, facilitatorID string) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE facilitator_id = $1 ORDER BY start_time ASC`,
		facilitatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list facilitator events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.EventType, &e.StartTime, &e.EndTime,
			&e.Price, &e.MaxParticipants, &e.CurrentParticipants, &e.IsActive,
			&e.FacilitatorID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or model.ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return scanEvent(r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id,
	))
}

// Update applies a CRM patch to an event owned by the facilitator.
// The event row is locked for the duration of the patch so a capacity
// change never interleaves with a concurrent booking; a new
// max_participants below current_participants is accepted and simply
// makes the event read as full to the reservation path.
func (r *EventRepository) Update(ctx context.Context, facilitatorID, eventID string, patch model.UpdateEventRequest) (*model.Event, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	event, err := lockEvent(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}
	if event.FacilitatorID != facilitatorID {
		err = model.ErrForbidden
		return nil, err
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.MaxParticipants != nil {
		event.MaxParticipants = *patch.MaxParticipants
	}
	if patch.Price != nil {
		event.Price = *patch.Price
	}

	_, err = tx.Exec(ctx,
		`UPDATE events SET title = $2, description = $3, max_participants = $4, price = $5
		 WHERE id = $1`,
		event.ID, event.Title, event.Description, event.MaxParticipants, event.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return event, nil
}

// Cancel soft-deletes an event owned by the facilitator. Existing
// confirmed bookings are untouched; the event just stops accepting
// new ones. Cancelling an already-cancelled event is a no-op ack.
func (r *EventRepository) Cancel(ctx context.Context, facilitatorID, eventID string) (*model.Event, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	event, err := lockEvent(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}
	if event.FacilitatorID != facilitatorID {
		err = model.ErrForbidden
		return nil, err
	}

	if event.IsActive {
		if _, err = tx.Exec(ctx, `UPDATE events SET is_active = FALSE WHERE id = $1`, event.ID); err != nil {
			return nil, fmt.Errorf("cancel event: %w", err)
		}
		event.IsActive = false
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return event, nil
}

// lockEvent reads an event inside tx with a FOR UPDATE row lock.
func lockEvent(ctx context.Context, tx pgx.Tx, eventID string) (*model.Event, error) {
	return scanEvent(tx.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID,
	))
}
