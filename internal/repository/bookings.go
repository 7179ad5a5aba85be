package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellnesshub/booking/internal/model"
)

// BookingRepository handles persistence for bookings, including the
// capacity-enforcing reservation critical section.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create performs a concurrency-safe reservation inside a serialized
// transaction.
//
// The naive read-then-write sequence (read counter, compare, write
// counter+1) lets two transactions observe the same free slot and both
// book it. Instead, the event row is locked with SELECT ... FOR UPDATE
// the moment the transaction starts; every other reservation or CRM
// mutation for this event blocks until this one commits or rolls back.
// All preconditions (active, not started, no duplicate, capacity) are
// evaluated under that lock, and the increment is a conditional update
// guarded by current_participants < max_participants so the commit can
// never push the counter past the cap.
func (r *BookingRepository) Create(ctx context.Context, userID, eventID string, now time.Time) (*model.Booking, error) {
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

	if !event.IsActive {
		err = model.ErrEventInactive
		return nil, err
	}
	if event.HasStarted(now) {
		err = fmt.Errorf("%w: event has already started", model.ErrInvalidState)
		return nil, err
	}

	var dupCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE event_id = $1 AND user_id = $2 AND status = $3`,
		eventID, userID, model.BookingConfirmed,
	).Scan(&dupCount)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if dupCount > 0 {
		err = model.ErrDuplicateBooking
		return nil, err
	}

	if event.IsFull() {
		err = model.ErrCapacityExceeded
		return nil, err
	}

	// Conditional form keeps the capacity invariant even if the guard
	// above is ever bypassed.
	tag, err := tx.Exec(ctx,
		`UPDATE events SET current_participants = current_participants + 1
		 WHERE id = $1 AND current_participants < max_participants`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("increment participants: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = model.ErrCapacityExceeded
		return nil, err
	}

	booking := &model.Booking{
		ID:       uuid.New().String(),
		EventID:  eventID,
		UserID:   userID,
		Status:   model.BookingConfirmed,
		BookedAt: now.UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, event_id, user_id, status, booked_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		booking.ID, booking.EventID, booking.UserID, booking.Status, booking.BookedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return booking, nil
}

// Cancel flips a confirmed booking to cancelled and decrements the
// event counter in the same transaction, so no reader can ever see one
// side applied without the other. Cancelled is terminal: a second
// cancel reports model.ErrInvalidState rather than a silent no-op.
func (r *BookingRepository) Cancel(ctx context.Context, userID, bookingID string) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var b model.Booking
	err = tx.QueryRow(ctx,
		`SELECT id, event_id, user_id, status, booked_at FROM bookings WHERE id = $1 FOR UPDATE`,
		bookingID,
	).Scan(&b.ID, &b.EventID, &b.UserID, &b.Status, &b.BookedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = model.ErrNotFound
		} else {
			err = fmt.Errorf("lock booking row: %w", err)
		}
		return nil, err
	}

	if b.UserID != userID {
		err = model.ErrForbidden
		return nil, err
	}
	if b.Status != model.BookingConfirmed {
		err = fmt.Errorf("%w: booking is already cancelled", model.ErrInvalidState)
		return nil, err
	}

	// Lock the event row too so the decrement serializes with
	// concurrent reservations on the same event.
	if _, err = lockEvent(ctx, tx, b.EventID); err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx,
		`UPDATE bookings SET status = $2 WHERE id = $1`,
		b.ID, model.BookingCancelled,
	); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if _, err = tx.Exec(ctx,
		`UPDATE events SET current_participants = current_participants - 1
		 WHERE id = $1 AND current_participants > 0`,
		b.EventID,
	); err != nil {
		return nil, fmt.Errorf("decrement participants: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	b.Status = model.BookingCancelled
	return &b, nil
}

// ListByUser returns all of a user's bookings, most recent first, each
// joined with its event so callers can partition on start time.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]model.BookingDetail, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.event_id, b.user_id, b.status, b.booked_at,
		        e.id, e.title, e.description, e.event_type, e.start_time, e.end_time,
		        e.price, e.max_participants, e.current_participants, e.is_active,
		        e.facilitator_id, e.created_at
		 FROM bookings b
		 JOIN events e ON e.id = b.event_id
		 WHERE b.user_id = $1
		 ORDER BY b.booked_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	defer rows.Close()

	var details []model.BookingDetail
	for rows.Next() {
		var d model.BookingDetail
		var e model.Event
		if err := rows.Scan(
			&d.ID, &d.EventID, &d.UserID, &d.Status, &d.BookedAt,
			&e.ID, &e.Title, &e.Description, &e.EventType, &e.StartTime, &e.EndTime,
			&e.Price, &e.MaxParticipants, &e.CurrentParticipants, &e.IsActive,
			&e.FacilitatorID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		d.Event = &e
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListByFacilitator returns bookings for events owned by the
// facilitator only. The ownership filter is part of the query, not a
// caller responsibility, so the CRM path can never leak another
// facilitator's attendees.
func (r *BookingRepository) ListByFacilitator(ctx context.Context, facilitatorID string) ([]model.BookingDetail, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.event_id, b.user_id, b.status, b.booked_at,
		        e.id, e.title, e.description, e.event_type, e.start_time, e.end_time,
		        e.price, e.max_participants, e.current_participants, e.is_active,
		        e.facilitator_id, e.created_at,
		        u.id, u.username, u.email, u.created_at
		 FROM bookings b
		 JOIN events e ON e.id = b.event_id
		 JOIN users u ON u.id = b.user_id
		 WHERE e.facilitator_id = $1
		 ORDER BY b.booked_at DESC`,
		facilitatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("list facilitator bookings: %w", err)
	}
	defer rows.Close()

	var details []model.BookingDetail
	for rows.Next() {
		var d model.BookingDetail
		var e model.Event
		var u model.User
		if err := rows.Scan(
			&d.ID, &d.EventID, &d.UserID, &d.Status, &d.BookedAt,
			&e.ID, &e.Title, &e.Description, &e.EventType, &e.StartTime, &e.EndTime,
			&e.Price, &e.MaxParticipants, &e.CurrentParticipants, &e.IsActive,
			&e.FacilitatorID, &e.CreatedAt,
			&u.ID, &u.Username, &u.Email, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		d.Event = &e
		d.User = &u
		details = append(details, d)
	}
	return details, rows.Err()
}
