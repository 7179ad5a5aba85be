package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellnesshub/booking/internal/auth"
)

type seedFacilitator struct {
	username       string
	password       string
	name           string
	email          string
	specialization string
}

type seedEvent struct {
	title       string
	description string
	eventType   string
	startIn     time.Duration
	duration    time.Duration
	maxPeople   int
	price       float64
	facilitator string // username
}

var demoFacilitators = []seedFacilitator{
	{"priya", "priya123", "Dr. Priya Sharma", "priya@wellness.in", "Mindfulness & Meditation"},
	{"arjun", "arjun123", "Arjun Patel", "arjun@wellness.in", "Yoga & Pranayama"},
	{"kavya", "kavya123", "Kavya Reddy", "kavya@wellness.in", "Sound Healing & Therapy"},
}

var demoEvents = []seedEvent{
	{
		title:       "Morning Meditation Session",
		description: "Start your day with a peaceful guided meditation session at our Rishikesh center. Perfect for beginners and experienced practitioners alike.",
		eventType:   "session",
		startIn:     24*time.Hour + 8*time.Hour,
		duration:    time.Hour,
		maxPeople:   15,
		price:       500,
		facilitator: "priya",
	},
	{
		title:       "Weekend Yoga Retreat - Coorg",
		description: "A transformative 2-day yoga retreat in the hills of Coorg, Karnataka. Includes sattvic meals, accommodation, and multiple yoga sessions.",
		eventType:   "retreat",
		startIn:     7 * 24 * time.Hour,
		duration:    48 * time.Hour,
		maxPeople:   20,
		price:       8500,
		facilitator: "arjun",
	},
	{
		title:       "Sound Bath Healing",
		description: "Experience deep relaxation through the healing vibrations of Tibetan singing bowls and traditional Indian instruments.",
		eventType:   "session",
		startIn:     3*24*time.Hour + 18*time.Hour,
		duration:    90 * time.Minute,
		maxPeople:   12,
		price:       800,
		facilitator: "kavya",
	},
	{
		title:       "Pranayama Workshop",
		description: "Learn powerful breathing techniques from ancient Indian traditions for stress relief, energy, and emotional balance.",
		eventType:   "workshop",
		startIn:     5*24*time.Hour + 10*time.Hour,
		duration:    2 * time.Hour,
		maxPeople:   10,
		price:       1200,
		facilitator: "priya",
	},
}

// Seed inserts demo facilitators and events when the facilitators
// table is empty. No-op otherwise.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM facilitators`).Scan(&count); err != nil {
		return fmt.Errorf("seed: count facilitators: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	ids := make(map[string]string, len(demoFacilitators))

	for _, f := range demoFacilitators {
		hash, err := auth.HashPassword(f.password)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}
		id := uuid.New().String()
		ids[f.username] = id
		_, err = pool.Exec(ctx,
			`INSERT INTO facilitators (id, username, password_hash, name, email, specialization)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, f.username, hash, f.name, f.email, f.specialization,
		)
		if err != nil {
			return fmt.Errorf("seed: insert facilitator %s: %w", f.username, err)
		}
	}

	for _, e := range demoEvents {
		start := now.Add(e.startIn)
		_, err := pool.Exec(ctx,
			`INSERT INTO events (id, title, description, event_type, start_time, end_time,
			                     price, max_participants, current_participants, is_active,
			                     facilitator_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, TRUE, $9, $10)`,
			uuid.New().String(), e.title, e.description, e.eventType,
			start, start.Add(e.duration), e.price, e.maxPeople,
			ids[e.facilitator], now,
		)
		if err != nil {
			return fmt.Errorf("seed: insert event %q: %w", e.title, err)
		}
	}

	return nil
}
