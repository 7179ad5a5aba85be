// Package database provides PostgreSQL connection management, schema
// bootstrap, and demo seeding.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellnesshub/booking/internal/config"
)

// NewPool creates and validates a pgxpool connection pool.
// It retries up to 5 times to accommodate containers starting up.
func NewPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	// Sensible pool defaults for a small service.
	poolCfg.MaxConns = 20
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= 5; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			pingErr := pool.Ping(ctx)
			if pingErr == nil {
				return pool, nil
			}
			pool.Close()
			err = fmt.Errorf("ping: %w", pingErr)
		}
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("connect to postgres: %w", err)
}

// Migrate creates the schema when absent. The partial unique index on
// confirmed bookings backs the one-confirmed-booking-per-user-per-event
// invariant at the store level; the non-negative participant check
// backs the counter invariant.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS facilitators (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			specialization TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			event_type TEXT NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			price NUMERIC(10,2) NOT NULL DEFAULT 0 CHECK (price >= 0),
			max_participants INT NOT NULL CHECK (max_participants > 0),
			current_participants INT NOT NULL DEFAULT 0 CHECK (current_participants >= 0),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			facilitator_id UUID NOT NULL REFERENCES facilitators(id),
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id UUID PRIMARY KEY,
			event_id UUID NOT NULL REFERENCES events(id),
			user_id UUID NOT NULL REFERENCES users(id),
			status TEXT NOT NULL,
			booked_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS bookings_confirmed_unique
			ON bookings(event_id, user_id) WHERE status = 'confirmed'`,
		`CREATE INDEX IF NOT EXISTS bookings_user_idx ON bookings(user_id)`,
		`CREATE INDEX IF NOT EXISTS bookings_event_idx ON bookings(event_id)`,
		`CREATE INDEX IF NOT EXISTS events_facilitator_idx ON events(facilitator_id)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
