package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wellnesshub/booking/internal/model"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// UserRepository handles persistence for end-user accounts.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Duplicate username or email surfaces as a
// validation failure so the caller gets a client error, not a 500.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%w: username or email already taken", model.ErrValidation)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// GetByUsername returns a user or model.ErrNotFound.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByID returns a user or model.ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// FacilitatorRepository handles persistence for facilitator accounts.
// Facilitators are provisioned by the seed (or operations), never by
// the public API.
type FacilitatorRepository struct {
	db *pgxpool.Pool
}

// NewFacilitatorRepository constructs a FacilitatorRepository.
func NewFacilitatorRepository(db *pgxpool.Pool) *FacilitatorRepository {
	return &FacilitatorRepository{db: db}
}

// GetByUsername returns a facilitator or model.ErrNotFound.
func (r *FacilitatorRepository) GetByUsername(ctx context.Context, username string) (*model.Facilitator, error) {
	var f model.Facilitator
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, name, email, specialization
		 FROM facilitators WHERE username = $1`,
		username,
	).Scan(&f.ID, &f.Username, &f.PasswordHash, &f.Name, &f.Email, &f.Specialization)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get facilitator: %w", err)
	}
	return &f, nil
}

// GetByID returns a facilitator or model.ErrNotFound.
func (r *FacilitatorRepository) GetByID(ctx context.Context, id string) (*model.Facilitator, error) {
	var f model.Facilitator
	err := r.db.QueryRow(ctx,
		`SELECT id, username, password_hash, name, email, specialization
		 FROM facilitators WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.Username, &f.PasswordHash, &f.Name, &f.Email, &f.Specialization)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get facilitator: %w", err)
	}
	return &f, nil
}
