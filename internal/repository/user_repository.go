package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/guard-service/internal/domain"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository defines persistence access for gateway users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error

	// FindOrCreateByEmail returns the existing user with the draft's email
	// or atomically creates one from the draft. Safe under concurrent
	// duplicate creation: two racing calls for the same new email resolve
	// to the same row.
	FindOrCreateByEmail(ctx context.Context, draft *domain.User) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, external_id, email, first_name, last_name, role, status,
        permissions, access_level, profile, auth_method, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (external_id, email, first_name, last_name, role, status,
            permissions, access_level, profile, auth_method)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.ExternalID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.Status,
		user.Permissions,
		nullableLevel(user.AccessLevel),
		user.Profile,
		user.AuthMethod,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) FindOrCreateByEmail(ctx context.Context, draft *domain.User) (*domain.User, error) {
	const query = `
        INSERT INTO users (external_id, email, first_name, last_name, role, status,
            permissions, access_level, profile, auth_method)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (email) DO NOTHING
        RETURNING ` + userColumns

	user, err := r.scanOne(r.pool.QueryRow(ctx, query,
		draft.ExternalID,
		draft.Email,
		draft.FirstName,
		draft.LastName,
		draft.Role,
		draft.Status,
		draft.Permissions,
		nullableLevel(draft.AccessLevel),
		draft.Profile,
		draft.AuthMethod,
	))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	// Conflict: another request created the row; fall back to lookup.
	return r.GetByEmail(ctx, draft.Email)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE external_id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, externalID))
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var level *string
	if err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.Status,
		&user.Permissions,
		&level,
		&user.Profile,
		&user.AuthMethod,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if level != nil {
		user.AccessLevel = domain.AccessLevel(*level)
	}
	return &user, nil
}

func nullableLevel(level domain.AccessLevel) *string {
	if level == "" {
		return nil
	}
	s := string(level)
	return &s
}
