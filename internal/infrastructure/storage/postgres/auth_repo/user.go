// Package auth_repo provides PostgreSQL implementations for auth repositories.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/domain/auth"
	"medstock/internal/infrastructure/storage/postgres"
)

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txManager *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txManager *postgres.TxManager) *UserRepo {
	return &UserRepo{txManager: txManager}
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	q := r.txManager.GetQuerier(ctx)

	query := `
		INSERT INTO auth_users (
			id, email, password_hash, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("user", "email", user.Email).WithCause(err)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `
		SELECT id, email, password_hash, is_active, created_at, updated_at
		FROM auth_users
		WHERE id = $1
	`

	var user auth.User
	err := q.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Email, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", userID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves user by email. Emails are stored lowercased, but the
// lookup stays case-insensitive for rows imported from elsewhere.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `
		SELECT id, email, password_hash, is_active, created_at, updated_at
		FROM auth_users
		WHERE LOWER(email) = LOWER($1)
	`

	var user auth.User
	err := q.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// Update updates user data.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	q := r.txManager.GetQuerier(ctx)

	query := `
		UPDATE auth_users SET
			email = $2,
			password_hash = $3,
			is_active = $4,
			updated_at = $5
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID.String())
	}

	return nil
}

// ExistsEmail checks if email is already registered (case-insensitive).
func (r *UserRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `SELECT EXISTS(SELECT 1 FROM auth_users WHERE LOWER(email) = LOWER($1))`

	var exists bool
	if err := q.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}

	return exists, nil
}

// Ensure interface compliance
var _ auth.UserRepository = (*UserRepo)(nil)
