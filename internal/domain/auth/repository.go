// Package auth provides authentication and profile domain logic.
package auth

import (
	"context"

	"medstock/internal/core/id"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail retrieves user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update updates user data.
	Update(ctx context.Context, user *User) error

	// ExistsEmail checks if email is already registered (case-insensitive).
	ExistsEmail(ctx context.Context, email string) (bool, error)
}

// ProfileRepository defines profile storage operations.
type ProfileRepository interface {
	// Create creates a profile.
	Create(ctx context.Context, profile *Profile) error

	// GetByUserID retrieves the profile of a user.
	GetByUserID(ctx context.Context, userID id.ID) (*Profile, error)

	// Update updates profile data.
	Update(ctx context.Context, profile *Profile) error
}

// DocumentStore persists uploaded licensing documents.
// The local-disk implementation lives in infrastructure/storage/files.
type DocumentStore interface {
	// Save stores an upload under the user's directory and returns the stored path.
	Save(ctx context.Context, userID id.ID, kind string, upload *Upload) (string, error)

	// Remove deletes a stored document. Missing files are not an error.
	Remove(ctx context.Context, path string) error
}
