package entity

import (
	"context"
	"time"

	"medstock/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Owned contains common fields for all owner-scoped entities.
// Every catalog record and ledger transaction belongs to exactly one user,
// and every query filters by OwnerID.
type Owned struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// OwnerID is the user who owns this record
	OwnerID id.ID `db:"owner_id" json:"-"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewOwned creates a new Owned base with generated ID and timestamps.
func NewOwned(ownerID id.ID) Owned {
	now := time.Now().UTC()
	return Owned{
		ID:        id.New(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp.
func (o *Owned) Touch() {
	o.UpdatedAt = time.Now().UTC()
}

// BelongsTo reports whether the record is owned by the given user.
func (o *Owned) BelongsTo(ownerID id.ID) bool {
	return o.OwnerID == ownerID
}
