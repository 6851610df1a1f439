package medicine

import (
	"context"
	"time"

	"medstock/internal/core/id"
	"medstock/internal/domain"
)

// ExpiryCounts aggregates medicines per expiry bucket for the dashboard.
type ExpiryCounts struct {
	Expired  int `json:"expired"`
	Expiring int `json:"expiring"`
	OK       int `json:"ok"`
	Total    int `json:"total"`
}

// Repository defines the interface for Medicine persistence.
type Repository interface {
	domain.CatalogRepository[*Medicine]

	// FindByCode retrieves a medicine by its code.
	// Codes are globally unique across all owners.
	FindByCode(ctx context.Context, code string) (*Medicine, error)

	// GetForUpdate retrieves the owner's medicine with a row lock.
	// Used by the ledger to serialize concurrent stock mutations.
	GetForUpdate(ctx context.Context, ownerID, medicineID id.ID) (*Medicine, error)

	// UpdateQuantity sets quantity_on_hand. Must run inside the same
	// transaction that took the row lock.
	UpdateQuantity(ctx context.Context, medicineID id.ID, quantity int) error

	// CountByExpiry returns expiry bucket counts for the owner's medicines,
	// optionally narrowed by a search term.
	CountByExpiry(ctx context.Context, ownerID id.ID, today time.Time, search string) (ExpiryCounts, error)

	// ListAll retrieves all of the owner's medicines without pagination.
	// Used by the reporting aggregator.
	ListAll(ctx context.Context, ownerID id.ID) ([]Medicine, error)
}
