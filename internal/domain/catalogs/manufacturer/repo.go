package manufacturer

import (
	"context"

	"medstock/internal/core/id"
	"medstock/internal/domain"
)

// Repository defines the interface for Manufacturer persistence.
type Repository interface {
	domain.CatalogRepository[*Manufacturer]

	// FindByName retrieves the owner's manufacturer by name (case-insensitive).
	FindByName(ctx context.Context, ownerID id.ID, name string) (*Manufacturer, error)
}
