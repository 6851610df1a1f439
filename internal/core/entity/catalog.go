package entity

import (
	"context"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
)

// Catalog is the base type for reference data (manufacturers, medicines).
type Catalog struct {
	Owned

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(ownerID id.ID, name string) Catalog {
	return Catalog{
		Owned:   NewOwned(ownerID),
		Name:    name,
		Version: 1,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// Touch updates the UpdatedAt timestamp and increments version.
func (c *Catalog) Touch() {
	c.Owned.Touch()
	c.Version++
}

// SetVersion updates the version number (used by repository after save).
func (c *Catalog) SetVersion(v int) {
	c.Version = v
}
