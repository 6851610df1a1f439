// Package manufacturer provides the Manufacturer catalog.
// Manufacturers are the pharma companies whose medicines a pharmacy stocks.
package manufacturer

import (
	"context"

	"medstock/internal/core/entity"
	"medstock/internal/core/id"
)

// Manufacturer represents a pharmaceutical manufacturer.
type Manufacturer struct {
	entity.Catalog

	// ContactPerson is the primary contact name
	ContactPerson string `db:"contact_person" json:"contactPerson,omitempty"`

	// Phone is the primary contact phone
	Phone string `db:"phone" json:"phone,omitempty"`

	// Address is the office address
	Address string `db:"address" json:"address,omitempty"`
}

// NewManufacturer creates a new Manufacturer for an owner.
func NewManufacturer(ownerID id.ID, name string) *Manufacturer {
	return &Manufacturer{
		Catalog: entity.NewCatalog(ownerID, name),
	}
}

// Validate implements entity.Validatable interface.
func (m *Manufacturer) Validate(ctx context.Context) error {
	return m.Catalog.Validate(ctx)
}
