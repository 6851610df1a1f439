// Package medicine provides the Medicine catalog.
// A medicine tracks identity, pricing, shelf life and the current
// quantity on hand. Quantity is only ever changed by recording
// ledger transactions, never by catalog edits.
package medicine

import (
	"context"
	"time"

	"medstock/internal/core/apperror"
	"medstock/internal/core/entity"
	"medstock/internal/core/id"
	"medstock/internal/core/types"
)

// ExpiringWindowDays is the look-ahead window for the "expiring" status.
const ExpiringWindowDays = 30

// ExpiryStatus classifies a medicine by its expiry date.
type ExpiryStatus string

const (
	StatusExpired  ExpiryStatus = "expired"
	StatusExpiring ExpiryStatus = "expiring"
	StatusOK       ExpiryStatus = "ok"
)

// Medicine represents a stocked medicine.
type Medicine struct {
	entity.Catalog

	// Code is the globally unique medicine identifier (e.g. "MED-00123")
	Code string `db:"code" json:"medicineId"`

	// ManufacturerID references the manufacturer catalog (nullable)
	ManufacturerID *id.ID `db:"manufacturer_id" json:"manufacturerId,omitempty"`

	// CostPrice is the purchase price per unit
	CostPrice types.Money `db:"cost_price" json:"costPrice"`

	// MRP is the maximum retail price per unit
	MRP types.Money `db:"mrp" json:"mrp"`

	// MfgDate and ExpDate bound the shelf life
	MfgDate time.Time `db:"mfg_date" json:"mfgDate"`
	ExpDate time.Time `db:"exp_date" json:"expDate"`

	// QuantityOnHand is managed exclusively by ledger transactions
	QuantityOnHand int `db:"quantity_on_hand" json:"quantityOnHand"`
}

// NewMedicine creates a new Medicine for an owner. Quantity starts at zero.
func NewMedicine(ownerID id.ID, name, code string) *Medicine {
	return &Medicine{
		Catalog: entity.NewCatalog(ownerID, name),
		Code:    code,
	}
}

// Validate implements entity.Validatable interface.
func (m *Medicine) Validate(ctx context.Context) error {
	if err := m.Catalog.Validate(ctx); err != nil {
		return err
	}

	if m.Code == "" {
		return apperror.NewFieldValidation("medicine_id", "medicine ID is required")
	}
	if m.CostPrice.IsNegative() {
		return apperror.NewFieldValidation("cost_price", "cost price cannot be negative")
	}
	if m.MRP.IsNegative() {
		return apperror.NewFieldValidation("mrp", "MRP cannot be negative")
	}
	if m.MfgDate.IsZero() {
		return apperror.NewFieldValidation("mfg_date", "manufacturing date is required")
	}
	if m.ExpDate.IsZero() {
		return apperror.NewFieldValidation("exp_date", "expiry date is required")
	}
	if m.ExpDate.Before(m.MfgDate) {
		return apperror.NewFieldValidation("exp_date", "expiry date cannot be before manufacturing date")
	}
	if m.QuantityOnHand < 0 {
		return apperror.NewFieldValidation("quantity_on_hand", "quantity cannot be negative")
	}

	return nil
}

// ExpiryStatusAt classifies the medicine relative to the given date:
// expired when exp_date < today, expiring when within the 30-day window
// (inclusive), ok otherwise. Comparison is by calendar day.
func (m *Medicine) ExpiryStatusAt(today time.Time) ExpiryStatus {
	day := truncateToDay(today)
	exp := truncateToDay(m.ExpDate)

	if exp.Before(day) {
		return StatusExpired
	}
	if !exp.After(day.AddDate(0, 0, ExpiringWindowDays)) {
		return StatusExpiring
	}
	return StatusOK
}

// IsExpiredAt reports whether the medicine is expired on the given date.
func (m *Medicine) IsExpiredAt(today time.Time) bool {
	return m.ExpiryStatusAt(today) == StatusExpired
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
