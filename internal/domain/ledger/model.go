// Package ledger provides the immutable transaction ledger and the stock
// mutation logic around it. Every stock change is the result of recording
// exactly one transaction; transactions are never updated or deleted.
package ledger

import (
	"context"
	"strings"
	"time"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/core/types"
)

// Type is the transaction type. Only canonical values are ever written.
type Type string

const (
	TypeBought Type = "BOUGHT"
	TypeSold   Type = "SOLD"
)

// Legacy type values found in imported ledgers. Recognized when
// classifying stored rows, never accepted as input.
const (
	legacyImport = "IMPORT"
	legacyExport = "EXPORT"
)

// ParseType parses user input into a canonical Type (case-insensitive).
// Legacy aliases are rejected: new transactions must state BOUGHT or SOLD.
func ParseType(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TypeBought):
		return TypeBought, nil
	case string(TypeSold):
		return TypeSold, nil
	default:
		return "", apperror.NewFieldValidation("type", "type must be BOUGHT or SOLD").
			WithDetail("value", s)
	}
}

// Kind classifies a stored transaction type for aggregation.
type Kind int

const (
	KindUnknown Kind = iota
	KindBought
	KindSold
)

// Classify maps a stored type value, including legacy aliases, to its kind.
// Matching is case-insensitive.
func Classify(raw string) Kind {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(TypeBought), legacyImport:
		return KindBought
	case string(TypeSold), legacyExport:
		return KindSold
	default:
		return KindUnknown
	}
}

// Transaction is one immutable ledger entry.
type Transaction struct {
	ID          id.ID       `db:"id" json:"id"`
	OwnerID     id.ID       `db:"owner_id" json:"-"`
	MedicineID  id.ID       `db:"medicine_id" json:"medicineId"`
	Type        Type        `db:"type" json:"type"`
	PartnerName string      `db:"partner_name" json:"partnerName"`
	UnitPrice   types.Money `db:"unit_price" json:"unitPrice"`
	Quantity    int         `db:"quantity" json:"quantity"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`

	// MedicineName is populated by list queries (joined, not stored here)
	MedicineName string `db:"medicine_name" json:"medicineName,omitempty"`
}

// NewTransaction creates a ledger entry.
func NewTransaction(ownerID, medicineID id.ID, ttype Type) *Transaction {
	return &Transaction{
		ID:         id.New(),
		OwnerID:    ownerID,
		MedicineID: medicineID,
		Type:       ttype,
		CreatedAt:  time.Now().UTC(),
	}
}

// TotalAmount returns quantity * unit price.
func (t *Transaction) TotalAmount() types.Money {
	return t.UnitPrice.Mul(types.NewMoneyFromInt(int64(t.Quantity)))
}

// Kind classifies the stored type for aggregation.
func (t *Transaction) Kind() Kind {
	return Classify(string(t.Type))
}

// Validate implements entity.Validatable.
func (t *Transaction) Validate(ctx context.Context) error {
	if t.Type != TypeBought && t.Type != TypeSold {
		return apperror.NewFieldValidation("type", "type must be BOUGHT or SOLD").
			WithDetail("value", string(t.Type))
	}
	if id.IsNil(t.MedicineID) {
		return apperror.NewFieldValidation("medicine_id", "medicine is required")
	}
	if strings.TrimSpace(t.PartnerName) == "" {
		return apperror.NewFieldValidation("partner_name", "partner name is required")
	}
	if t.Quantity <= 0 {
		return apperror.NewFieldValidation("quantity", "quantity must be positive")
	}
	if t.UnitPrice.IsNegative() {
		return apperror.NewFieldValidation("unit_price", "unit price cannot be negative")
	}
	return nil
}

// Draft carries the raw input for recording a transaction.
type Draft struct {
	MedicineID  id.ID       `json:"medicineId"`
	Type        string      `json:"type"`
	PartnerName string      `json:"partnerName"`
	UnitPrice   types.Money `json:"unitPrice"`
	Quantity    int         `json:"quantity"`
}
