package dto

import (
	"time"

	"medstock/internal/core/id"
	"medstock/internal/core/types"
	"medstock/internal/domain/ledger"
)

// --- Request DTOs ---

// RecordTransactionRequest is the request body for recording a transaction.
type RecordTransactionRequest struct {
	MedicineID  string      `json:"medicineId" binding:"required"`
	Type        string      `json:"type" binding:"required"`
	PartnerName string      `json:"partnerName" binding:"required"`
	UnitPrice   types.Money `json:"unitPrice"`
	Quantity    int         `json:"quantity" binding:"required"`
}

// ToDraft converts the request to a ledger draft.
func (r *RecordTransactionRequest) ToDraft() (ledger.Draft, error) {
	medicineID, err := id.Parse(r.MedicineID)
	if err != nil {
		return ledger.Draft{}, err
	}
	return ledger.Draft{
		MedicineID:  medicineID,
		Type:        r.Type,
		PartnerName: r.PartnerName,
		UnitPrice:   r.UnitPrice,
		Quantity:    r.Quantity,
	}, nil
}

// --- Response DTOs ---

// TransactionResponse is the response body for a ledger transaction.
type TransactionResponse struct {
	ID           string      `json:"id"`
	MedicineID   string      `json:"medicineId"`
	MedicineName string      `json:"medicineName,omitempty"`
	Type         string      `json:"type"`
	PartnerName  string      `json:"partnerName"`
	UnitPrice    types.Money `json:"unitPrice"`
	Quantity     int         `json:"quantity"`
	Total        types.Money `json:"total"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// FromTransaction creates response DTO from a ledger entry.
func FromTransaction(t *ledger.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID.String(),
		MedicineID:   t.MedicineID.String(),
		MedicineName: t.MedicineName,
		Type:         string(t.Type),
		PartnerName:  t.PartnerName,
		UnitPrice:    t.UnitPrice,
		Quantity:     t.Quantity,
		Total:        t.TotalAmount(),
		CreatedAt:    t.CreatedAt,
	}
}

// FromTransactions maps a slice of ledger entries.
func FromTransactions(txns []ledger.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, len(txns))
	for i := range txns {
		out[i] = FromTransaction(&txns[i])
	}
	return out
}
