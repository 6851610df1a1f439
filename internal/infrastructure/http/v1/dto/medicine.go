package dto

import (
	"time"

	"medstock/internal/core/id"
	"medstock/internal/core/types"
	"medstock/internal/domain/catalogs/medicine"
)

// --- Request DTOs ---

// CreateMedicineRequest is the request body for creating a medicine.
// Quantity is absent on purpose: stock only moves through the ledger.
type CreateMedicineRequest struct {
	Name           string      `json:"name" binding:"required"`
	MedicineID     string      `json:"medicineId" binding:"required"`
	ManufacturerID *string     `json:"manufacturerId"`
	CostPrice      types.Money `json:"costPrice"`
	MRP            types.Money `json:"mrp"`
	MfgDate        Date        `json:"mfgDate"`
	ExpDate        Date        `json:"expDate"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateMedicineRequest) ToEntity(ownerID id.ID) (*medicine.Medicine, error) {
	m := medicine.NewMedicine(ownerID, r.Name, r.MedicineID)
	m.CostPrice = r.CostPrice
	m.MRP = r.MRP
	m.MfgDate = r.MfgDate.Time
	m.ExpDate = r.ExpDate.Time

	if r.ManufacturerID != nil && *r.ManufacturerID != "" {
		mid, err := id.Parse(*r.ManufacturerID)
		if err != nil {
			return nil, err
		}
		m.ManufacturerID = &mid
	}
	return m, nil
}

// UpdateMedicineRequest is the request body for updating a medicine.
type UpdateMedicineRequest struct {
	Name           string      `json:"name" binding:"required"`
	MedicineID     string      `json:"medicineId" binding:"required"`
	ManufacturerID *string     `json:"manufacturerId"`
	CostPrice      types.Money `json:"costPrice"`
	MRP            types.Money `json:"mrp"`
	MfgDate        Date        `json:"mfgDate"`
	ExpDate        Date        `json:"expDate"`
	Version        int         `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateMedicineRequest) ApplyTo(m *medicine.Medicine) error {
	m.Name = r.Name
	m.Code = r.MedicineID
	m.CostPrice = r.CostPrice
	m.MRP = r.MRP
	m.MfgDate = r.MfgDate.Time
	m.ExpDate = r.ExpDate.Time
	m.SetVersion(r.Version)

	m.ManufacturerID = nil
	if r.ManufacturerID != nil && *r.ManufacturerID != "" {
		mid, err := id.Parse(*r.ManufacturerID)
		if err != nil {
			return err
		}
		m.ManufacturerID = &mid
	}
	return nil
}

// --- Response DTOs ---

// MedicineResponse is the response body for a medicine.
type MedicineResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	MedicineID     string                `json:"medicineId"`
	ManufacturerID *string               `json:"manufacturerId,omitempty"`
	CostPrice      types.Money           `json:"costPrice"`
	MRP            types.Money           `json:"mrp"`
	MfgDate        string                `json:"mfgDate"`
	ExpDate        string                `json:"expDate"`
	QuantityOnHand int                   `json:"quantityOnHand"`
	ExpiryStatus   medicine.ExpiryStatus `json:"expiryStatus"`
	Version        int                   `json:"version"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// FromMedicine creates response DTO from domain entity.
// Expiry status is computed relative to the given date.
func FromMedicine(m *medicine.Medicine, today time.Time) *MedicineResponse {
	resp := &MedicineResponse{
		ID:             m.ID.String(),
		Name:           m.Name,
		MedicineID:     m.Code,
		CostPrice:      m.CostPrice,
		MRP:            m.MRP,
		MfgDate:        m.MfgDate.Format("2006-01-02"),
		ExpDate:        m.ExpDate.Format("2006-01-02"),
		QuantityOnHand: m.QuantityOnHand,
		ExpiryStatus:   m.ExpiryStatusAt(today),
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.ManufacturerID != nil {
		s := m.ManufacturerID.String()
		resp.ManufacturerID = &s
	}
	return resp
}

// MedicineSummaryResponse reports expiry bucket counts.
type MedicineSummaryResponse struct {
	Expired  int `json:"expired"`
	Expiring int `json:"expiring"`
	OK       int `json:"ok"`
	Total    int `json:"total"`
}

// FromExpiryCounts creates the summary response.
func FromExpiryCounts(c medicine.ExpiryCounts) MedicineSummaryResponse {
	return MedicineSummaryResponse{
		Expired:  c.Expired,
		Expiring: c.Expiring,
		OK:       c.OK,
		Total:    c.Total,
	}
}
