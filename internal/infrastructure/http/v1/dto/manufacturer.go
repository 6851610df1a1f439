package dto

import (
	"time"

	"medstock/internal/core/id"
	"medstock/internal/domain/catalogs/manufacturer"
)

// --- Request DTOs ---

// CreateManufacturerRequest is the request body for creating a manufacturer.
type CreateManufacturerRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateManufacturerRequest) ToEntity(ownerID id.ID) *manufacturer.Manufacturer {
	m := manufacturer.NewManufacturer(ownerID, r.Name)
	m.ContactPerson = r.ContactPerson
	m.Phone = r.Phone
	m.Address = r.Address
	return m
}

// UpdateManufacturerRequest is the request body for updating a manufacturer.
type UpdateManufacturerRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contactPerson"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Version       int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateManufacturerRequest) ApplyTo(m *manufacturer.Manufacturer) {
	m.Name = r.Name
	m.ContactPerson = r.ContactPerson
	m.Phone = r.Phone
	m.Address = r.Address
	m.SetVersion(r.Version)
}

// --- Response DTOs ---

// ManufacturerResponse is the response body for a manufacturer.
type ManufacturerResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromManufacturer creates response DTO from domain entity.
func FromManufacturer(m *manufacturer.Manufacturer) *ManufacturerResponse {
	return &ManufacturerResponse{
		ID:            m.ID.String(),
		Name:          m.Name,
		ContactPerson: m.ContactPerson,
		Phone:         m.Phone,
		Address:       m.Address,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
