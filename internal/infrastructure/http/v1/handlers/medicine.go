package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medstock/internal/core/id"
	"medstock/internal/domain/catalogs/medicine"
	"medstock/internal/infrastructure/http/v1/dto"
)

// MedicineHandler combines generic catalog CRUD with medicine-specific
// endpoints (expiry summary, lookup by code).
type MedicineHandler struct {
	*CatalogHandler[*medicine.Medicine, dto.CreateMedicineRequest, dto.UpdateMedicineRequest]
	service *medicine.Service
}

// NewMedicineHandler wires the generic catalog handler for medicines.
func NewMedicineHandler(base *BaseHandler, service *medicine.Service) *MedicineHandler {
	config := CatalogHandlerConfig[
		*medicine.Medicine,
		dto.CreateMedicineRequest,
		dto.UpdateMedicineRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "medicine",

		MapCreateDTO: func(req dto.CreateMedicineRequest, ownerID id.ID) (*medicine.Medicine, error) {
			return req.ToEntity(ownerID)
		},

		MapUpdateDTO: func(req dto.UpdateMedicineRequest, existing *medicine.Medicine) (*medicine.Medicine, error) {
			if err := req.ApplyTo(existing); err != nil {
				return nil, err
			}
			return existing, nil
		},

		MapToDTO: func(entity *medicine.Medicine) any {
			return dto.FromMedicine(entity, time.Now().UTC())
		},
	}

	return &MedicineHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// Summary handles GET /medicines/summary - expiry bucket counts.
// An optional search term narrows the counted medicines.
func (h *MedicineHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	counts, err := h.service.Summary(ctx, ownerID, time.Now().UTC(), c.Query("search"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromExpiryCounts(counts))
}

// GetByCode handles GET /medicines/by-code/:code - lookup by medicine code.
func (h *MedicineHandler) GetByCode(c *gin.Context) {
	ctx := c.Request.Context()

	ownerID, ok := h.OwnerID(c)
	if !ok {
		return
	}

	m, err := h.service.FindByCode(ctx, ownerID, c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMedicine(m, time.Now().UTC()))
}
