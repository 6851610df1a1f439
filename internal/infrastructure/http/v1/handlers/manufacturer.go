package handlers

import (
	"medstock/internal/core/id"
	"medstock/internal/domain/catalogs/manufacturer"
	"medstock/internal/infrastructure/http/v1/dto"
)

// ManufacturerHTTPHandler aliases the generic handler to keep signatures short.
type ManufacturerHTTPHandler = CatalogHandler[
	*manufacturer.Manufacturer,
	dto.CreateManufacturerRequest,
	dto.UpdateManufacturerRequest,
]

// NewManufacturerHandler wires the generic catalog handler for manufacturers.
func NewManufacturerHandler(
	base *BaseHandler,
	service *manufacturer.Service,
) *ManufacturerHTTPHandler {

	config := CatalogHandlerConfig[
		*manufacturer.Manufacturer,
		dto.CreateManufacturerRequest,
		dto.UpdateManufacturerRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "manufacturer",

		MapCreateDTO: func(req dto.CreateManufacturerRequest, ownerID id.ID) (*manufacturer.Manufacturer, error) {
			return req.ToEntity(ownerID), nil
		},

		MapUpdateDTO: func(req dto.UpdateManufacturerRequest, existing *manufacturer.Manufacturer) (*manufacturer.Manufacturer, error) {
			req.ApplyTo(existing)
			return existing, nil
		},

		MapToDTO: func(entity *manufacturer.Manufacturer) any {
			return dto.FromManufacturer(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
