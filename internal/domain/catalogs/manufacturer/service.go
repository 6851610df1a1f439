package manufacturer

import (
	"context"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/core/tx"
	"medstock/internal/domain"
)

// Service provides business logic for the Manufacturer catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Manufacturer] // Embedded for delegation
	repo                                  Repository
}

// NewService creates a new Manufacturer service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Manufacturer]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "manufacturer",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	// Register hooks for entity-specific logic
	base.Hooks().OnBeforeCreate(svc.checkNameUnique)
	base.Hooks().OnBeforeUpdate(svc.checkNameUnique)

	return svc
}

// checkNameUnique enforces case-insensitive name uniqueness within the owner.
func (s *Service) checkNameUnique(ctx context.Context, m *Manufacturer) error {
	exists, err := s.nameExists(ctx, m.OwnerID, m.Name, m.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("manufacturer", "name", m.Name)
	}
	return nil
}

// nameExists checks if the name is already used by another record of the owner.
func (s *Service) nameExists(ctx context.Context, ownerID id.ID, name string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByName(ctx, ownerID, name)
	if err != nil {
		// Not found is OK; other errors must be propagated (DB errors, timeouts, etc.).
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	// If found and it's a different record
	return existing.ID != excludeID, nil
}
