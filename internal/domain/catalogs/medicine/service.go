package medicine

import (
	"context"
	"time"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/core/tx"
	"medstock/internal/domain"
)

// Service provides business logic for the Medicine catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Medicine] // Embedded for delegation
	repo                              Repository
}

// NewService creates a new Medicine service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Medicine]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "medicine",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	// Register hooks for entity-specific logic
	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate enforces global code uniqueness and zero starting quantity.
func (s *Service) prepareForCreate(ctx context.Context, m *Medicine) error {
	exists, err := s.codeExists(ctx, m.Code, m.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("medicine", "medicine_id", m.Code)
	}

	// Quantity is never set through the catalog.
	m.QuantityOnHand = 0
	return nil
}

// prepareForUpdate enforces code uniqueness and keeps quantity untouched.
func (s *Service) prepareForUpdate(ctx context.Context, m *Medicine) error {
	exists, err := s.codeExists(ctx, m.Code, m.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperror.NewDuplicate("medicine", "medicine_id", m.Code)
	}

	// Catalog edits must not change the stock level.
	current, err := s.repo.GetByID(ctx, m.OwnerID, m.ID)
	if err != nil {
		return err
	}
	m.QuantityOnHand = current.QuantityOnHand
	m.CreatedAt = current.CreatedAt
	return nil
}

// codeExists checks if the code is already used by another medicine.
// Codes are unique across all owners.
func (s *Service) codeExists(ctx context.Context, code string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByCode(ctx, code)
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

// --- Entity-specific methods (not in base CatalogService) ---

// FindByCode retrieves the owner's medicine by code.
// Codes are globally unique, so a match owned by someone else reads as not found.
func (s *Service) FindByCode(ctx context.Context, ownerID id.ID, code string) (*Medicine, error) {
	m, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !m.BelongsTo(ownerID) {
		return nil, apperror.NewNotFound("medicine", code)
	}
	return m, nil
}

// Summary returns expiry bucket counts for the dashboard,
// optionally narrowed by a search term.
func (s *Service) Summary(ctx context.Context, ownerID id.ID, today time.Time, search string) (ExpiryCounts, error) {
	return s.repo.CountByExpiry(ctx, ownerID, today, search)
}
