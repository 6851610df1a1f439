package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/domain/catalogs/manufacturer"
	"medstock/internal/infrastructure/storage/postgres"
)

const manufacturerTable = "cat_manufacturers"

// ManufacturerRepo implements manufacturer.Repository.
type ManufacturerRepo struct {
	*BaseCatalogRepo[*manufacturer.Manufacturer]
	txManager *postgres.TxManager
}

// NewManufacturerRepo creates a new manufacturer repository.
func NewManufacturerRepo(txManager *postgres.TxManager) *ManufacturerRepo {
	return &ManufacturerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*manufacturer.Manufacturer](
			txManager,
			manufacturerTable,
			postgres.ExtractDBColumns[manufacturer.Manufacturer](),
			[]string{"name", "contact_person", "phone", "address"},
			func() *manufacturer.Manufacturer { return &manufacturer.Manufacturer{} },
		),
		txManager: txManager,
	}
}

// FindByName retrieves the owner's manufacturer by name (case-insensitive).
func (r *ManufacturerRepo) FindByName(ctx context.Context, ownerID id.ID, name string) (*manufacturer.Manufacturer, error) {
	q := r.baseSelect(ownerID).
		Where(squirrel.Expr("LOWER(name) = LOWER(?)", name)).
		Limit(1)

	m, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("manufacturer", name)
		}
		return nil, err
	}
	return m, nil
}

// Delete removes the manufacturer and detaches its medicines.
// Medicines keep existing with a null manufacturer reference.
func (r *ManufacturerRepo) Delete(ctx context.Context, ownerID, entityID id.ID) error {
	return r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		q := r.Builder().
			Update(medicineTable).
			Set("manufacturer_id", nil).
			Where(squirrel.Eq{"owner_id": ownerID}).
			Where(squirrel.Eq{"manufacturer_id": entityID})

		sql, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("build detach: %w", err)
		}

		if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("detach medicines: %w", err)
		}

		return r.BaseCatalogRepo.Delete(ctx, ownerID, entityID)
	})
}
