package catalog_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/domain/catalogs/medicine"
	"medstock/internal/infrastructure/storage/postgres"
)

const medicineTable = "cat_medicines"

// MedicineRepo implements medicine.Repository.
type MedicineRepo struct {
	*BaseCatalogRepo[*medicine.Medicine]
}

// NewMedicineRepo creates a new medicine repository.
func NewMedicineRepo(txManager *postgres.TxManager) *MedicineRepo {
	return &MedicineRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*medicine.Medicine](
			txManager,
			medicineTable,
			postgres.ExtractDBColumns[medicine.Medicine](),
			[]string{"name", "code"},
			func() *medicine.Medicine { return &medicine.Medicine{} },
		),
	}
}

// FindByCode retrieves a medicine by its code. Codes are globally unique,
// so the lookup is not owner-scoped; callers check ownership themselves.
func (r *MedicineRepo) FindByCode(ctx context.Context, code string) (*medicine.Medicine, error) {
	q := r.Builder().
		Select(r.selectCols...).
		From(medicineTable).
		Where(squirrel.Eq{"code": code}).
		Limit(1)

	m, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("medicine", code)
		}
		return nil, err
	}
	return m, nil
}

// UpdateQuantity sets quantity_on_hand directly, bypassing optimistic
// locking. Callers must hold the row lock from GetForUpdate.
func (r *MedicineRepo) UpdateQuantity(ctx context.Context, medicineID id.ID, quantity int) error {
	q := r.Builder().
		Update(medicineTable).
		Set("quantity_on_hand", quantity).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": medicineID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update quantity: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("medicine", medicineID.String())
	}

	return nil
}

// CountByExpiry buckets the owner's medicines by expiry status in a single
// scan. The expiring window matches medicine.ExpiringWindowDays.
// Written by hand: squirrel cannot number ?-expressions inside FILTER
// clauses consistently with Dollar placeholders.
func (r *MedicineRepo) CountByExpiry(ctx context.Context, ownerID id.ID, today time.Time, search string) (medicine.ExpiryCounts, error) {
	var counts medicine.ExpiryCounts

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := day.AddDate(0, 0, medicine.ExpiringWindowDays)

	sql := `
		SELECT
			COUNT(*) FILTER (WHERE exp_date::date < $2::date) AS expired,
			COUNT(*) FILTER (WHERE exp_date::date >= $2::date AND exp_date::date <= $3::date) AS expiring,
			COUNT(*) FILTER (WHERE exp_date::date > $3::date) AS ok,
			COUNT(*) AS total
		FROM cat_medicines
		WHERE owner_id = $1`

	args := []any{ownerID, day, windowEnd}

	if search != "" {
		sql += ` AND (name ILIKE $4 OR code ILIKE $4)`
		args = append(args, "%"+search+"%")
	}

	err := r.Querier(ctx).QueryRow(ctx, sql, args...).
		Scan(&counts.Expired, &counts.Expiring, &counts.OK, &counts.Total)
	if err != nil {
		return counts, fmt.Errorf("count by expiry: %w", err)
	}

	return counts, nil
}

// ListAll retrieves all of the owner's medicines ordered by name.
func (r *MedicineRepo) ListAll(ctx context.Context, ownerID id.ID) ([]medicine.Medicine, error) {
	q := r.baseSelect(ownerID).OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []medicine.Medicine
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list all medicines: %w", err)
	}

	return items, nil
}
