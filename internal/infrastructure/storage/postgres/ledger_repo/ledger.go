// Package ledger_repo provides PostgreSQL persistence for the transaction
// ledger. The ledger is append-only; there are no update or delete paths.
package ledger_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/domain"
	"medstock/internal/domain/ledger"
	"medstock/internal/infrastructure/storage/postgres"
)

const ledgerTable = "ledger_transactions"

// selectCols are the ledger columns plus the joined medicine name.
var selectCols = []string{
	"t.id",
	"t.owner_id",
	"t.medicine_id",
	"t.type",
	"t.partner_name",
	"t.unit_price",
	"t.quantity",
	"t.created_at",
	"m.name AS medicine_name",
}

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	txManager *postgres.TxManager
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{txManager: txManager}
}

func (r *LedgerRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *LedgerRepo) querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Insert appends a transaction to the ledger.
func (r *LedgerRepo) Insert(ctx context.Context, txn *ledger.Transaction) error {
	q := r.builder().
		Insert(ledgerTable).
		Columns("id", "owner_id", "medicine_id", "type", "partner_name", "unit_price", "quantity", "created_at").
		Values(txn.ID, txn.OwnerID, txn.MedicineID, txn.Type, txn.PartnerName, txn.UnitPrice, txn.Quantity, txn.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperror.NewNotFound("medicine", txn.MedicineID.String()).WithCause(err)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}

// baseSelect builds the owner-scoped join of transactions with medicine names.
func (r *LedgerRepo) baseSelect(ownerID id.ID) squirrel.SelectBuilder {
	return r.builder().
		Select(selectCols...).
		From(ledgerTable + " t").
		Join("cat_medicines m ON m.id = t.medicine_id").
		Where(squirrel.Eq{"t.owner_id": ownerID})
}

// List retrieves the owner's transactions, newest first.
// A search query matches partner name, medicine name or the transaction date;
// a parsed date additionally matches the calendar day.
func (r *LedgerRepo) List(ctx context.Context, ownerID id.ID, filter ledger.SearchFilter) (domain.ListResult[ledger.Transaction], error) {
	result := domain.ListResult[ledger.Transaction]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect(ownerID)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		or := squirrel.Or{
			squirrel.ILike{"t.partner_name": pattern},
			squirrel.ILike{"m.name": pattern},
			squirrel.Expr("to_char(t.created_at, 'YYYY-MM-DD') LIKE ?", pattern),
		}
		if filter.Date != nil {
			or = append(or, squirrel.Expr("t.created_at::date = ?::date", *filter.Date))
		}
		q = q.Where(or)
	} else if filter.Date != nil {
		q = q.Where(squirrel.Expr("t.created_at::date = ?::date", *filter.Date))
	}

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count transactions: %w", err)
	}

	q = q.OrderBy("t.created_at DESC", "t.id DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list transactions: %w", err)
	}

	return result, nil
}

// Recent retrieves the owner's most recent transactions, newest first.
func (r *LedgerRepo) Recent(ctx context.Context, ownerID id.ID, limit int) ([]ledger.Transaction, error) {
	q := r.baseSelect(ownerID).
		OrderBy("t.created_at DESC", "t.id DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []ledger.Transaction
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}

	return items, nil
}

// ListAll retrieves the owner's full ledger, oldest first.
func (r *LedgerRepo) ListAll(ctx context.Context, ownerID id.ID) ([]ledger.Transaction, error) {
	q := r.baseSelect(ownerID).
		OrderBy("t.created_at ASC", "t.id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []ledger.Transaction
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}

	return items, nil
}
