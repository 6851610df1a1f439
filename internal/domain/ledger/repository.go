package ledger

import (
	"context"
	"time"

	"medstock/internal/core/id"
	"medstock/internal/domain"
)

// SearchFilter narrows transaction listings.
// Date and Query are mutually reinforcing: the repository matches either.
type SearchFilter struct {
	// Query is matched as a case-insensitive substring against partner name,
	// medicine name and the formatted transaction date.
	Query string

	// Date, when set, additionally matches transactions on that calendar day.
	Date *time.Time

	Limit  int
	Offset int
}

// Repository defines ledger persistence. Insert only; the ledger is append-only.
type Repository interface {
	// Insert appends a transaction. Must run inside the caller's transaction
	// when paired with a stock update.
	Insert(ctx context.Context, txn *Transaction) error

	// List retrieves the owner's transactions, newest first, with medicine
	// names joined in.
	List(ctx context.Context, ownerID id.ID, filter SearchFilter) (domain.ListResult[Transaction], error)

	// Recent retrieves the owner's most recent transactions, newest first.
	Recent(ctx context.Context, ownerID id.ID, limit int) ([]Transaction, error)

	// ListAll retrieves the owner's full ledger without pagination.
	// Used by the reporting aggregator.
	ListAll(ctx context.Context, ownerID id.ID) ([]Transaction, error)
}
