package reports

import (
	"context"

	"medstock/internal/core/id"
	"medstock/internal/domain/catalogs/medicine"
	"medstock/internal/domain/ledger"
)

// Reader fetches the raw data the aggregator works on.
// Reads are plain read-committed queries; the report tolerates being a
// snapshot of a moving ledger.
type Reader interface {
	// Transactions retrieves the owner's full ledger, newest first.
	Transactions(ctx context.Context, ownerID id.ID) ([]ledger.Transaction, error)

	// Medicines retrieves all of the owner's medicines.
	Medicines(ctx context.Context, ownerID id.ID) ([]medicine.Medicine, error)
}
