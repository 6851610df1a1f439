// Package report_repo provides the PostgreSQL data source for the
// reporting aggregator. Reports are computed in memory over the owner's
// full ledger and medicine list, so the repository only fetches.
package report_repo

import (
	"context"

	"medstock/internal/core/id"
	"medstock/internal/domain/catalogs/medicine"
	"medstock/internal/domain/ledger"
	"medstock/internal/domain/reports"
)

// medicineLister is the slice of medicine.Repository the reader needs.
type medicineLister interface {
	ListAll(ctx context.Context, ownerID id.ID) ([]medicine.Medicine, error)
}

// ledgerLister is the slice of ledger.Repository the reader needs.
type ledgerLister interface {
	ListAll(ctx context.Context, ownerID id.ID) ([]ledger.Transaction, error)
}

// ReportReader implements reports.Reader on top of the catalog and
// ledger repositories.
type ReportReader struct {
	medicines medicineLister
	ledger    ledgerLister
}

// NewReportReader creates a new report data reader.
func NewReportReader(medicines medicineLister, ledgerRepo ledgerLister) *ReportReader {
	return &ReportReader{
		medicines: medicines,
		ledger:    ledgerRepo,
	}
}

// Transactions retrieves the owner's full ledger.
func (r *ReportReader) Transactions(ctx context.Context, ownerID id.ID) ([]ledger.Transaction, error) {
	return r.ledger.ListAll(ctx, ownerID)
}

// Medicines retrieves all of the owner's medicines.
func (r *ReportReader) Medicines(ctx context.Context, ownerID id.ID) ([]medicine.Medicine, error) {
	return r.medicines.ListAll(ctx, ownerID)
}

// Ensure interface compliance
var _ reports.Reader = (*ReportReader)(nil)
