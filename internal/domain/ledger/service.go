package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/core/tx"
	"medstock/internal/domain"
	"medstock/internal/domain/catalogs/medicine"
	"medstock/pkg/logger"
)

// searchDateFormats are tried in order when interpreting a search query
// as a calendar date.
var searchDateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// MedicineStore is the slice of the medicine repository the ledger needs:
// a locked read and a quantity write, both inside the recording transaction.
type MedicineStore interface {
	GetForUpdate(ctx context.Context, ownerID, medicineID id.ID) (*medicine.Medicine, error)
	UpdateQuantity(ctx context.Context, medicineID id.ID, quantity int) error
}

// RecordedHook runs after a recorded transaction has committed.
// Hook failures are logged and never surfaced to the caller.
type RecordedHook func(ctx context.Context, txn *Transaction) error

// Service records transactions and mutates stock atomically.
type Service struct {
	repo       Repository
	medicines  MedicineStore
	txManager  tx.Manager
	onRecorded []RecordedHook
}

// NewService creates a new ledger service.
func NewService(repo Repository, medicines MedicineStore, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		medicines: medicines,
		txManager: txManager,
	}
}

// OnRecorded registers a hook to run after each committed transaction.
// Used for audit logging; hooks run outside the write transaction.
func (s *Service) OnRecorded(hook RecordedHook) {
	s.onRecorded = append(s.onRecorded, hook)
}

// Record validates the draft and, inside one transaction, locks the medicine
// row, applies the stock delta and appends the ledger entry. A SOLD exceeding
// the quantity on hand rejects the whole operation; nothing persists.
//
// Concurrent records against the same medicine serialize on the row lock,
// so quantity_on_hand can never go negative.
func (s *Service) Record(ctx context.Context, ownerID id.ID, draft Draft) (*Transaction, error) {
	ttype, err := ParseType(draft.Type)
	if err != nil {
		return nil, err
	}

	txn := NewTransaction(ownerID, draft.MedicineID, ttype)
	txn.PartnerName = strings.TrimSpace(draft.PartnerName)
	txn.UnitPrice = draft.UnitPrice
	txn.Quantity = draft.Quantity

	if err := txn.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		med, err := s.medicines.GetForUpdate(ctx, ownerID, txn.MedicineID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("medicine", txn.MedicineID.String())
			}
			return fmt.Errorf("lock medicine: %w", err)
		}

		newQuantity := med.QuantityOnHand
		switch ttype {
		case TypeBought:
			newQuantity += txn.Quantity
		case TypeSold:
			if txn.Quantity > med.QuantityOnHand {
				return apperror.NewInsufficientStock(med.Code, txn.Quantity, med.QuantityOnHand)
			}
			newQuantity -= txn.Quantity
		}

		if err := s.medicines.UpdateQuantity(ctx, med.ID, newQuantity); err != nil {
			return fmt.Errorf("update quantity: %w", err)
		}
		if err := s.repo.Insert(ctx, txn); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "transaction recorded",
		"transaction_id", txn.ID,
		"medicine_id", txn.MedicineID,
		"type", txn.Type,
		"quantity", txn.Quantity)

	for _, hook := range s.onRecorded {
		if err := hook(ctx, txn); err != nil {
			logger.Warn(ctx, "recorded hook failed",
				"transaction_id", txn.ID,
				"error", err)
		}
	}

	return txn, nil
}

// List retrieves the owner's transactions, newest first. The query is
// interpreted in order: as a calendar date against the known formats,
// otherwise as a substring over partner name, medicine name and the
// formatted date.
func (s *Service) List(ctx context.Context, ownerID id.ID, query string, limit, offset int) (domain.ListResult[Transaction], error) {
	filter := SearchFilter{
		Query:  strings.TrimSpace(query),
		Limit:  limit,
		Offset: offset,
	}
	if filter.Query != "" {
		if date, ok := parseSearchDate(filter.Query); ok {
			filter.Date = &date
		}
	}
	return s.repo.List(ctx, ownerID, filter)
}

// Recent retrieves the owner's most recent transactions.
func (s *Service) Recent(ctx context.Context, ownerID id.ID, limit int) ([]Transaction, error) {
	return s.repo.Recent(ctx, ownerID, limit)
}

func parseSearchDate(q string) (time.Time, bool) {
	for _, layout := range searchDateFormats {
		if d, err := time.Parse(layout, q); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
