package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/core/apperror"
	"medstock/internal/core/id"
	"medstock/internal/core/types"
	"medstock/internal/domain"
	"medstock/internal/domain/catalogs/medicine"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMedicineStore struct {
	med        *medicine.Medicine
	newQty     *int
	lockCalled bool
}

func (s *fakeMedicineStore) GetForUpdate(_ context.Context, ownerID, medicineID id.ID) (*medicine.Medicine, error) {
	s.lockCalled = true
	if s.med == nil || s.med.ID != medicineID || s.med.OwnerID != ownerID {
		return nil, apperror.NewNotFound("cat_medicines", medicineID.String())
	}
	return s.med, nil
}

func (s *fakeMedicineStore) UpdateQuantity(_ context.Context, _ id.ID, quantity int) error {
	s.newQty = &quantity
	return nil
}

type fakeLedgerRepo struct {
	inserted  []*Transaction
	insertErr error

	listFilter *SearchFilter
}

func (r *fakeLedgerRepo) Insert(_ context.Context, txn *Transaction) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, txn)
	return nil
}

func (r *fakeLedgerRepo) List(_ context.Context, _ id.ID, filter SearchFilter) (domain.ListResult[Transaction], error) {
	r.listFilter = &filter
	return domain.ListResult[Transaction]{}, nil
}

func (r *fakeLedgerRepo) Recent(_ context.Context, _ id.ID, _ int) ([]Transaction, error) {
	return nil, nil
}

func (r *fakeLedgerRepo) ListAll(_ context.Context, _ id.ID) ([]Transaction, error) {
	return nil, nil
}

func testMedicine(ownerID id.ID, onHand int) *medicine.Medicine {
	m := medicine.NewMedicine(ownerID, "Paracetamol 500mg", "MED-00001")
	m.CostPrice = types.MustMoney("1.20")
	m.QuantityOnHand = onHand
	return m
}

func TestRecord_BoughtIncreasesStock(t *testing.T) {
	ownerID := id.New()
	med := testMedicine(ownerID, 10)
	store := &fakeMedicineStore{med: med}
	repo := &fakeLedgerRepo{}
	svc := NewService(repo, store, fakeTxManager{})

	txn, err := svc.Record(context.Background(), ownerID, Draft{
		MedicineID:  med.ID,
		Type:        "bought",
		PartnerName: "  MediSupply  ",
		UnitPrice:   types.MustMoney("1.20"),
		Quantity:    5,
	})
	require.NoError(t, err)

	assert.True(t, store.lockCalled)
	require.NotNil(t, store.newQty)
	assert.Equal(t, 15, *store.newQty)

	require.Len(t, repo.inserted, 1)
	assert.Equal(t, TypeBought, txn.Type)
	assert.Equal(t, "MediSupply", txn.PartnerName)
	assert.Equal(t, ownerID, txn.OwnerID)
}

func TestRecord_SoldDecreasesStock(t *testing.T) {
	ownerID := id.New()
	med := testMedicine(ownerID, 10)
	store := &fakeMedicineStore{med: med}
	repo := &fakeLedgerRepo{}
	svc := NewService(repo, store, fakeTxManager{})

	_, err := svc.Record(context.Background(), ownerID, Draft{
		MedicineID:  med.ID,
		Type:        "SOLD",
		PartnerName: "Walk-in customer",
		UnitPrice:   types.MustMoney("2.50"),
		Quantity:    4,
	})
	require.NoError(t, err)

	require.NotNil(t, store.newQty)
	assert.Equal(t, 6, *store.newQty)
}

func TestRecord_OversellRejected(t *testing.T) {
	ownerID := id.New()
	med := testMedicine(ownerID, 4)
	store := &fakeMedicineStore{med: med}
	repo := &fakeLedgerRepo{}
	svc := NewService(repo, store, fakeTxManager{})

	_, err := svc.Record(context.Background(), ownerID, Draft{
		MedicineID:  med.ID,
		Type:        "SOLD",
		PartnerName: "Walk-in customer",
		UnitPrice:   types.MustMoney("2.50"),
		Quantity:    10,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Cannot sell 10. Only 4 in stock.", appErr.Message)
	assert.Equal(t, "MED-00001", appErr.Details["medicine_id"])
	assert.Equal(t, 10, appErr.Details["requested"])
	assert.Equal(t, 4, appErr.Details["available"])

	// Nothing written
	assert.Nil(t, store.newQty)
	assert.Empty(t, repo.inserted)
}

func TestRecord_UnknownMedicine(t *testing.T) {
	ownerID := id.New()
	store := &fakeMedicineStore{}
	svc := NewService(&fakeLedgerRepo{}, store, fakeTxManager{})

	_, err := svc.Record(context.Background(), ownerID, Draft{
		MedicineID:  id.New(),
		Type:        "BOUGHT",
		PartnerName: "MediSupply",
		UnitPrice:   types.MustMoney("1"),
		Quantity:    1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecord_OtherOwnersMedicineIsInvisible(t *testing.T) {
	otherOwner := id.New()
	med := testMedicine(otherOwner, 10)
	store := &fakeMedicineStore{med: med}
	svc := NewService(&fakeLedgerRepo{}, store, fakeTxManager{})

	_, err := svc.Record(context.Background(), id.New(), Draft{
		MedicineID:  med.ID,
		Type:        "BOUGHT",
		PartnerName: "MediSupply",
		UnitPrice:   types.MustMoney("1"),
		Quantity:    1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecord_InvalidDraft(t *testing.T) {
	ownerID := id.New()
	med := testMedicine(ownerID, 10)
	store := &fakeMedicineStore{med: med}
	svc := NewService(&fakeLedgerRepo{}, store, fakeTxManager{})

	tests := []struct {
		name  string
		draft Draft
	}{
		{"legacy type", Draft{MedicineID: med.ID, Type: "IMPORT", PartnerName: "P", Quantity: 1}},
		{"zero quantity", Draft{MedicineID: med.ID, Type: "BOUGHT", PartnerName: "P", Quantity: 0}},
		{"blank partner", Draft{MedicineID: med.ID, Type: "BOUGHT", PartnerName: "  ", Quantity: 1}},
		{"negative price", Draft{MedicineID: med.ID, Type: "BOUGHT", PartnerName: "P",
			UnitPrice: types.MustMoney("-1"), Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), ownerID, tt.draft)
			require.Error(t, err)
			assert.Nil(t, store.newQty, "no stock change on validation failure")
		})
	}
}

func TestRecord_RunsRecordedHooks(t *testing.T) {
	ownerID := id.New()
	med := testMedicine(ownerID, 10)
	store := &fakeMedicineStore{med: med}
	repo := &fakeLedgerRepo{}
	svc := NewService(repo, store, fakeTxManager{})

	var seen *Transaction
	svc.OnRecorded(func(_ context.Context, txn *Transaction) error {
		seen = txn
		return nil
	})

	txn, err := svc.Record(context.Background(), ownerID, Draft{
		MedicineID:  med.ID,
		Type:        "BOUGHT",
		PartnerName: "MediSupply",
		UnitPrice:   types.MustMoney("1"),
		Quantity:    3,
	})
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, txn.ID, seen.ID)
}

func TestRecord_RecordedHookFailureIsNotFatal(t *testing.T) {
	ownerID := id.New()
	med := testMedicine(ownerID, 10)
	store := &fakeMedicineStore{med: med}
	repo := &fakeLedgerRepo{}
	svc := NewService(repo, store, fakeTxManager{})

	svc.OnRecorded(func(_ context.Context, _ *Transaction) error {
		return errors.New("audit down")
	})

	_, err := svc.Record(context.Background(), ownerID, Draft{
		MedicineID:  med.ID,
		Type:        "SOLD",
		PartnerName: "Walk-in customer",
		UnitPrice:   types.MustMoney("2.50"),
		Quantity:    1,
	})
	assert.NoError(t, err)
	assert.Len(t, repo.inserted, 1)
}

func TestRecord_HookSkippedWhenNothingCommits(t *testing.T) {
	ownerID := id.New()
	med := testMedicine(ownerID, 2)
	store := &fakeMedicineStore{med: med}
	svc := NewService(&fakeLedgerRepo{}, store, fakeTxManager{})

	called := false
	svc.OnRecorded(func(_ context.Context, _ *Transaction) error {
		called = true
		return nil
	})

	_, err := svc.Record(context.Background(), ownerID, Draft{
		MedicineID:  med.ID,
		Type:        "SOLD",
		PartnerName: "Walk-in customer",
		UnitPrice:   types.MustMoney("2.50"),
		Quantity:    5,
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestRecord_InsertFailurePropagates(t *testing.T) {
	ownerID := id.New()
	med := testMedicine(ownerID, 10)
	store := &fakeMedicineStore{med: med}
	repo := &fakeLedgerRepo{insertErr: errors.New("boom")}
	svc := NewService(repo, store, fakeTxManager{})

	_, err := svc.Record(context.Background(), ownerID, Draft{
		MedicineID:  med.ID,
		Type:        "BOUGHT",
		PartnerName: "MediSupply",
		UnitPrice:   types.MustMoney("1"),
		Quantity:    1,
	})
	require.Error(t, err)
}

func TestList_SearchDateDetection(t *testing.T) {
	repo := &fakeLedgerRepo{}
	svc := NewService(repo, &fakeMedicineStore{}, fakeTxManager{})
	ctx := context.Background()
	ownerID := id.New()

	tests := []struct {
		query    string
		wantDate *time.Time
	}{
		{"2026-03-18", timePtr(time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC))},
		{"18/03/2026", timePtr(time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC))},
		{"18-03-2026", timePtr(time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC))},
		{"paracetamol", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, err := svc.List(ctx, ownerID, tt.query, 50, 0)
			require.NoError(t, err)
			require.NotNil(t, repo.listFilter)

			if tt.wantDate == nil {
				assert.Nil(t, repo.listFilter.Date)
			} else {
				require.NotNil(t, repo.listFilter.Date)
				assert.True(t, tt.wantDate.Equal(*repo.listFilter.Date))
			}
			assert.Equal(t, tt.query, repo.listFilter.Query)
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
