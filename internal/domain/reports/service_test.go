package reports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medstock/internal/core/id"
	"medstock/internal/core/types"
	"medstock/internal/domain/catalogs/medicine"
	"medstock/internal/domain/ledger"
)

type fakeReader struct {
	txns []ledger.Transaction
	meds []medicine.Medicine
}

func (f *fakeReader) Transactions(_ context.Context, _ id.ID) ([]ledger.Transaction, error) {
	return f.txns, nil
}

func (f *fakeReader) Medicines(_ context.Context, _ id.ID) ([]medicine.Medicine, error) {
	return f.meds, nil
}

// 2026-03-18 is a Wednesday; the Monday of its week is 2026-03-16.
var testDay = time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)

func newMed(ownerID id.ID, name, code string, cost string, onHand int, expDate time.Time) medicine.Medicine {
	m := medicine.NewMedicine(ownerID, name, code)
	m.CostPrice = types.MustMoney(cost)
	m.MfgDate = expDate.AddDate(-2, 0, 0)
	m.ExpDate = expDate
	m.QuantityOnHand = onHand
	return *m
}

func newTxn(ownerID id.ID, medID id.ID, ttype ledger.Type, price string, qty int, at time.Time) ledger.Transaction {
	return ledger.Transaction{
		ID:          id.New(),
		OwnerID:     ownerID,
		MedicineID:  medID,
		Type:        ttype,
		PartnerName: "Partner",
		UnitPrice:   types.MustMoney(price),
		Quantity:    qty,
		CreatedAt:   at,
	}
}

func assertMoney(t *testing.T, want string, got types.Money) {
	t.Helper()
	assert.True(t, got.Equal(types.MustMoney(want)), "want %s, got %s", want, got)
}

func TestBuild_EmptyData(t *testing.T) {
	svc := NewService(&fakeReader{})

	d, err := svc.Build(context.Background(), id.New(), testDay)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-18", d.Date)
	assertMoney(t, "0", d.Revenue.Today)
	assertMoney(t, "0", d.Revenue.Year)
	assert.Len(t, d.DailyRevenue, DailySeriesDays)
	assert.Empty(t, d.TopSellers)
	assert.Empty(t, d.WeeklyFlow)
	assert.Empty(t, d.Recent)
	assert.Empty(t, d.Profit.Rows)
	assert.Nil(t, d.Profit.ProfitPct)
}

func TestRevenueBuckets_CalendarWindows(t *testing.T) {
	ownerID := id.New()
	medID := id.New()

	txns := []ledger.Transaction{
		// today
		newTxn(ownerID, medID, ledger.TypeSold, "20", 2, testDay.Add(10*time.Hour)),
		// Monday of this week
		newTxn(ownerID, medID, ledger.TypeSold, "10", 1, time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)),
		// Saturday of the previous week: month and year only
		newTxn(ownerID, medID, ledger.TypeSold, "10", 3, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)),
		// February: year only
		newTxn(ownerID, medID, ledger.TypeSold, "5", 1, time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)),
		// previous year: excluded entirely
		newTxn(ownerID, medID, ledger.TypeSold, "100", 1, time.Date(2025, 12, 31, 9, 0, 0, 0, time.UTC)),
		// purchases never count as revenue
		newTxn(ownerID, medID, ledger.TypeBought, "100", 5, testDay.Add(time.Hour)),
	}

	b := revenueBuckets(txns, testDay)

	assertMoney(t, "40", b.Today)
	assertMoney(t, "50", b.Week)
	assertMoney(t, "80", b.Month)
	assertMoney(t, "85", b.Year)
}

func TestDailySeries_ZeroFilled(t *testing.T) {
	ownerID := id.New()
	medID := id.New()

	txns := []ledger.Transaction{
		newTxn(ownerID, medID, ledger.TypeSold, "20", 2, testDay.Add(8*time.Hour)),
		newTxn(ownerID, medID, ledger.TypeSold, "10", 1, testDay.AddDate(0, 0, -5)),
		// outside the window
		newTxn(ownerID, medID, ledger.TypeSold, "10", 1, testDay.AddDate(0, 0, -DailySeriesDays)),
	}

	series := dailySeries(txns, testDay)
	require.Len(t, series, DailySeriesDays)

	assert.Equal(t, testDay.AddDate(0, 0, -(DailySeriesDays-1)).Format("2006-01-02"), series[0].Date)
	assert.Equal(t, "2026-03-18", series[len(series)-1].Date)

	byDate := make(map[string]types.Money, len(series))
	for _, p := range series {
		byDate[p.Date] = p.Revenue
	}
	assertMoney(t, "40", byDate["2026-03-18"])
	assertMoney(t, "10", byDate["2026-03-13"])
	assertMoney(t, "0", byDate["2026-03-17"])
}

func TestTopSellers_RankingAndCap(t *testing.T) {
	ownerID := id.New()

	var meds []medicine.Medicine
	var txns []ledger.Transaction
	for i := 0; i < TopSellersLimit+2; i++ {
		m := newMed(ownerID, fmt.Sprintf("Med %02d", i), fmt.Sprintf("MED-%02d", i), "1", 0, testDay.AddDate(1, 0, 0))
		meds = append(meds, m)
		txns = append(txns, newTxn(ownerID, m.ID, ledger.TypeSold, "2", i+1, testDay))
	}
	// tie with the top entry, earlier name wins
	tied := newMed(ownerID, "Aaa Med", "MED-AAA", "1", 0, testDay.AddDate(1, 0, 0))
	meds = append(meds, tied)
	txns = append(txns, newTxn(ownerID, tied.ID, ledger.TypeSold, "2", TopSellersLimit+2, testDay))

	sellers := topSellers(txns, meds)
	require.Len(t, sellers, TopSellersLimit)

	assert.Equal(t, "Aaa Med", sellers[0].MedicineName)
	assert.Equal(t, TopSellersLimit+2, sellers[0].QuantitySold)
	assert.Equal(t, "Med 11", sellers[1].MedicineName)
}

func TestWeeklyFlow_ISOWeekKeys(t *testing.T) {
	ownerID := id.New()
	medID := id.New()

	txns := []ledger.Transaction{
		// 2026-01-01 is a Thursday, ISO week 1
		newTxn(ownerID, medID, ledger.TypeBought, "1", 10, time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)),
		newTxn(ownerID, medID, ledger.TypeSold, "2", 4, time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)),
		newTxn(ownerID, medID, ledger.TypeSold, "2", 3, time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)),
		// legacy type counts as a purchase
		{ID: id.New(), OwnerID: ownerID, MedicineID: medID, Type: "IMPORT", PartnerName: "P",
			UnitPrice: types.MustMoney("1"), Quantity: 7, CreatedAt: time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)},
	}

	flow := weeklyFlow(txns)
	require.Len(t, flow, 2)

	assert.Equal(t, "2026-W01", flow[0].Week)
	assert.Equal(t, 10, flow[0].Bought)
	assert.Equal(t, 4, flow[0].Sold)

	assert.Equal(t, "2026-W12", flow[1].Week)
	assert.Equal(t, 7, flow[1].Bought)
	assert.Equal(t, 3, flow[1].Sold)
}

func TestRecentTransactions_NewestFirstCapped(t *testing.T) {
	ownerID := id.New()
	medID := id.New()

	var txns []ledger.Transaction
	for i := 0; i < RecentTransactionsLimit+5; i++ {
		txn := newTxn(ownerID, medID, ledger.TypeSold, "2", 1, testDay.Add(-time.Duration(i)*time.Hour))
		txn.PartnerName = fmt.Sprintf("Partner %02d", i)
		txns = append(txns, txn)
	}

	recent := recentTransactions(txns, nil)
	require.Len(t, recent, RecentTransactionsLimit)

	// Newest first, dates emitted as isolated calendar days.
	assert.Equal(t, "2026-03-18", recent[0].Date)
	assert.Equal(t, "2026-03-17", recent[len(recent)-1].Date)
	for i := range recent {
		assert.Equal(t, fmt.Sprintf("Partner %02d", i), recent[i].PartnerName)
	}
}

func TestProfitReport_ExpiredStockWrittenOff(t *testing.T) {
	ownerID := id.New()

	// Expired medicine: bought 8 at cost 10, sold 3 at 20, 5 left on hand.
	expired := newMed(ownerID, "Expired Syrup", "MED-EXP", "10", 5, testDay.AddDate(0, 0, -1))
	// Fresh medicine with no sales at all.
	fresh := newMed(ownerID, "Fresh Tablets", "MED-OK", "2", 10, testDay.AddDate(1, 0, 0))

	txns := []ledger.Transaction{
		newTxn(ownerID, expired.ID, ledger.TypeBought, "10", 8, testDay.AddDate(0, -2, 0)),
		newTxn(ownerID, expired.ID, ledger.TypeSold, "20", 3, testDay.AddDate(0, -1, 0)),
		newTxn(ownerID, fresh.ID, ledger.TypeBought, "2", 10, testDay.AddDate(0, -1, 0)),
	}

	report := profitReport(txns, []medicine.Medicine{expired, fresh}, testDay)
	require.Len(t, report.Rows, 2)

	// Rows are ordered by name.
	row := report.Rows[0]
	assert.Equal(t, "Expired Syrup", row.MedicineName)
	assert.Equal(t, 8, row.Bought)
	assert.Equal(t, 3, row.Sold)
	assert.Equal(t, 5, row.Remaining)
	assertMoney(t, "60", row.Revenue)
	assertMoney(t, "30", row.COGS)
	assertMoney(t, "50", row.ExpiredLoss)
	assertMoney(t, "-20", row.Profit)
	assertMoney(t, "-33.33", row.ProfitPct)

	freshRow := report.Rows[1]
	assert.Equal(t, "Fresh Tablets", freshRow.MedicineName)
	assertMoney(t, "0", freshRow.Revenue)
	assertMoney(t, "0", freshRow.ExpiredLoss)
	assertMoney(t, "0", freshRow.ProfitPct)

	assertMoney(t, "60", report.TotalRevenue)
	assertMoney(t, "50", report.TotalExpiredLoss)
	assertMoney(t, "-20", report.TotalProfit)
	require.NotNil(t, report.ProfitPct)
	assertMoney(t, "-33.33", *report.ProfitPct)
}

func TestProfitReport_PctNilWithoutRevenue(t *testing.T) {
	ownerID := id.New()
	m := newMed(ownerID, "Unsold", "MED-U", "3", 4, testDay.AddDate(1, 0, 0))

	txns := []ledger.Transaction{
		newTxn(ownerID, m.ID, ledger.TypeBought, "3", 4, testDay.AddDate(0, 0, -2)),
	}

	report := profitReport(txns, []medicine.Medicine{m}, testDay)
	assertMoney(t, "0", report.TotalRevenue)
	assert.Nil(t, report.ProfitPct)
}

func TestExpiryDistribution_Buckets(t *testing.T) {
	ownerID := id.New()
	meds := []medicine.Medicine{
		newMed(ownerID, "A", "A", "1", 0, testDay.AddDate(0, 0, -1)),                          // expired
		newMed(ownerID, "B", "B", "1", 0, testDay),                                            // expiring (today)
		newMed(ownerID, "C", "C", "1", 0, testDay.AddDate(0, 0, medicine.ExpiringWindowDays)), // expiring (boundary)
		newMed(ownerID, "D", "D", "1", 0, testDay.AddDate(0, 0, medicine.ExpiringWindowDays+1)),
	}

	dist := expiryDistribution(meds, testDay)
	assert.Equal(t, 1, dist.Expired)
	assert.Equal(t, 2, dist.Expiring)
	assert.Equal(t, 1, dist.OK)
}
