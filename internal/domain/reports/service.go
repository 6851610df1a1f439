package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"medstock/internal/core/id"
	"medstock/internal/core/types"
	"medstock/internal/domain/catalogs/medicine"
	"medstock/internal/domain/ledger"
)

// Service builds dashboard reports.
type Service struct {
	reader Reader
}

// NewService creates a new reports service.
func NewService(reader Reader) *Service {
	return &Service{reader: reader}
}

// Build computes the full dashboard for the owner as of the given date.
// The computation is a pure function over the fetched ledger and catalog;
// empty data yields a zero-valued report, never an error.
func (s *Service) Build(ctx context.Context, ownerID id.ID, today time.Time) (*Dashboard, error) {
	txns, err := s.reader.Transactions(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	meds, err := s.reader.Medicines(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load medicines: %w", err)
	}

	day := truncateToDay(today)

	d := &Dashboard{
		Date:               day.Format("2006-01-02"),
		Revenue:            revenueBuckets(txns, day),
		DailyRevenue:       dailySeries(txns, day),
		TopSellers:         topSellers(txns, meds),
		ExpiryDistribution: expiryDistribution(meds, day),
		WeeklyFlow:         weeklyFlow(txns),
		Recent:             recentTransactions(txns, meds),
		Profit:             profitReport(txns, meds, day),
	}

	return d, nil
}

// revenueBuckets accumulates sales revenue over calendar windows ending today.
// The week starts on Monday.
func revenueBuckets(txns []ledger.Transaction, day time.Time) RevenueBuckets {
	weekStart := day.AddDate(0, 0, -mondayOffset(day))
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	yearStart := time.Date(day.Year(), 1, 1, 0, 0, 0, 0, day.Location())

	b := RevenueBuckets{
		Today: types.Zero(),
		Week:  types.Zero(),
		Month: types.Zero(),
		Year:  types.Zero(),
	}

	for i := range txns {
		t := &txns[i]
		if t.Kind() != ledger.KindSold {
			continue
		}
		txnDay := dayOf(t.CreatedAt, day.Location())
		if txnDay.After(day) {
			continue
		}
		amount := t.TotalAmount()

		if txnDay.Equal(day) {
			b.Today = b.Today.Add(amount)
		}
		if !txnDay.Before(weekStart) {
			b.Week = b.Week.Add(amount)
		}
		if !txnDay.Before(monthStart) {
			b.Month = b.Month.Add(amount)
		}
		if !txnDay.Before(yearStart) {
			b.Year = b.Year.Add(amount)
		}
	}

	return b
}

// dailySeries returns exactly DailySeriesDays consecutive days ending today,
// zero-filled where no sales happened.
func dailySeries(txns []ledger.Transaction, day time.Time) []DailyRevenue {
	start := day.AddDate(0, 0, -(DailySeriesDays - 1))

	byDate := make(map[string]types.Money, DailySeriesDays)
	for i := range txns {
		t := &txns[i]
		if t.Kind() != ledger.KindSold {
			continue
		}
		txnDay := dayOf(t.CreatedAt, day.Location())
		if txnDay.Before(start) || txnDay.After(day) {
			continue
		}
		key := txnDay.Format("2006-01-02")
		byDate[key] = byDate[key].Add(t.TotalAmount())
	}

	series := make([]DailyRevenue, 0, DailySeriesDays)
	for d := start; !d.After(day); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		rev, ok := byDate[key]
		if !ok {
			rev = types.Zero()
		}
		series = append(series, DailyRevenue{Date: key, Revenue: rev})
	}
	return series
}

// topSellers ranks medicines by total sold quantity, descending.
// Ties break by name so the order is deterministic.
func topSellers(txns []ledger.Transaction, meds []medicine.Medicine) []TopSeller {
	names := medicineNames(meds)

	soldQty := make(map[id.ID]int)
	for i := range txns {
		t := &txns[i]
		if t.Kind() != ledger.KindSold {
			continue
		}
		soldQty[t.MedicineID] += t.Quantity
	}

	sellers := make([]TopSeller, 0, len(soldQty))
	for medID, qty := range soldQty {
		name := names[medID]
		if name == "" {
			name = nameFromTxns(txns, medID)
		}
		sellers = append(sellers, TopSeller{
			MedicineID:   medID,
			MedicineName: name,
			QuantitySold: qty,
		})
	}

	sort.SliceStable(sellers, func(i, j int) bool {
		if sellers[i].QuantitySold != sellers[j].QuantitySold {
			return sellers[i].QuantitySold > sellers[j].QuantitySold
		}
		return sellers[i].MedicineName < sellers[j].MedicineName
	})

	if len(sellers) > TopSellersLimit {
		sellers = sellers[:TopSellersLimit]
	}
	return sellers
}

// expiryDistribution counts medicines per expiry bucket as of today.
func expiryDistribution(meds []medicine.Medicine, day time.Time) ExpiryDistribution {
	var dist ExpiryDistribution
	for i := range meds {
		switch meds[i].ExpiryStatusAt(day) {
		case medicine.StatusExpired:
			dist.Expired++
		case medicine.StatusExpiring:
			dist.Expiring++
		default:
			dist.OK++
		}
	}
	return dist
}

// weeklyFlow buckets bought and sold quantities by ISO week.
// The series covers the union of weeks with any activity, ascending;
// a week with only one side present shows zero for the other.
func weeklyFlow(txns []ledger.Transaction) []WeeklyFlow {
	type flow struct{ bought, sold int }
	byWeek := make(map[string]*flow)

	for i := range txns {
		t := &txns[i]
		kind := t.Kind()
		if kind == ledger.KindUnknown {
			continue
		}
		key := isoWeekKey(t.CreatedAt)
		f, ok := byWeek[key]
		if !ok {
			f = &flow{}
			byWeek[key] = f
		}
		if kind == ledger.KindBought {
			f.bought += t.Quantity
		} else {
			f.sold += t.Quantity
		}
	}

	keys := make([]string, 0, len(byWeek))
	for k := range byWeek {
		keys = append(keys, k)
	}
	// Zero-padded YYYY-Www keys sort chronologically as strings.
	sort.Strings(keys)

	series := make([]WeeklyFlow, 0, len(keys))
	for _, k := range keys {
		f := byWeek[k]
		series = append(series, WeeklyFlow{Week: k, Bought: f.bought, Sold: f.sold})
	}
	return series
}

// recentTransactions returns the newest entries, capped.
func recentTransactions(txns []ledger.Transaction, meds []medicine.Medicine) []RecentTransaction {
	names := medicineNames(meds)

	ordered := make([]ledger.Transaction, len(txns))
	copy(ordered, txns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	if len(ordered) > RecentTransactionsLimit {
		ordered = ordered[:RecentTransactionsLimit]
	}

	recent := make([]RecentTransaction, 0, len(ordered))
	for i := range ordered {
		t := &ordered[i]
		name := t.MedicineName
		if name == "" {
			name = names[t.MedicineID]
		}
		recent = append(recent, RecentTransaction{
			Date:         t.CreatedAt.Format("2006-01-02"),
			Type:         string(t.Type),
			PartnerName:  t.PartnerName,
			MedicineName: name,
			UnitPrice:    t.UnitPrice,
			Quantity:     t.Quantity,
			Total:        t.TotalAmount(),
		})
	}
	return recent
}

// profitReport computes the per-medicine breakdown and totals.
//
// For each medicine: revenue is the sum of its sale amounts, cogs is sold
// quantity at cost price, and expired stock is written off at cost for
// whatever remains on hand. profit = revenue - cogs - expired_loss.
func profitReport(txns []ledger.Transaction, meds []medicine.Medicine, day time.Time) ProfitReport {
	type tally struct {
		bought, sold int
		revenue      types.Money
	}
	byMed := make(map[id.ID]*tally)
	for i := range txns {
		t := &txns[i]
		kind := t.Kind()
		if kind == ledger.KindUnknown {
			continue
		}
		ta, ok := byMed[t.MedicineID]
		if !ok {
			ta = &tally{revenue: types.Zero()}
			byMed[t.MedicineID] = ta
		}
		if kind == ledger.KindBought {
			ta.bought += t.Quantity
		} else {
			ta.sold += t.Quantity
			ta.revenue = ta.revenue.Add(t.TotalAmount())
		}
	}

	ordered := make([]medicine.Medicine, len(meds))
	copy(ordered, meds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	report := ProfitReport{
		Rows:             make([]ProfitRow, 0, len(ordered)),
		TotalProfit:      types.Zero(),
		TotalExpiredLoss: types.Zero(),
		TotalRevenue:     types.Zero(),
	}

	for i := range ordered {
		m := &ordered[i]
		ta := byMed[m.ID]
		if ta == nil {
			ta = &tally{revenue: types.Zero()}
		}

		cogs := m.CostPrice.Mul(types.NewMoneyFromInt(int64(ta.sold)))
		expiredLoss := types.Zero()
		if m.IsExpiredAt(day) {
			expiredLoss = m.CostPrice.Mul(types.NewMoneyFromInt(int64(m.QuantityOnHand)))
		}
		profit := ta.revenue.Sub(cogs).Sub(expiredLoss)

		report.Rows = append(report.Rows, ProfitRow{
			MedicineID:   m.ID,
			MedicineName: m.Name,
			Code:         m.Code,
			Bought:       ta.bought,
			Sold:         ta.sold,
			Remaining:    m.QuantityOnHand,
			Revenue:      ta.revenue,
			COGS:         cogs,
			ExpiredLoss:  expiredLoss,
			Profit:       profit,
			ProfitPct:    types.Percent(profit, ta.revenue),
		})

		report.TotalProfit = report.TotalProfit.Add(profit)
		report.TotalExpiredLoss = report.TotalExpiredLoss.Add(expiredLoss)
		report.TotalRevenue = report.TotalRevenue.Add(ta.revenue)
	}

	if !report.TotalRevenue.IsZero() {
		pct := types.Percent(report.TotalProfit, report.TotalRevenue)
		report.ProfitPct = &pct
	}

	return report
}

// --- date helpers ---

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	return truncateToDay(t.In(loc))
}

// mondayOffset returns days since the most recent Monday (0 on Monday).
func mondayOffset(day time.Time) int {
	return (int(day.Weekday()) + 6) % 7
}

// isoWeekKey formats a time as its zero-padded ISO week, e.g. "2026-W07".
func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func medicineNames(meds []medicine.Medicine) map[id.ID]string {
	names := make(map[id.ID]string, len(meds))
	for i := range meds {
		names[meds[i].ID] = meds[i].Name
	}
	return names
}

func nameFromTxns(txns []ledger.Transaction, medID id.ID) string {
	for i := range txns {
		if txns[i].MedicineID == medID && txns[i].MedicineName != "" {
			return txns[i].MedicineName
		}
	}
	return ""
}
