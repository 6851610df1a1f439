// Package reports builds the dashboard report over the owner's ledger
// and medicine catalog. Nothing is precomputed or cached: every report
// is recomputed from the data as of the request.
package reports

import (
	"medstock/internal/core/id"
	"medstock/internal/core/types"
)

// DailySeriesDays is the length of the trailing daily revenue series.
const DailySeriesDays = 60

// TopSellersLimit caps the best-sellers list.
const TopSellersLimit = 10

// RecentTransactionsLimit caps the recent activity feed.
const RecentTransactionsLimit = 15

// RevenueBuckets holds sales revenue accumulated over calendar windows
// all ending today: the day itself, the Monday-start week, the calendar
// month and the calendar year.
type RevenueBuckets struct {
	Today types.Money `json:"today"`
	Week  types.Money `json:"week"`
	Month types.Money `json:"month"`
	Year  types.Money `json:"year"`
}

// DailyRevenue is one day of the trailing revenue series.
type DailyRevenue struct {
	Date    string      `json:"date"` // YYYY-MM-DD
	Revenue types.Money `json:"revenue"`
}

// TopSeller is one row of the best-sellers list.
type TopSeller struct {
	MedicineID   id.ID  `json:"medicineId"`
	MedicineName string `json:"medicineName"`
	QuantitySold int    `json:"quantitySold"`
}

// ExpiryDistribution counts medicines per expiry bucket.
type ExpiryDistribution struct {
	Expired  int `json:"expired"`
	Expiring int `json:"expiring"` // within 30 days, inclusive
	OK       int `json:"ok"`
}

// WeeklyFlow is one ISO week of bought vs sold quantities.
type WeeklyFlow struct {
	Week   string `json:"week"` // YYYY-Www, zero-padded ISO week
	Bought int    `json:"bought"`
	Sold   int    `json:"sold"`
}

// RecentTransaction is one row of the recent activity feed.
type RecentTransaction struct {
	Date         string      `json:"date"` // YYYY-MM-DD
	Type         string      `json:"type"`
	PartnerName  string      `json:"partnerName"`
	MedicineName string      `json:"medicineName"`
	UnitPrice    types.Money `json:"unitPrice"`
	Quantity     int         `json:"quantity"`
	Total        types.Money `json:"total"`
}

// ProfitRow is the per-medicine profitability breakdown.
// Expired stock is written off at cost: once a medicine is expired,
// whatever remains on hand counts as a loss.
type ProfitRow struct {
	MedicineID   id.ID       `json:"medicineId"`
	MedicineName string      `json:"medicineName"`
	Code         string      `json:"code"`
	Bought       int         `json:"bought"`
	Sold         int         `json:"sold"`
	Remaining    int         `json:"remaining"`
	Revenue      types.Money `json:"revenue"`
	COGS         types.Money `json:"cogs"`
	ExpiredLoss  types.Money `json:"expiredLoss"`
	Profit       types.Money `json:"profit"`
	ProfitPct    types.Money `json:"profitPct"` // zero when revenue is zero
}

// ProfitReport aggregates the per-medicine rows.
// ProfitPct is null when total revenue is zero: a margin over nothing
// is undefined, not 0%.
type ProfitReport struct {
	Rows             []ProfitRow  `json:"rows"`
	TotalProfit      types.Money  `json:"totalProfit"`
	TotalExpiredLoss types.Money  `json:"totalExpiredLoss"`
	TotalRevenue     types.Money  `json:"totalRevenue"`
	ProfitPct        *types.Money `json:"profitPct"`
}

// Dashboard is the full report payload.
type Dashboard struct {
	Date               string              `json:"date"` // YYYY-MM-DD, report day
	Revenue            RevenueBuckets      `json:"revenue"`
	DailyRevenue       []DailyRevenue      `json:"dailyRevenue"`
	TopSellers         []TopSeller         `json:"topSellers"`
	ExpiryDistribution ExpiryDistribution  `json:"expiryDistribution"`
	WeeklyFlow         []WeeklyFlow        `json:"weeklyFlow"`
	Recent             []RecentTransaction `json:"recentTransactions"`
	Profit             ProfitReport        `json:"profit"`
}
