package analytics

import (
	"testing"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in      string
		want    Range
		wantErr bool
	}{
		{in: "monthly", want: RangeMonthly},
		{in: "last_6_months", want: RangeLast6Months},
		{in: "yearly", want: RangeYearly},
		{in: "all_time", want: RangeAllTime},
		{in: "", want: RangeAllTime},
		{in: "weekly", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseRange(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRangeCutoff(t *testing.T) {
	now := date(2026, time.March, 15)

	cutoff, ok := RangeMonthly.Cutoff(now)
	require.True(t, ok)
	assert.Equal(t, date(2026, time.March, 1), cutoff)

	cutoff, ok = RangeLast6Months.Cutoff(now)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.September, 1), cutoff)

	cutoff, ok = RangeYearly.Cutoff(now)
	require.True(t, ok)
	assert.Equal(t, date(2026, time.January, 1), cutoff)

	_, ok = RangeAllTime.Cutoff(now)
	assert.False(t, ok)
}

func TestComputeYearlyFiltersOutPriorYears(t *testing.T) {
	now := date(2026, time.March, 15)
	customer := entity.Customer{ID: uuid.New(), Name: "Asha Traders"}

	bills := []entity.Bill{
		{ID: uuid.New(), CustomerID: customer.ID, Date: date(2026, time.February, 2), BillSum: 10000},
		{ID: uuid.New(), CustomerID: customer.ID, Date: date(2025, time.December, 20), BillSum: 99999},
	}
	transactions := []entity.Transaction{
		{ID: uuid.New(), Date: date(2026, time.January, 5), Cost: 4000},
		{ID: uuid.New(), Date: date(2024, time.June, 1), Cost: 77777},
	}

	report := Compute(bills, transactions, []entity.Customer{customer}, nil, RangeYearly, now)

	assert.Equal(t, 100.0, report.TotalEarned)
	assert.Equal(t, 40.0, report.TotalSpent)
	assert.Equal(t, 60.0, report.NetProfit)
}

func TestComputeExcludesUndatedRecords(t *testing.T) {
	now := date(2026, time.March, 15)

	bills := []entity.Bill{
		{ID: uuid.New(), Date: time.Time{}, BillSum: 5000},
		{ID: uuid.New(), Date: date(2026, time.March, 1), BillSum: 2000},
	}

	report := Compute(bills, nil, nil, nil, RangeMonthly, now)
	assert.Equal(t, 20.0, report.TotalEarned)

	// All-time keeps undated records out of buckets but in the totals
	report = Compute(bills, nil, nil, nil, RangeAllTime, now)
	assert.Equal(t, 70.0, report.TotalEarned)
	require.Len(t, report.MonthlyBreakdown, 1)
	assert.Equal(t, "2026-03", report.MonthlyBreakdown[0].Month)
}

func TestComputeTopProductsRankedBySnapshotRevenue(t *testing.T) {
	now := date(2026, time.March, 15)
	p1 := entity.Product{ID: uuid.New(), Name: "Cheap", UnitPrice: 100}
	p2 := entity.Product{ID: uuid.New(), Name: "Expensive", UnitPrice: 10000}

	bills := []entity.Bill{
		{
			ID:   uuid.New(),
			Date: date(2026, time.February, 2),
			Items: []entity.BillItem{
				// Snapshot prices differ from the live product prices
				{ProductID: p1.ID, Quantity: 10, UnitPrice: 200},
				{ProductID: p2.ID, Quantity: 1, UnitPrice: 5000},
			},
		},
	}

	report := Compute(bills, nil, nil, []entity.Product{p1, p2}, RangeAllTime, now)
	require.Len(t, report.TopSellingProducts, 2)

	// 1 x 50.00 outranks 10 x 2.00 despite the lower quantity
	assert.Equal(t, "Expensive", report.TopSellingProducts[0].Product.Name)
	assert.Equal(t, 50.0, report.TopSellingProducts[0].TotalRevenue)
	assert.Equal(t, "Cheap", report.TopSellingProducts[1].Product.Name)
	assert.Equal(t, 20.0, report.TopSellingProducts[1].TotalRevenue)
	assert.Equal(t, 10, report.TopSellingProducts[1].TotalQuantity)
}

func TestComputeDropsRankingsWithMissingJoins(t *testing.T) {
	now := date(2026, time.March, 15)
	known := entity.Product{ID: uuid.New(), Name: "Known"}

	bills := []entity.Bill{
		{
			ID:         uuid.New(),
			CustomerID: uuid.New(), // customer no longer exists
			Date:       date(2026, time.February, 2),
			BillSum:    1000,
			Items: []entity.BillItem{
				{ProductID: known.ID, Quantity: 1, UnitPrice: 500},
				{ProductID: uuid.New(), Quantity: 9, UnitPrice: 900}, // deleted product
			},
		},
	}

	report := Compute(bills, nil, nil, []entity.Product{known}, RangeAllTime, now)

	require.Len(t, report.TopSellingProducts, 1)
	assert.Equal(t, "Known", report.TopSellingProducts[0].Product.Name)
	assert.Empty(t, report.TopBuyingCustomers)

	// Totals still count the full bill
	assert.Equal(t, 10.0, report.TotalEarned)
}

func TestComputeTopListsCappedAtTen(t *testing.T) {
	now := date(2026, time.March, 15)

	var products []entity.Product
	var items []entity.BillItem
	for i := 0; i < 15; i++ {
		p := entity.Product{ID: uuid.New(), Name: "P"}
		products = append(products, p)
		items = append(items, entity.BillItem{ProductID: p.ID, Quantity: 1, UnitPrice: int64(100 * (i + 1))})
	}
	bills := []entity.Bill{{ID: uuid.New(), Date: date(2026, time.January, 1), Items: items}}

	report := Compute(bills, nil, nil, products, RangeAllTime, now)
	assert.Len(t, report.TopSellingProducts, 10)
	// Highest snapshot revenue first
	assert.Equal(t, 15.0, report.TopSellingProducts[0].TotalRevenue)
}

func TestComputeMonthlyBreakdownAscending(t *testing.T) {
	now := date(2026, time.June, 1)

	bills := []entity.Bill{
		{ID: uuid.New(), Date: date(2026, time.March, 10), BillSum: 3000},
		{ID: uuid.New(), Date: date(2026, time.January, 5), BillSum: 1000},
	}
	transactions := []entity.Transaction{
		{ID: uuid.New(), Date: date(2026, time.January, 20), Cost: 500},
		{ID: uuid.New(), Date: date(2026, time.February, 14), Cost: 700},
	}

	report := Compute(bills, transactions, nil, nil, RangeAllTime, now)
	require.Len(t, report.MonthlyBreakdown, 3)

	assert.Equal(t, "2026-01", report.MonthlyBreakdown[0].Month)
	assert.Equal(t, 10.0, report.MonthlyBreakdown[0].Earned)
	assert.Equal(t, 5.0, report.MonthlyBreakdown[0].Spent)
	assert.Equal(t, 5.0, report.MonthlyBreakdown[0].Profit)

	assert.Equal(t, "2026-02", report.MonthlyBreakdown[1].Month)
	assert.Equal(t, 0.0, report.MonthlyBreakdown[1].Earned)
	assert.Equal(t, 7.0, report.MonthlyBreakdown[1].Spent)

	assert.Equal(t, "2026-03", report.MonthlyBreakdown[2].Month)
	assert.Equal(t, 30.0, report.MonthlyBreakdown[2].Earned)
}
