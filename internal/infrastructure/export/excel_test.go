package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/analytics"
	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *analytics.Report {
	return &analytics.Report{
		Range:       analytics.RangeYearly,
		TotalEarned: 150.50,
		TotalSpent:  40,
		NetProfit:   110.50,
		TopSellingProducts: []analytics.ProductRanking{
			{Product: entity.Product{Name: "Rice 5kg"}, TotalQuantity: 12, TotalRevenue: 150.50},
		},
		TopBuyingCustomers: []analytics.CustomerRanking{
			{Customer: entity.Customer{Name: "Asha Traders"}, TotalSpent: 150.50, TotalTransactions: 3},
		},
		MonthlyBreakdown: []analytics.MonthlySummary{
			{Month: "2026-01", Earned: 100, Spent: 40, Profit: 60},
			{Month: "2026-02", Earned: 50.50, Spent: 0, Profit: 50.50},
		},
	}
}

func TestExportWorkbookLayout(t *testing.T) {
	exportedAt := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	data, err := NewExcelExporter().Export(sampleReport(), exportedAt)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		"Financial Overview",
		"Top Products",
		"Top Customers",
		"Monthly Breakdown",
	}, f.GetSheetList())

	rangeCell, err := f.GetCellValue("Financial Overview", "B2")
	require.NoError(t, err)
	assert.Equal(t, "yearly", rangeCell)

	earned, err := f.GetCellValue("Financial Overview", "B3")
	require.NoError(t, err)
	assert.Equal(t, "150.50", earned)

	exported, err := f.GetCellValue("Financial Overview", "B6")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15 10:30", exported)

	product, err := f.GetCellValue("Top Products", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg", product)

	customer, err := f.GetCellValue("Top Customers", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Asha Traders", customer)

	month, err := f.GetCellValue("Monthly Breakdown", "A3")
	require.NoError(t, err)
	assert.Equal(t, "2026-02", month)
}

func TestExportEmptyReport(t *testing.T) {
	report := &analytics.Report{Range: analytics.RangeAllTime}

	data, err := NewExcelExporter().Export(report, time.Now())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// Header rows exist even with no data rows
	header, err := f.GetCellValue("Top Products", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Product", header)
}
