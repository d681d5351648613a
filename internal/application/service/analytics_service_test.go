package service

import (
	"context"
	"testing"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/analytics"
	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/daftar-app/daftar-api/internal/infrastructure/repository/memory"
	"github.com/daftar-app/daftar-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The report is derived end to end through the write services, so the sums
// reflect what the billing and purchasing paths actually persisted.
func TestGetReportFromWrittenHistory(t *testing.T) {
	ctx := context.Background()

	customerRepo := memory.NewCustomerRepository()
	productRepo := memory.NewProductRepository()
	billRepo := memory.NewBillRepository()
	tranRepo := memory.NewTransactionRepository()
	log := logger.New(logger.Config{Level: "error"})

	inventory := NewInventoryService(productRepo)
	billSvc := NewBillService(billRepo, customerRepo, productRepo, inventory, log)
	tranSvc := NewTransactionService(tranRepo, productRepo, inventory, log)
	analyticsSvc := NewAnalyticsService(billRepo, tranRepo, customerRepo, productRepo)

	customer := &entity.Customer{Name: "Asha Traders"}
	require.NoError(t, customerRepo.Create(ctx, customer))
	product := &entity.Product{Name: "Rice 5kg", Quantity: 0}
	require.NoError(t, productRepo.Create(ctx, product))

	// Buy 10 at 8.00, sell 4 at 12.50
	_, err := tranSvc.CreateTransaction(ctx, &CreateTransactionInput{
		Source: "Wholesale Market",
		Date:   time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Items:  []LineItemInput{{ProductID: product.ID, Quantity: 10, UnitPrice: 8}},
	})
	require.NoError(t, err)

	_, err = billSvc.CreateBill(ctx, &CreateBillInput{
		CustomerID: customer.ID,
		Date:       time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
		Items:      []LineItemInput{{ProductID: product.ID, Quantity: 4, UnitPrice: 12.50}},
	})
	require.NoError(t, err)

	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	report, err := analyticsSvc.GetReport(ctx, analytics.RangeYearly, now)
	require.NoError(t, err)

	assert.Equal(t, 50.0, report.TotalEarned)
	assert.Equal(t, 80.0, report.TotalSpent)
	assert.Equal(t, -30.0, report.NetProfit)

	require.Len(t, report.TopSellingProducts, 1)
	assert.Equal(t, 4, report.TopSellingProducts[0].TotalQuantity)
	require.Len(t, report.TopBuyingCustomers, 1)
	assert.Equal(t, "Asha Traders", report.TopBuyingCustomers[0].Customer.Name)
	assert.Equal(t, 50.0, report.TopBuyingCustomers[0].TotalSpent)

	require.Len(t, report.MonthlyBreakdown, 1)
	assert.Equal(t, "2026-02", report.MonthlyBreakdown[0].Month)
	assert.Equal(t, -30.0, report.MonthlyBreakdown[0].Profit)
}
