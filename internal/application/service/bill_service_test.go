package service

import (
	"context"
	"testing"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/daftar-app/daftar-api/internal/infrastructure/repository/memory"
	"github.com/daftar-app/daftar-api/pkg/apperror"
	"github.com/daftar-app/daftar-api/pkg/logger"
	"github.com/daftar-app/daftar-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type billFixture struct {
	service      *BillService
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	billRepo     repository.BillRepository
	customer     *entity.Customer
}

func newBillFixture(t *testing.T) *billFixture {
	t.Helper()

	customerRepo := memory.NewCustomerRepository()
	productRepo := memory.NewProductRepository()
	billRepo := memory.NewBillRepository()
	log := logger.New(logger.Config{Level: "error"})

	customer := &entity.Customer{Name: "Asha Traders"}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	return &billFixture{
		service:      NewBillService(billRepo, customerRepo, productRepo, NewInventoryService(productRepo), log),
		customerRepo: customerRepo,
		productRepo:  productRepo,
		billRepo:     billRepo,
		customer:     customer,
	}
}

func (f *billFixture) addProduct(t *testing.T, name string, quantity int, unitPrice float64) *entity.Product {
	t.Helper()
	product := &entity.Product{Name: name, Quantity: quantity}
	product.SetUnitPriceFromDecimal(unitPrice)
	require.NoError(t, f.productRepo.Create(context.Background(), product))
	return product
}

func (f *billFixture) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	product, err := f.productRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, product)
	return product.Quantity
}

func TestCreateBillConsumesStockAndComputesSums(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Rice 5kg", 5, 12.50)

	bill, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		PaidSum:    10,
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 3, UnitPrice: 12.50},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, bill)

	assert.Equal(t, 2, f.stockOf(t, product.ID))

	// 3 x 12.50 = 37.50, stored as cents
	assert.Equal(t, int64(3750), bill.BillSum)
	assert.Equal(t, int64(1000), bill.PaidSum)
	assert.Equal(t, bill.BillSum-bill.PaidSum, bill.LeftSum)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, int64(1250), bill.Items[0].UnitPrice)
	assert.Equal(t, int64(3750), bill.Items[0].Total)
}

func TestCreateBillIgnoresClientSums(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Sugar", 10, 2)

	// The request carries no bill sum at all; it is derived from the items
	bill, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 4, UnitPrice: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(800), bill.BillSum)
	assert.Equal(t, int64(0), bill.PaidSum)
	assert.Equal(t, int64(800), bill.LeftSum)
}

func TestCreateBillInsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Rice 5kg", 5, 12.50)

	_, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 6, UnitPrice: 12.50},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Stock untouched and the bill record compensated away
	assert.Equal(t, 5, f.stockOf(t, product.ID))
	bills, err := f.billRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestCreateBillPaidExceedingSumRejected(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Sugar", 10, 2)

	_, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		PaidSum:    9.99,
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 1, UnitPrice: 2},
		},
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.Code)
	assert.Equal(t, 10, f.stockOf(t, product.ID))
}

func TestCreateBillUnknownCustomer(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Sugar", 10, 2)

	_, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: uuid.New(),
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 1, UnitPrice: 2},
		},
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCreateBillUnknownProduct(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)

	_, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: 2},
		},
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestCreateBillValidation(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Sugar", 10, 2)

	tests := []struct {
		name  string
		input *CreateBillInput
	}{
		{
			name:  "no items",
			input: &CreateBillInput{CustomerID: f.customer.ID},
		},
		{
			name: "zero quantity",
			input: &CreateBillInput{
				CustomerID: f.customer.ID,
				Items:      []LineItemInput{{ProductID: product.ID, Quantity: 0, UnitPrice: 2}},
			},
		},
		{
			name: "negative unit price",
			input: &CreateBillInput{
				CustomerID: f.customer.ID,
				Items:      []LineItemInput{{ProductID: product.ID, Quantity: 1, UnitPrice: -1}},
			},
		},
		{
			name: "negative paid sum",
			input: &CreateBillInput{
				CustomerID: f.customer.ID,
				PaidSum:    -5,
				Items:      []LineItemInput{{ProductID: product.ID, Quantity: 1, UnitPrice: 2}},
			},
		},
		{
			name: "missing customer id",
			input: &CreateBillInput{
				Items: []LineItemInput{{ProductID: product.ID, Quantity: 1, UnitPrice: 2}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateBill(ctx, tt.input)
			require.Error(t, err)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 422, appErr.Code)
		})
	}
}

func TestUpdateBillAppliesNetStockChange(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	p1 := f.addProduct(t, "Rice", 10, 3)
	p2 := f.addProduct(t, "Sugar", 10, 2)

	bill, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: p1.ID, Quantity: 1, UnitPrice: 3},
			{ProductID: p2.ID, Quantity: 4, UnitPrice: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, f.stockOf(t, p1.ID))
	assert.Equal(t, 6, f.stockOf(t, p2.ID))

	// p1 grows 1 -> 3 (consumes 2 more), p2 shrinks 4 -> 2 (returns 2)
	updated, err := f.service.UpdateBill(ctx, bill.ID, &UpdateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: p1.ID, Quantity: 3, UnitPrice: 3},
			{ProductID: p2.ID, Quantity: 2, UnitPrice: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, f.stockOf(t, p1.ID))
	assert.Equal(t, 8, f.stockOf(t, p2.ID))
	assert.Equal(t, int64(1300), updated.BillSum)
}

func TestUpdateBillInsufficientStockRevertsRecord(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Rice", 5, 3)

	bill, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 2, UnitPrice: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, f.stockOf(t, product.ID))

	// Growing to 10 needs 8 more with only 3 left
	_, err = f.service.UpdateBill(ctx, bill.ID, &UpdateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 10, UnitPrice: 3},
		},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Stock and record both back at the prior state
	assert.Equal(t, 3, f.stockOf(t, product.ID))
	got, err := f.service.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, int64(600), got.BillSum)
}

func TestDeleteBillRestoresStock(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Rice", 5, 3)

	bill, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 3, UnitPrice: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.stockOf(t, product.ID))

	require.NoError(t, f.service.DeleteBill(ctx, bill.ID))
	assert.Equal(t, 5, f.stockOf(t, product.ID))

	_, err = f.service.GetBill(ctx, bill.ID)
	require.Error(t, err)
}

func TestPayBill(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Rice", 10, 5)

	bill, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 4, UnitPrice: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), bill.LeftSum)

	paid, err := f.service.PayBill(ctx, bill.ID, 12.50)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), paid.PaidSum)
	assert.Equal(t, int64(750), paid.LeftSum)

	// Paying the full sum zeroes out the remainder
	paid, err = f.service.PayBill(ctx, bill.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), paid.PaidSum)
	assert.Equal(t, int64(0), paid.LeftSum)
}

func TestPayBillOutOfBounds(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Rice", 10, 5)

	bill, err := f.service.CreateBill(ctx, &CreateBillInput{
		CustomerID: f.customer.ID,
		Items: []LineItemInput{
			{ProductID: product.ID, Quantity: 2, UnitPrice: 5},
		},
	})
	require.NoError(t, err)

	_, err = f.service.PayBill(ctx, bill.ID, 10.01)
	require.Error(t, err)

	_, err = f.service.PayBill(ctx, bill.ID, -1)
	require.Error(t, err)

	// Payment attempts never moved stock
	assert.Equal(t, 8, f.stockOf(t, product.ID))
}

func TestListBillsFiltersByCustomer(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	product := f.addProduct(t, "Rice", 100, 1)

	other := &entity.Customer{Name: "Beta Stores"}
	require.NoError(t, f.customerRepo.Create(ctx, other))

	for _, customerID := range []uuid.UUID{f.customer.ID, f.customer.ID, other.ID} {
		_, err := f.service.CreateBill(ctx, &CreateBillInput{
			CustomerID: customerID,
			Items: []LineItemInput{
				{ProductID: product.ID, Quantity: 1, UnitPrice: 1},
			},
		})
		require.NoError(t, err)
	}

	result, err := f.service.ListBills(ctx, &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
		CustomerID: &f.customer.ID,
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
}
