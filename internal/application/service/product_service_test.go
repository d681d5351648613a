package service

import (
	"context"
	"testing"

	"github.com/daftar-app/daftar-api/internal/infrastructure/repository/memory"
	"github.com/daftar-app/daftar-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductStoresPriceAsCents(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(memory.NewProductRepository())

	product, err := svc.CreateProduct(ctx, &CreateProductInput{
		Name:          "Rice 5kg",
		Quantity:      10,
		QuantityAlert: 3,
		UnitPrice:     12.50,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1250), product.UnitPrice)
	assert.Equal(t, 12.50, product.GetUnitPriceDecimal())
	assert.NotEqual(t, uuid.Nil, product.ID)
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(memory.NewProductRepository())

	tests := []struct {
		name  string
		input *CreateProductInput
	}{
		{name: "blank name", input: &CreateProductInput{Name: "  "}},
		{name: "negative quantity", input: &CreateProductInput{Name: "Rice", Quantity: -1}},
		{name: "negative price", input: &CreateProductInput{Name: "Rice", UnitPrice: -0.01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tt.input)
			require.Error(t, err)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 422, appErr.Code)
		})
	}
}

func TestUpdateProductLeavesStockUntouched(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(memory.NewProductRepository())

	product, err := svc.CreateProduct(ctx, &CreateProductInput{
		Name: "Rice 5kg", Quantity: 10, UnitPrice: 12.50,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, product.ID, &UpdateProductInput{
		Name:          "Rice 10kg",
		QuantityAlert: 5,
		UnitPrice:     20,
	})
	require.NoError(t, err)

	assert.Equal(t, "Rice 10kg", updated.Name)
	assert.Equal(t, int64(2000), updated.UnitPrice)
	assert.Equal(t, 10, updated.Quantity)
}

func TestGetProductNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(memory.NewProductRepository())

	_, err := svc.GetProduct(ctx, uuid.New())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
