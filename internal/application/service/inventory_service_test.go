package service

import (
	"context"
	"testing"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/daftar-app/daftar-api/internal/infrastructure/repository/memory"
	"github.com/daftar-app/daftar-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetDeltas(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	p3 := uuid.New()

	tests := []struct {
		name     string
		oldItems []StockDelta
		newItems []StockDelta
		want     map[uuid.UUID]int
	}{
		{
			name:     "quantity increase",
			oldItems: []StockDelta{{ProductID: p1, Quantity: 1}},
			newItems: []StockDelta{{ProductID: p1, Quantity: 3}},
			want:     map[uuid.UUID]int{p1: 2},
		},
		{
			name:     "quantity decrease",
			oldItems: []StockDelta{{ProductID: p1, Quantity: 5}},
			newItems: []StockDelta{{ProductID: p1, Quantity: 2}},
			want:     map[uuid.UUID]int{p1: -3},
		},
		{
			name:     "unchanged quantity collapses to nothing",
			oldItems: []StockDelta{{ProductID: p1, Quantity: 4}},
			newItems: []StockDelta{{ProductID: p1, Quantity: 4}},
			want:     map[uuid.UUID]int{},
		},
		{
			name:     "product swapped for another",
			oldItems: []StockDelta{{ProductID: p1, Quantity: 2}},
			newItems: []StockDelta{{ProductID: p2, Quantity: 2}},
			want:     map[uuid.UUID]int{p1: -2, p2: 2},
		},
		{
			name: "mixed add remove and keep",
			oldItems: []StockDelta{
				{ProductID: p1, Quantity: 1},
				{ProductID: p2, Quantity: 2},
			},
			newItems: []StockDelta{
				{ProductID: p1, Quantity: 3},
				{ProductID: p3, Quantity: 4},
			},
			want: map[uuid.UUID]int{p1: 2, p2: -2, p3: 4},
		},
		{
			name:     "empty to empty",
			oldItems: nil,
			newItems: nil,
			want:     map[uuid.UUID]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NetDeltas(tt.oldItems, tt.newItems))
		})
	}
}

func TestApplyDeltaInsufficientStockLeavesNoPartialWrite(t *testing.T) {
	ctx := context.Background()
	productRepo := memory.NewProductRepository()

	rich := &entity.Product{Name: "Rich", Quantity: 100}
	poor := &entity.Product{Name: "Poor", Quantity: 1}
	require.NoError(t, productRepo.Create(ctx, rich))
	require.NoError(t, productRepo.Create(ctx, poor))

	inventory := NewInventoryService(productRepo)

	err := inventory.ApplyDelta(ctx, []StockDelta{
		{ProductID: rich.ID, Quantity: 10},
		{ProductID: poor.ID, Quantity: 5},
	}, DirectionSubtract)

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	var stockErr *apperror.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, poor.ID, stockErr.ProductID)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 5, stockErr.Required)

	// Nothing moved, including the product that had enough stock
	got, err := productRepo.GetByID(ctx, rich.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)

	got, err = productRepo.GetByID(ctx, poor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
}

func TestApplyDeltaAddNeverRejects(t *testing.T) {
	ctx := context.Background()
	productRepo := memory.NewProductRepository()

	product := &entity.Product{Name: "Widget", Quantity: 0}
	require.NoError(t, productRepo.Create(ctx, product))

	inventory := NewInventoryService(productRepo)
	err := inventory.ApplyDelta(ctx, []StockDelta{
		{ProductID: product.ID, Quantity: 7},
	}, DirectionAdd)
	require.NoError(t, err)

	got, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
}

func TestApplyDeltaUnknownProduct(t *testing.T) {
	ctx := context.Background()
	inventory := NewInventoryService(memory.NewProductRepository())

	err := inventory.ApplyDelta(ctx, []StockDelta{
		{ProductID: uuid.New(), Quantity: 1},
	}, DirectionAdd)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestApplyNetDeltasDirectionSign(t *testing.T) {
	ctx := context.Background()
	productRepo := memory.NewProductRepository()

	product := &entity.Product{Name: "Widget", Quantity: 10}
	require.NoError(t, productRepo.Create(ctx, product))

	inventory := NewInventoryService(productRepo)

	// A bill growing by 3 consumes 3 more
	err := inventory.ApplyNetDeltas(ctx, map[uuid.UUID]int{product.ID: 3}, DirectionSubtract)
	require.NoError(t, err)
	got, _ := productRepo.GetByID(ctx, product.ID)
	assert.Equal(t, 7, got.Quantity)

	// A purchase growing by 3 adds 3 more
	err = inventory.ApplyNetDeltas(ctx, map[uuid.UUID]int{product.ID: 3}, DirectionAdd)
	require.NoError(t, err)
	got, _ = productRepo.GetByID(ctx, product.ID)
	assert.Equal(t, 10, got.Quantity)
}
