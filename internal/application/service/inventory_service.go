package service

import (
	"context"

	"github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/google/uuid"
)

// Direction tells the inventory ledger which way a batch of quantities moves
// stock. Bills subtract, purchase transactions add.
type Direction string

const (
	DirectionAdd      Direction = "add"
	DirectionSubtract Direction = "subtract"
)

// StockDelta is one product's quantity within a ledger batch. Quantity is
// always positive; Direction supplies the sign.
type StockDelta struct {
	ProductID uuid.UUID
	Quantity  int
}

// InventoryService is the inventory ledger. It is the only mutation path for
// product stock quantities: every bill or transaction write funnels its
// inventory side effect through a single batch call here, so partial
// application can never be observed between lines of the same document.
type InventoryService struct {
	productRepo repository.ProductRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(productRepo repository.ProductRepository) *InventoryService {
	return &InventoryService{productRepo: productRepo}
}

// ApplyDelta applies one signed quantity per product, as a single
// all-or-nothing batch. Fails with a not-found error for a missing product
// or apperror.InsufficientStockError when stock would go negative; in both
// cases nothing is written.
func (s *InventoryService) ApplyDelta(ctx context.Context, items []StockDelta, direction Direction) error {
	deltas := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		if direction == DirectionSubtract {
			deltas[item.ProductID] -= item.Quantity
		} else {
			deltas[item.ProductID] += item.Quantity
		}
	}
	return s.applyDeltas(ctx, deltas)
}

// ApplyNetDeltas applies a precomputed net delta map (see NetDeltas) in the
// direction the document type moves stock.
func (s *InventoryService) ApplyNetDeltas(ctx context.Context, net map[uuid.UUID]int, direction Direction) error {
	deltas := make(map[uuid.UUID]int, len(net))
	for id, qty := range net {
		if direction == DirectionSubtract {
			deltas[id] = -qty
		} else {
			deltas[id] = qty
		}
	}
	return s.applyDeltas(ctx, deltas)
}

func (s *InventoryService) applyDeltas(ctx context.Context, deltas map[uuid.UUID]int) error {
	for id, qty := range deltas {
		if qty == 0 {
			delete(deltas, id)
		}
	}
	if len(deltas) == 0 {
		return nil
	}
	return s.productRepo.ApplyStockDeltas(ctx, deltas)
}

// NetDeltas collapses an edit's old and new line items into one signed
// quantity change per product (new minus old). Collapsing first means a
// quantity moved from one product to another within the same edit cannot
// spuriously reject for insufficient stock before its reversal is accounted
// for.
func NetDeltas(oldItems, newItems []StockDelta) map[uuid.UUID]int {
	net := make(map[uuid.UUID]int)
	for _, item := range oldItems {
		net[item.ProductID] -= item.Quantity
	}
	for _, item := range newItems {
		net[item.ProductID] += item.Quantity
	}
	for id, qty := range net {
		if qty == 0 {
			delete(net, id)
		}
	}
	return net
}
