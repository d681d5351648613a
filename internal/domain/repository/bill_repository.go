package repository

import (
	"context"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/daftar-app/daftar-api/pkg/pagination"
	"github.com/google/uuid"
)

// BillRepository defines the interface for bill data operations. Create and
// Update persist the bill together with its line items in one storage call.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// GetWithItems retrieves a bill with its line items and customer preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// GetAll returns every bill with line items, for analytics fan-in
	GetAll(ctx context.Context) ([]entity.Bill, error)
	// Update persists the bill's fields and replaces its line items
	Update(ctx context.Context, bill *entity.Bill) error
	// UpdateSums persists only the payment columns (bill_sum untouched)
	UpdateSums(ctx context.Context, id uuid.UUID, paidSum, leftSum int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
