package repository

import (
	"context"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/daftar-app/daftar-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionRepository defines the interface for purchase transaction data
// operations. Create and Update persist the transaction together with its
// line items in one storage call.
type TransactionRepository interface {
	Create(ctx context.Context, tran *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// GetWithItems retrieves a transaction with its line items preloaded
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// GetAll returns every transaction with line items, for analytics fan-in
	GetAll(ctx context.Context) ([]entity.Transaction, error)
	// Update persists the transaction's fields and replaces its line items
	Update(ctx context.Context, tran *entity.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
