package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	domainRepo "github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/daftar-app/daftar-api/pkg/apperror"
	"github.com/google/uuid"
)

type productRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]entity.Product
}

// NewProductRepository creates an in-memory product repository
func NewProductRepository() domainRepo.ProductRepository {
	return &productRepository{
		products: make(map[uuid.UUID]entity.Product),
	}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	touchID(&product.ID)
	touchTimestamps(&product.CreatedAt, &product.UpdatedAt)
	r.products[product.ID] = *product
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	touchTimestamps(&product.CreatedAt, &product.UpdatedAt)
	r.products[product.ID] = *product
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(params.Search)
	matched := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if params.LowStock && p.Quantity > p.QuantityAlert {
			continue
		}
		matched = append(matched, p)
	}

	asc := params.SortOrder == "ASC" || params.SortOrder == "asc"
	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch params.SortBy {
		case "name":
			less = matched[i].Name < matched[j].Name
		case "quantity":
			less = matched[i].Quantity < matched[j].Quantity
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	params.Pagination.Validate()
	return paginate(matched, params.Pagination.Offset(), params.Pagination.PerPage), total, nil
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]entity.Product, 0)
	for _, p := range r.products {
		if p.Quantity <= p.QuantityAlert {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

// ApplyStockDeltas validates the whole batch against current stock before
// writing anything, so a failing delta leaves every product untouched.
func (r *productRepository) ApplyStockDeltas(ctx context.Context, deltas map[uuid.UUID]int) error {
	if len(deltas) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, delta := range deltas {
		product, ok := r.products[id]
		if !ok {
			return apperror.NewNotFoundError("Product " + id.String())
		}
		if product.Quantity+delta < 0 {
			return apperror.NewInsufficientStockError(id, product.Quantity, -delta)
		}
	}

	for id, delta := range deltas {
		product := r.products[id]
		product.Quantity += delta
		touchTimestamps(&product.CreatedAt, &product.UpdatedAt)
		r.products[id] = product
	}
	return nil
}
