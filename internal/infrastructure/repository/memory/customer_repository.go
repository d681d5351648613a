package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	domainRepo "github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/daftar-app/daftar-api/pkg/pagination"
	"github.com/google/uuid"
)

type customerRepository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]entity.Customer
}

// NewCustomerRepository creates an in-memory customer repository
func NewCustomerRepository() domainRepo.CustomerRepository {
	return &customerRepository{
		customers: make(map[uuid.UUID]entity.Customer),
	}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	touchID(&customer.ID)
	touchTimestamps(&customer.CreatedAt, &customer.UpdatedAt)
	r.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (r *customerRepository) GetAll(ctx context.Context) ([]entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	touchTimestamps(&customer.CreatedAt, &customer.UpdatedAt)
	r.customers[customer.ID] = *customer
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.customers, id)
	return nil
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(search)
	matched := make([]entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if needle != "" {
			name := strings.ToLower(c.Name)
			phone := ""
			if c.Phone != nil {
				phone = strings.ToLower(*c.Phone)
			}
			if !strings.Contains(name, needle) && !strings.Contains(phone, needle) {
				continue
			}
		}
		matched = append(matched, c)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})

	total := int64(len(matched))
	params.Validate()
	return paginate(matched, params.Offset(), params.PerPage), total, nil
}
