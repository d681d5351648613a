package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	domainRepo "github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/google/uuid"
)

type billRepository struct {
	mu    sync.RWMutex
	bills map[uuid.UUID]entity.Bill
}

// NewBillRepository creates an in-memory bill repository
func NewBillRepository() domainRepo.BillRepository {
	return &billRepository{
		bills: make(map[uuid.UUID]entity.Bill),
	}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	touchID(&bill.ID)
	touchTimestamps(&bill.CreatedAt, &bill.UpdatedAt)
	for i := range bill.Items {
		touchID(&bill.Items[i].ID)
		bill.Items[i].BillID = bill.ID
		touchTimestamps(&bill.Items[i].CreatedAt, &bill.Items[i].UpdatedAt)
	}
	r.bills[bill.ID] = copyBill(bill)
	return nil
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bill, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	out := copyBill(&bill)
	out.Items = nil
	return &out, nil
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bill, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	out := copyBill(&bill)
	return &out, nil
}

func (r *billRepository) GetAll(ctx context.Context) ([]entity.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bills := make([]entity.Bill, 0, len(r.bills))
	for id := range r.bills {
		bill := r.bills[id]
		bills = append(bills, copyBill(&bill))
	}
	sort.Slice(bills, func(i, j int) bool {
		return bills[i].Date.Before(bills[j].Date)
	})
	return bills, nil
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	touchTimestamps(&bill.CreatedAt, &bill.UpdatedAt)
	for i := range bill.Items {
		touchID(&bill.Items[i].ID)
		bill.Items[i].BillID = bill.ID
		touchTimestamps(&bill.Items[i].CreatedAt, &bill.Items[i].UpdatedAt)
	}
	r.bills[bill.ID] = copyBill(bill)
	return nil
}

func (r *billRepository) UpdateSums(ctx context.Context, id uuid.UUID, paidSum, leftSum int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bill, ok := r.bills[id]
	if !ok {
		return nil
	}
	bill.PaidSum = paidSum
	bill.LeftSum = leftSum
	r.bills[id] = bill
	return nil
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bills, id)
	return nil
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]entity.Bill, 0, len(r.bills))
	for id := range r.bills {
		bill := r.bills[id]
		if params.CustomerID != nil && bill.CustomerID != *params.CustomerID {
			continue
		}
		if params.StartDate != nil && bill.Date.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && bill.Date.After(*params.EndDate) {
			continue
		}
		matched = append(matched, copyBill(&bill))
	}

	asc := params.SortOrder == "ASC" || params.SortOrder == "asc"
	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].Date.Before(matched[j].Date)
		if asc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	params.Pagination.Validate()
	return paginate(matched, params.Pagination.Offset(), params.Pagination.PerPage), total, nil
}
