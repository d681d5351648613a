package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	domainRepo "github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/google/uuid"
)

type transactionRepository struct {
	mu           sync.RWMutex
	transactions map[uuid.UUID]entity.Transaction
}

// NewTransactionRepository creates an in-memory transaction repository
func NewTransactionRepository() domainRepo.TransactionRepository {
	return &transactionRepository{
		transactions: make(map[uuid.UUID]entity.Transaction),
	}
}

func (r *transactionRepository) Create(ctx context.Context, tran *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	touchID(&tran.ID)
	touchTimestamps(&tran.CreatedAt, &tran.UpdatedAt)
	for i := range tran.Items {
		touchID(&tran.Items[i].ID)
		tran.Items[i].TransactionID = tran.ID
		touchTimestamps(&tran.Items[i].CreatedAt, &tran.Items[i].UpdatedAt)
	}
	r.transactions[tran.ID] = copyTransaction(tran)
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tran, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	out := copyTransaction(&tran)
	out.Items = nil
	return &out, nil
}

func (r *transactionRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tran, ok := r.transactions[id]
	if !ok {
		return nil, nil
	}
	out := copyTransaction(&tran)
	return &out, nil
}

func (r *transactionRepository) GetAll(ctx context.Context) ([]entity.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trans := make([]entity.Transaction, 0, len(r.transactions))
	for id := range r.transactions {
		tran := r.transactions[id]
		trans = append(trans, copyTransaction(&tran))
	}
	sort.Slice(trans, func(i, j int) bool {
		return trans[i].Date.Before(trans[j].Date)
	})
	return trans, nil
}

func (r *transactionRepository) Update(ctx context.Context, tran *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	touchTimestamps(&tran.CreatedAt, &tran.UpdatedAt)
	for i := range tran.Items {
		touchID(&tran.Items[i].ID)
		tran.Items[i].TransactionID = tran.ID
		touchTimestamps(&tran.Items[i].CreatedAt, &tran.Items[i].UpdatedAt)
	}
	r.transactions[tran.ID] = copyTransaction(tran)
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.transactions, id)
	return nil
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(params.Search)
	matched := make([]entity.Transaction, 0, len(r.transactions))
	for id := range r.transactions {
		tran := r.transactions[id]
		if needle != "" && !strings.Contains(strings.ToLower(tran.Source), needle) {
			continue
		}
		if params.StartDate != nil && tran.Date.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && tran.Date.After(*params.EndDate) {
			continue
		}
		matched = append(matched, copyTransaction(&tran))
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
