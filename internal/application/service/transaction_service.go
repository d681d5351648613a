package service

import (
	"context"
	"strings"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/daftar-app/daftar-api/pkg/apperror"
	"github.com/daftar-app/daftar-api/pkg/logger"
	"github.com/daftar-app/daftar-api/pkg/pagination"
	"github.com/google/uuid"
)

// TransactionService owns the purchase transaction lifecycle. It mirrors the
// bill service with the inventory direction reversed: purchases replenish
// stock on create and give it back on delete.
type TransactionService struct {
	tranRepo    repository.TransactionRepository
	productRepo repository.ProductRepository
	inventory   *InventoryService
	log         *logger.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	tranRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	inventory *InventoryService,
	log *logger.Logger,
) *TransactionService {
	return &TransactionService{
		tranRepo:    tranRepo,
		productRepo: productRepo,
		inventory:   inventory,
		log:         log,
	}
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	Source string
	Date   time.Time
	Note   *string
	Items  []LineItemInput
}

// UpdateTransactionInput represents the update transaction input
type UpdateTransactionInput struct {
	Source string
	Date   time.Time
	Note   *string
	Items  []LineItemInput
}

func validateTransactionInput(source string, items []LineItemInput) []apperror.FieldError {
	fieldErrs := validateLineItems(items)
	if strings.TrimSpace(source) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "source", Message: "source is required",
		})
	}
	return fieldErrs
}

// buildTransactionItems converts inputs to entities and returns the
// recomputed cost in cents. Caller-provided costs are never trusted.
func buildTransactionItems(items []LineItemInput) ([]entity.TransactionItem, int64) {
	var cost int64
	tranItems := make([]entity.TransactionItem, 0, len(items))
	for _, item := range items {
		unitPriceCents := int64(item.UnitPrice * 100)
		itemTotal := unitPriceCents * int64(item.Quantity)
		cost += itemTotal
		tranItems = append(tranItems, entity.TransactionItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPriceCents,
			Total:     itemTotal,
		})
	}
	return tranItems, cost
}

func transactionItemDeltas(items []entity.TransactionItem) []StockDelta {
	deltas := make([]StockDelta, 0, len(items))
	for _, item := range items {
		deltas = append(deltas, StockDelta{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return deltas
}

func (s *TransactionService) checkProductsExist(ctx context.Context, items []LineItemInput) error {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		found[p.ID] = true
	}
	for _, item := range items {
		if !found[item.ProductID] {
			return apperror.NewNotFoundError("Product " + item.ProductID.String())
		}
	}
	return nil
}

// CreateTransaction creates a purchase and adds its quantities to stock,
// compensating with a record delete if the inventory batch fails.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	if fieldErrs := validateTransactionInput(input.Source, input.Items); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	if err := s.checkProductsExist(ctx, input.Items); err != nil {
		return nil, err
	}

	items, cost := buildTransactionItems(input.Items)

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	tran := &entity.Transaction{
		Source: input.Source,
		Date:   date,
		Cost:   cost,
		Note:   input.Note,
		Items:  items,
	}

	if err := s.tranRepo.Create(ctx, tran); err != nil {
		return nil, err
	}

	if err := s.inventory.ApplyDelta(ctx, transactionItemDeltas(items), DirectionAdd); err != nil {
		if delErr := s.tranRepo.Delete(ctx, tran.ID); delErr != nil {
			reconErr := apperror.NewReconciliationError("transaction", tran.ID, "create", delErr)
			s.log.Error().Err(delErr).
				Str("transaction_id", tran.ID.String()).
				Str("operation", "create").
				Msg("compensating transaction delete failed, record exists without stock effect")
			return nil, reconErr
		}
		return nil, err
	}

	return s.tranRepo.GetWithItems(ctx, tran.ID)
}

// UpdateTransaction replaces a transaction's fields and line items, applying
// the net stock change with the purchase sign (additions on growth).
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, input *UpdateTransactionInput) (*entity.Transaction, error) {
	existing, err := s.tranRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	if fieldErrs := validateTransactionInput(input.Source, input.Items); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	if err := s.checkProductsExist(ctx, input.Items); err != nil {
		return nil, err
	}

	items, cost := buildTransactionItems(input.Items)

	date := input.Date
	if date.IsZero() {
		date = existing.Date
	}

	updated := &entity.Transaction{
		ID:        existing.ID,
		Source:    input.Source,
		Date:      date,
		Cost:      cost,
		Note:      input.Note,
		CreatedAt: existing.CreatedAt,
		Items:     items,
	}

	if err := s.tranRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	net := NetDeltas(transactionItemDeltas(existing.Items), transactionItemDeltas(items))
	if err := s.inventory.ApplyNetDeltas(ctx, net, DirectionAdd); err != nil {
		if revertErr := s.tranRepo.Update(ctx, existing); revertErr != nil {
			reconErr := apperror.NewReconciliationError("transaction", id, "update", revertErr)
			s.log.Error().Err(revertErr).
				Str("transaction_id", id.String()).
				Str("operation", "update").
				Msg("transaction revert after inventory failure failed, record and stock diverged")
			return nil, reconErr
		}
		return nil, err
	}

	return s.tranRepo.GetWithItems(ctx, id)
}

// DeleteTransaction removes a purchase and subtracts its quantities from
// stock again. The subtraction can be rejected when the purchased stock has
// already been sold on; with the record already gone that is surfaced as a
// reconciliation error.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	existing, err := s.tranRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Transaction")
	}

	if err := s.tranRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.inventory.ApplyDelta(ctx, transactionItemDeltas(existing.Items), DirectionSubtract); err != nil {
		reconErr := apperror.NewReconciliationError("transaction", id, "delete", err)
		s.log.Error().Err(err).
			Str("transaction_id", id.String()).
			Str("operation", "delete").
			Msg("stock removal after transaction delete failed, inventory overstated")
		return reconErr
	}

	return nil
}

// GetTransaction retrieves a transaction with its line items
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tran, err := s.tranRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if tran == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return tran, nil
}

// ListTransactions lists transactions with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	trans, total, err := s.tranRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(trans, pag), nil
}
