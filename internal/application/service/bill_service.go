package service

import (
	"context"
	"fmt"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/daftar-app/daftar-api/pkg/apperror"
	"github.com/daftar-app/daftar-api/pkg/logger"
	"github.com/daftar-app/daftar-api/pkg/pagination"
	"github.com/google/uuid"
)

// BillService owns the bill lifecycle: it derives bill_sum from line items,
// keeps left_sum equal to bill_sum - paid_sum, and pairs every record write
// with its inventory side effect (bills consume stock). Entity write and
// inventory write are separate storage calls without a shared transaction,
// so each multi-step path carries an explicit compensating action.
type BillService struct {
	billRepo     repository.BillRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	inventory    *InventoryService
	log          *logger.Logger
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	inventory *InventoryService,
	log *logger.Logger,
) *BillService {
	return &BillService{
		billRepo:     billRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		inventory:    inventory,
		log:          log,
	}
}

// LineItemInput represents a line item in a bill or transaction request
type LineItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice float64
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	CustomerID uuid.UUID
	Date       time.Time
	PaidSum    float64
	Note       *string
	Items      []LineItemInput
}

// UpdateBillInput represents the update bill input
type UpdateBillInput struct {
	CustomerID uuid.UUID
	Date       time.Time
	PaidSum    float64
	Note       *string
	Items      []LineItemInput
}

// validateLineItems centralizes line item validation for bills and
// transactions, returning field-level errors for the caller to correct.
func validateLineItems(items []LineItemInput) []apperror.FieldError {
	var fieldErrs []apperror.FieldError
	if len(items) == 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "items", Message: "at least one line item is required",
		})
	}
	for i, item := range items {
		if item.ProductID == uuid.Nil {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].product_id", i), Message: "product id is required",
			})
		}
		if item.Quantity <= 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].quantity", i), Message: "quantity must be greater than zero",
			})
		}
		if item.UnitPrice < 0 {
			fieldErrs = append(fieldErrs, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].unit_price", i), Message: "unit price must not be negative",
			})
		}
	}
	return fieldErrs
}

// buildBillItems converts inputs to entities and returns the recomputed
// bill sum in cents. Caller-provided sums are never trusted.
func buildBillItems(items []LineItemInput) ([]entity.BillItem, int64) {
	var billSum int64
	billItems := make([]entity.BillItem, 0, len(items))
	for _, item := range items {
		unitPriceCents := int64(item.UnitPrice * 100)
		itemTotal := unitPriceCents * int64(item.Quantity)
		billSum += itemTotal
		billItems = append(billItems, entity.BillItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPriceCents,
			Total:     itemTotal,
		})
	}
	return billItems, billSum
}

func billItemDeltas(items []entity.BillItem) []StockDelta {
	deltas := make([]StockDelta, 0, len(items))
	for _, item := range items {
		deltas = append(deltas, StockDelta{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return deltas
}

// checkProductsExist ensures every referenced product exists before any
// record is written.
func (s *BillService) checkProductsExist(ctx context.Context, items []LineItemInput) error {
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
			return apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
	}
	return nil
}

// CreateBill creates a new bill and subtracts its quantities from stock.
// If the inventory batch is rejected, the already-persisted bill is removed
// again (compensating delete).
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	fieldErrs := validateLineItems(input.Items)
	if input.CustomerID == uuid.Nil {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "customer_id", Message: "customer id is required",
		})
	}
	if input.PaidSum < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "paid_sum", Message: "paid sum must not be negative",
		})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if err := s.checkProductsExist(ctx, input.Items); err != nil {
		return nil, err
	}

	items, billSum := buildBillItems(input.Items)
	paidCents := int64(input.PaidSum * 100)
	if paidCents > billSum {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "paid_sum", Message: "paid sum must not exceed the bill sum",
		}})
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	bill := &entity.Bill{
		CustomerID: input.CustomerID,
		Date:       date,
		BillSum:    billSum,
		PaidSum:    paidCents,
		LeftSum:    billSum - paidCents,
		Note:       input.Note,
		Items:      items,
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	if err := s.inventory.ApplyDelta(ctx, billItemDeltas(items), DirectionSubtract); err != nil {
		// Stock was not touched; compensate by removing the bill record
		if delErr := s.billRepo.Delete(ctx, bill.ID); delErr != nil {
			reconErr := apperror.NewReconciliationError("bill", bill.ID, "create", delErr)
			s.log.Error().Err(delErr).
				Str("bill_id", bill.ID.String()).
				Str("operation", "create").
				Msg("compensating bill delete failed, bill exists without stock deduction")
			return nil, reconErr
		}
		return nil, err
	}

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

// UpdateBill replaces a bill's fields and line items, then applies the net
// per-product stock change between old and new items. On inventory failure
// the prior record state is restored best-effort.
func (s *BillService) UpdateBill(ctx context.Context, id uuid.UUID, input *UpdateBillInput) (*entity.Bill, error) {
	existing, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	fieldErrs := validateLineItems(input.Items)
	if input.CustomerID == uuid.Nil {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "customer_id", Message: "customer id is required",
		})
	}
	if input.PaidSum < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "paid_sum", Message: "paid sum must not be negative",
		})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	if err := s.checkProductsExist(ctx, input.Items); err != nil {
		return nil, err
	}

	items, billSum := buildBillItems(input.Items)
	paidCents := int64(input.PaidSum * 100)
	if paidCents > billSum {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "paid_sum", Message: "paid sum must not exceed the bill sum",
		}})
	}

	date := input.Date
	if date.IsZero() {
		date = existing.Date
	}

	updated := &entity.Bill{
		ID:         existing.ID,
		CustomerID: input.CustomerID,
		Date:       date,
		BillSum:    billSum,
		PaidSum:    paidCents,
		LeftSum:    billSum - paidCents,
		Note:       input.Note,
		CreatedAt:  existing.CreatedAt,
		Items:      items,
	}

	if err := s.billRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	net := NetDeltas(billItemDeltas(existing.Items), billItemDeltas(items))
	if err := s.inventory.ApplyNetDeltas(ctx, net, DirectionSubtract); err != nil {
		// The record already changed; restore the prior state best-effort
		if revertErr := s.billRepo.Update(ctx, existing); revertErr != nil {
			reconErr := apperror.NewReconciliationError("bill", id, "update", revertErr)
			s.log.Error().Err(revertErr).
				Str("bill_id", id.String()).
				Str("operation", "update").
				Msg("bill revert after inventory failure failed, record and stock diverged")
			return nil, reconErr
		}
		return nil, err
	}

	return s.billRepo.GetWithItems(ctx, id)
}

// DeleteBill removes a bill and restores its quantities to stock. A restore
// failure after the record is gone cannot be compensated (the record cannot
// be re-created under its old identity) and is surfaced for the operator.
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	existing, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Bill")
	}

	if err := s.billRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.inventory.ApplyDelta(ctx, billItemDeltas(existing.Items), DirectionAdd); err != nil {
		reconErr := apperror.NewReconciliationError("bill", id, "delete", err)
		s.log.Error().Err(err).
			Str("bill_id", id.String()).
			Str("operation", "delete").
			Msg("stock restore after bill delete failed, inventory is short")
		return reconErr
	}

	return nil
}

// PayBill updates only the payment columns. No inventory effect.
func (s *BillService) PayBill(ctx context.Context, id uuid.UUID, paidSum float64) (*entity.Bill, error) {
	existing, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	paidCents := int64(paidSum * 100)
	if paidCents < 0 || paidCents > existing.BillSum {
		return nil, apperror.NewValidationError([]apperror.FieldError{{
			Field: "paid_sum", Message: "paid sum must be between zero and the bill sum",
		}})
	}

	if err := s.billRepo.UpdateSums(ctx, id, paidCents, existing.BillSum-paidCents); err != nil {
		return nil, err
	}

	return s.billRepo.GetWithItems(ctx, id)
}

// GetBill retrieves a bill with its line items
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills with filtering
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}
