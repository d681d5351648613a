package service

import (
	"context"
	"strings"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/daftar-app/daftar-api/internal/domain/repository"
	"github.com/daftar-app/daftar-api/pkg/apperror"
	"github.com/daftar-app/daftar-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductService handles product catalog operations. Stock quantities are
// set here only at creation time; afterwards they move exclusively through
// the inventory ledger.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	Quantity      int
	QuantityAlert int
	UnitPrice     float64
	Note          *string
}

// UpdateProductInput represents the update product input. Quantity is
// deliberately absent: stock changes go through bills and transactions.
type UpdateProductInput struct {
	Name          string
	QuantityAlert int
	UnitPrice     float64
	Note          *string
}

func validateProductFields(name string, quantity int, unitPrice float64) []apperror.FieldError {
	var fieldErrs []apperror.FieldError
	if strings.TrimSpace(name) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "name", Message: "name is required",
		})
	}
	if quantity < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "quantity", Message: "quantity must not be negative",
		})
	}
	if unitPrice < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{
			Field: "unit_price", Message: "unit price must not be negative",
		})
	}
	return fieldErrs
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if fieldErrs := validateProductFields(input.Name, input.Quantity, input.UnitPrice); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	product := &entity.Product{
		Name:          input.Name,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		Note:          input.Note,
	}
	product.SetUnitPriceFromDecimal(input.UnitPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates a product's catalog fields, leaving stock untouched
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	if fieldErrs := validateProductFields(input.Name, 0, input.UnitPrice); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	product.Name = input.Name
	product.QuantityAlert = input.QuantityAlert
	product.Note = input.Note
	product.SetUnitPriceFromDecimal(input.UnitPrice)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStockProducts returns products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
