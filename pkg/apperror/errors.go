package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrUnprocessable  = &AppError{Code: http.StatusUnprocessableEntity, Message: "Unprocessable entity"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// InsufficientStockError is returned when an inventory delta would drive a
// product's stock below zero. The whole batch it belongs to is rejected with
// no partial writes.
type InsufficientStockError struct {
	ProductID uuid.UUID `json:"product_id"`
	Available int       `json:"available"`
	Required  int       `json:"required"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, required %d",
		e.ProductID, e.Available, e.Required)
}

// NewInsufficientStockError creates an insufficient stock error
func NewInsufficientStockError(productID uuid.UUID, available, required int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Available: available,
		Required:  required,
	}
}

// IsInsufficientStock checks if an error is an InsufficientStockError
func IsInsufficientStock(err error) bool {
	var stockErr *InsufficientStockError
	return errors.As(err, &stockErr)
}

// ReconciliationError is returned when a compensating action for a partially
// applied multi-step operation itself failed, leaving entity and inventory
// state inconsistent. It must be logged with full diagnostics, never
// silently retried.
type ReconciliationError struct {
	Entity    string
	EntityID  uuid.UUID
	Operation string
	Cause     error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation needed: %s %s during %s: %v",
		e.Entity, e.EntityID, e.Operation, e.Cause)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Cause
}

// NewReconciliationError creates a reconciliation error
func NewReconciliationError(entity string, entityID uuid.UUID, operation string, cause error) *ReconciliationError {
	return &ReconciliationError{
		Entity:    entity,
		EntityID:  entityID,
		Operation: operation,
		Cause:     cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return &AppError{
			Code:    http.StatusConflict,
			Message: stockErr.Error(),
		}
	}

	var reconErr *ReconciliationError
	if errors.As(err, &reconErr) {
		return &AppError{
			Code:    http.StatusInternalServerError,
			Message: reconErr.Error(),
		}
	}

	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
