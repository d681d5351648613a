package service

import (
	"context"
	"testing"

	"github.com/daftar-app/daftar-api/internal/infrastructure/repository/memory"
	"github.com/daftar-app/daftar-api/pkg/apperror"
	"github.com/daftar-app/daftar-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCustomerCRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewCustomerService(memory.NewCustomerRepository())

	created, err := svc.CreateCustomer(ctx, &CustomerInput{
		Name:  "Asha Traders",
		Phone: strPtr("0712-000111"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Traders", got.Name)

	updated, err := svc.UpdateCustomer(ctx, created.ID, &CustomerInput{
		Name:    "Asha Traders Ltd",
		Address: strPtr("Market Street 4"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Traders Ltd", updated.Name)
	require.NotNil(t, updated.Address)

	require.NoError(t, svc.DeleteCustomer(ctx, created.ID))

	_, err = svc.GetCustomer(ctx, created.ID)
	require.Error(t, err)
}

func TestCreateCustomerRequiresName(t *testing.T) {
	ctx := context.Background()
	svc := NewCustomerService(memory.NewCustomerRepository())

	_, err := svc.CreateCustomer(ctx, &CustomerInput{Name: "   "})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 422, appErr.Code)
}

func TestListCustomersSearch(t *testing.T) {
	ctx := context.Background()
	svc := NewCustomerService(memory.NewCustomerRepository())

	for _, name := range []string{"Asha Traders", "Beta Stores", "Ashford Supplies"} {
		_, err := svc.CreateCustomer(ctx, &CustomerInput{Name: name})
		require.NoError(t, err)
	}

	result, err := svc.ListCustomers(ctx, &pagination.PaginationParams{Page: 1, PerPage: 15}, "ash")
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Pagination.Total)
}
