package service

import (
	"context"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/analytics"
	"github.com/daftar-app/daftar-api/internal/domain/repository"
)

// AnalyticsService fans in the full bill, transaction, customer and product
// sets and delegates to the pure aggregator. Reads are not coordinated with
// in-flight writes; the report is a view, not a ledger of record.
type AnalyticsService struct {
	billRepo     repository.BillRepository
	tranRepo     repository.TransactionRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	billRepo repository.BillRepository,
	tranRepo repository.TransactionRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *AnalyticsService {
	return &AnalyticsService{
		billRepo:     billRepo,
		tranRepo:     tranRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// GetReport computes the analytics report for the given range anchored at now
func (s *AnalyticsService) GetReport(ctx context.Context, r analytics.Range, now time.Time) (*analytics.Report, error) {
	bills, err := s.billRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.tranRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return analytics.Compute(bills, transactions, customers, products, r, now), nil
}
