// Package analytics derives time-windowed financial reports from the stored
// bill and transaction history. Computation is pure and side-effect free: it
// operates on already-loaded entity sets, so it can run concurrently with
// writes and tolerates slightly stale reads.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/daftar-app/daftar-api/internal/domain/entity"
	"github.com/daftar-app/daftar-api/pkg/apperror"
	"github.com/google/uuid"
)

// Range selects the reporting window, anchored at "now".
type Range string

const (
	RangeMonthly     Range = "monthly"
	RangeLast6Months Range = "last_6_months"
	RangeYearly      Range = "yearly"
	RangeAllTime     Range = "all_time"
)

// topLimit caps the product and customer rankings.
const topLimit = 10

// ParseRange validates a range string from the API surface.
func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case RangeMonthly, RangeLast6Months, RangeYearly, RangeAllTime:
		return Range(s), nil
	case "":
		return RangeAllTime, nil
	default:
		return "", apperror.NewBadRequestError(fmt.Sprintf("invalid range %q", s))
	}
}

// Cutoff returns the inclusive start date for the range, or ok=false when
// the range has no cutoff (all time).
func (r Range) Cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case RangeMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case RangeLast6Months:
		// First day of the month six months back; normalized by time.Date
		return time.Date(now.Year(), now.Month()-6, 1, 0, 0, 0, 0, now.Location()), true
	case RangeYearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// ProductRanking is one entry of the top-selling products list
type ProductRanking struct {
	Product       entity.Product `json:"product"`
	TotalQuantity int            `json:"total_quantity"`
	TotalRevenue  float64        `json:"total_revenue"`
}

// CustomerRanking is one entry of the top-buying customers list
type CustomerRanking struct {
	Customer          entity.Customer `json:"customer"`
	TotalSpent        float64         `json:"total_spent"`
	TotalTransactions int             `json:"total_transactions"`
}

// MonthlySummary is one calendar-month bucket of earnings and spend
type MonthlySummary struct {
	Month  string  `json:"month"` // YYYY-MM
	Earned float64 `json:"earned"`
	Spent  float64 `json:"spent"`
	Profit float64 `json:"profit"`
}

// Report is the full analytics output handed to API and export consumers
type Report struct {
	Range              Range             `json:"range"`
	TotalEarned        float64           `json:"total_earned"`
	TotalSpent         float64           `json:"total_spent"`
	NetProfit          float64           `json:"net_profit"`
	TopSellingProducts []ProductRanking  `json:"top_selling_products"`
	TopBuyingCustomers []CustomerRanking `json:"top_buying_customers"`
	MonthlyBreakdown   []MonthlySummary  `json:"monthly_breakdown"`
}

// Compute aggregates the given entity sets into a Report for the range
// anchored at now. All monetary sums use the line-item snapshot price, never
// the live product price. Records whose date is unset are dropped by the
// range filter and never bucketed.
func Compute(
	bills []entity.Bill,
	transactions []entity.Transaction,
	customers []entity.Customer,
	products []entity.Product,
	r Range,
	now time.Time,
) *Report {
	bills = filterBills(bills, r, now)
	transactions = filterTransactions(transactions, r, now)

	var earnedCents, spentCents int64
	for _, b := range bills {
		earnedCents += b.BillSum
	}
	for _, t := range transactions {
		spentCents += t.Cost
	}

	report := &Report{
		Range:              r,
		TotalEarned:        centsToDecimal(earnedCents),
		TotalSpent:         centsToDecimal(spentCents),
		NetProfit:          centsToDecimal(earnedCents - spentCents),
		TopSellingProducts: topProducts(bills, products),
		TopBuyingCustomers: topCustomers(bills, customers),
		MonthlyBreakdown:   monthlyBreakdown(bills, transactions),
	}
	return report
}

func filterBills(bills []entity.Bill, r Range, now time.Time) []entity.Bill {
	cutoff, ok := r.Cutoff(now)
	if !ok {
		return bills
	}
	filtered := make([]entity.Bill, 0, len(bills))
	for _, b := range bills {
		if b.Date.IsZero() || b.Date.Before(cutoff) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

func filterTransactions(transactions []entity.Transaction, r Range, now time.Time) []entity.Transaction {
	cutoff, ok := r.Cutoff(now)
	if !ok {
		return transactions
	}
	filtered := make([]entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Date.IsZero() || t.Date.Before(cutoff) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func topProducts(bills []entity.Bill, products []entity.Product) []ProductRanking {
	type sales struct {
		quantity int
		revenue  int64
	}
	perProduct := make(map[uuid.UUID]*sales)
	for _, b := range bills {
		for _, item := range b.Items {
			s, ok := perProduct[item.ProductID]
			if !ok {
				s = &sales{}
				perProduct[item.ProductID] = s
			}
			s.quantity += item.Quantity
			s.revenue += int64(item.Quantity) * item.UnitPrice
		}
	}

	productByID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	rankings := make([]ProductRanking, 0, len(perProduct))
	for id, s := range perProduct {
		// Line items referencing a deleted product have nothing to join with
		product, ok := productByID[id]
		if !ok {
			continue
		}
		rankings = append(rankings, ProductRanking{
			Product:       product,
			TotalQuantity: s.quantity,
			TotalRevenue:  centsToDecimal(s.revenue),
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TotalRevenue > rankings[j].TotalRevenue
	})
	if len(rankings) > topLimit {
		rankings = rankings[:topLimit]
	}
	return rankings
}

func topCustomers(bills []entity.Bill, customers []entity.Customer) []CustomerRanking {
	type spending struct {
		spent int64
		count int
	}
	perCustomer := make(map[uuid.UUID]*spending)
	for _, b := range bills {
		s, ok := perCustomer[b.CustomerID]
		if !ok {
			s = &spending{}
			perCustomer[b.CustomerID] = s
		}
		s.spent += b.BillSum
		s.count++
	}

	customerByID := make(map[uuid.UUID]entity.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.ID] = c
	}

	rankings := make([]CustomerRanking, 0, len(perCustomer))
	for id, s := range perCustomer {
		customer, ok := customerByID[id]
		if !ok {
			continue
		}
		rankings = append(rankings, CustomerRanking{
			Customer:          customer,
			TotalSpent:        centsToDecimal(s.spent),
			TotalTransactions: s.count,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TotalSpent > rankings[j].TotalSpent
	})
	if len(rankings) > topLimit {
		rankings = rankings[:topLimit]
	}
	return rankings
}

func monthlyBreakdown(bills []entity.Bill, transactions []entity.Transaction) []MonthlySummary {
	type totals struct {
		earned int64
		spent  int64
	}
	perMonth := make(map[string]*totals)
	bucket := func(date time.Time) *totals {
		month := date.Format("2006-01")
		t, ok := perMonth[month]
		if !ok {
			t = &totals{}
			perMonth[month] = t
		}
		return t
	}

	for _, b := range bills {
		if b.Date.IsZero() {
			continue
		}
		bucket(b.Date).earned += b.BillSum
	}
	for _, t := range transactions {
		if t.Date.IsZero() {
			continue
		}
		bucket(t.Date).spent += t.Cost
	}

	breakdown := make([]MonthlySummary, 0, len(perMonth))
	for month, t := range perMonth {
		breakdown = append(breakdown, MonthlySummary{
			Month:  month,
			Earned: centsToDecimal(t.earned),
			Spent:  centsToDecimal(t.spent),
			Profit: centsToDecimal(t.earned - t.spent),
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Month < breakdown[j].Month
	})
	return breakdown
}

func centsToDecimal(cents int64) float64 {
	return float64(cents) / 100
}
