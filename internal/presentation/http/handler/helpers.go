package handler

import (
	"time"

	"github.com/daftar-app/daftar-api/internal/application/service"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// lineItemRequest is the wire shape of a bill or transaction line item
type lineItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
	UnitPrice float64   `json:"unit_price"`
}

func toLineItemInputs(items []lineItemRequest) []service.LineItemInput {
	inputs := make([]service.LineItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.LineItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return inputs
}

// parseDate parses a YYYY-MM-DD value. An empty string yields the zero time,
// which downstream treats as "no date".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// parseDateQuery parses an optional date query parameter into a *time.Time
func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
