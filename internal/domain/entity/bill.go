package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill represents a sales bill. BillSum is always recomputed from the line
// items server-side, and LeftSum is kept equal to BillSum - PaidSum on every
// write path.
type Bill struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Date       time.Time      `gorm:"type:date;not null" json:"date"`
	BillSum    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaidSum    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	LeftSum    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Note       *string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		BillSum float64 `json:"bill_sum"`
		PaidSum float64 `json:"paid_sum"`
		LeftSum float64 `json:"left_sum"`
	}{
		Alias:   Alias(b),
		BillSum: float64(b.BillSum) / 100,
		PaidSum: float64(b.PaidSum) / 100,
		LeftSum: float64(b.LeftSum) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem represents a line item in a bill. UnitPrice is the price at the
// time of sale, independent of the product's current price.
type BillItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BillID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"bill_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Bill    Bill    `gorm:"foreignKey:BillID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (bi BillItem) MarshalJSON() ([]byte, error) {
	type Alias BillItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(bi),
		UnitPrice: float64(bi.UnitPrice) / 100,
		Total:     float64(bi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
