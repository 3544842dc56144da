package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/enum"
	"gorm.io/gorm"
)

// SaleItem is an immutable snapshot of an invoice line, copied onto the sale
// so reports never have to re-join invoices. Monetary fields are kept in
// final display currency.
type SaleItem struct {
	ProductID        uuid.UUID     `json:"product_id"`
	Name             string        `json:"name"`
	Quantity         int64         `json:"quantity"`
	UnitType         enum.UnitType `json:"unit_type"`
	UnitPrice        float64       `json:"unit_price"`
	Total            float64       `json:"total"`
	ConversionFactor int64         `json:"conversion_factor"`
}

// Sale is the revenue-recognition record created exactly once per invoice,
// at the moment the invoice transitions to paid. Sales are append-only.
type Sale struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"invoice_id"`
	CustomerName string     `gorm:"size:255;not null" json:"customer_name"`
	Amount       int64      `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Date         time.Time  `gorm:"not null;index" json:"date"`
	Items        []SaleItem `gorm:"serializer:json" json:"items"`
	CreatedAt    time.Time  `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(s),
		Amount: float64(s.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// NewSaleItems copies invoice items into sale snapshots
func NewSaleItems(items []InvoiceItem) []SaleItem {
	snapshots := make([]SaleItem, 0, len(items))
	for _, it := range items {
		snapshots = append(snapshots, SaleItem{
			ProductID:        it.ProductID,
			Name:             it.Name,
			Quantity:         it.Quantity,
			UnitType:         it.UnitType,
			UnitPrice:        float64(it.UnitPrice) / 100,
			Total:            float64(it.Total) / 100,
			ConversionFactor: it.ConversionFactor,
		})
	}
	return snapshots
}
