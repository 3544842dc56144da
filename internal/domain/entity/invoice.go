package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/latia/admin-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents a sales invoice. Customer fields are denormalized at
// creation time so the invoice stays a snapshot even if the client record
// changes later.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ClientID        *uuid.UUID         `gorm:"type:uuid;index" json:"client_id,omitempty"`
	CustomerName    string             `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail   *string            `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerPhone   *string            `gorm:"size:50" json:"customer_phone,omitempty"`
	CustomerAddress *string            `gorm:"type:text" json:"customer_address,omitempty"`
	Total           int64              `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Status          enum.InvoiceStatus `gorm:"default:0" json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	DeliveredAt     *time.Time         `json:"delivered_at,omitempty"`

	// Relationships
	Client *Client       `gorm:"foreignKey:ClientID" json:"-"`
	Items  []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(i),
		Total: float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// GetTotalDecimal returns the total as a decimal
func (i *Invoice) GetTotalDecimal() float64 {
	return float64(i.Total) / 100
}

// InvoiceItem represents a line item on an invoice. The unit price and the
// conversion factor are frozen when the item is added; later catalog changes
// do not affect saved invoices.
type InvoiceItem struct {
	ID               uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"product_id"`
	Name             string        `gorm:"size:255;not null" json:"name"`
	Quantity         int64         `gorm:"not null" json:"quantity"`
	UnitType         enum.UnitType `gorm:"default:0" json:"unit_type"`
	UnitPrice        int64         `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total            int64         `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	ConversionFactor int64         `gorm:"not null;default:1" json:"conversion_factor"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (it InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(it),
		UnitPrice: float64(it.UnitPrice) / 100,
		Total:     float64(it.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// BaseUnits returns the stock quantity this line deducts on delivery
func (it *InvoiceItem) BaseUnits() int64 {
	return it.Quantity * it.ConversionFactor
}
