package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense represents a business expense. The category is free text: it is
// suggested from the expense_categories collection but not constrained by a
// foreign key. The receipt, if any, is an opaque uploaded file referenced by
// URL plus original filename.
type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Category    string    `gorm:"size:255;not null" json:"category"`
	Amount      int64     `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Description string    `gorm:"type:text" json:"description"`
	ReceiptURL  *string   `gorm:"size:512" json:"receipt_url,omitempty"`
	ReceiptName *string   `gorm:"size:255" json:"receipt_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

// ExpenseCategory is a suggestion-list entry for expense categorization
type ExpenseCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;unique;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new expense category
func (c *ExpenseCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ExpenseCategory model
func (ExpenseCategory) TableName() string {
	return "expense_categories"
}
