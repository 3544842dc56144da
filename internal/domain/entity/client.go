package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a customer of the business. Clients have an independent
// lifecycle and are often created ad hoc while building an invoice.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Phone     string    `gorm:"size:50;not null" json:"phone"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	Email     *string   `gorm:"size:255" json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
