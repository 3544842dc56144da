package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an authentication account. Authorization is decided separately:
// a user may sign in and still not be an admin (see Admin).
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255;unique;not null" json:"email"`
	Password  string    `gorm:"size:255" json:"-"` // bcrypt hash; empty for OAuth-only accounts
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// Admin is an entry in the admin allow-list, keyed by email. An
// authenticated principal is an admin iff its email matches the configured
// super-admin or exists here.
type Admin struct {
	Email     string    `gorm:"primaryKey;size:255" json:"email"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the table name for the Admin model
func (Admin) TableName() string {
	return "admins"
}
