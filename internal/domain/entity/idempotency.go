package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores the response of a processed mutating request so a
// retried request with the same key replays the stored response instead of
// repeating the side effects.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_key_user" json:"key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_key_user" json:"user_id"`
	Endpoint     string    `gorm:"size:255" json:"endpoint"`
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `gorm:"type:text" json:"-"`
	ExpiresAt    time.Time `gorm:"index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new idempotency key
func (k *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IdempotencyKey model
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the key is past its TTL
func (k *IdempotencyKey) IsExpired() bool {
	return time.Now().After(k.ExpiresAt)
}
