package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicates
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_scope;size:255;not null"` // The idempotency key from client
	TenantID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_idempotency_scope;not null"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_idempotency_scope;not null"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "PUT /api/v1/projects/:id/billing/deposit"
	RequestHash  string    `gorm:"size:64"`           // SHA256 of the request body
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"` // Keys expire after 24 hours
}

// BeforeCreate generates a UUID before creating a new key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// MatchesRequest reports whether a replayed request carries the same body as
// the original. Keys stored without a hash match anything.
func (i *IdempotencyKey) MatchesRequest(hash string) bool {
	return i.RequestHash == "" || i.RequestHash == hash
}
