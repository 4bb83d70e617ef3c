package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant represents a studio in the multitenant system
type Tenant struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	Settings  TenantSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// TenantSettings holds the billing-related preferences of a studio
type TenantSettings struct {
	// Localization
	Currency string `json:"currency,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Locale   string `json:"locale,omitempty"`

	// Defaults applied to catalog services that carry no VAT of their own
	DefaultVATRate float64 `json:"default_vat_rate,omitempty"`
	TaxLabel       string  `json:"tax_label,omitempty"`
}

// CurrencyOr returns the configured currency, or fallback when none is set
func (ts TenantSettings) CurrencyOr(fallback string) string {
	if ts.Currency == "" {
		return fallback
	}
	return ts.Currency
}

// Scan implements the sql.Scanner interface for TenantSettings
func (ts *TenantSettings) Scan(value interface{}) error {
	if value == nil {
		*ts = TenantSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan TenantSettings: unsupported type")
	}

	return json.Unmarshal(bytes, ts)
}

// Value implements the driver.Valuer interface for TenantSettings
func (ts TenantSettings) Value() (driver.Value, error) {
	return json.Marshal(ts)
}
