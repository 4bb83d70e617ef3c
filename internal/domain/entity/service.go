package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a catalog entry a studio sells, e.g. an extra album or a second shooter
type Service struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	Price            *float64       `gorm:"type:decimal(15,2)" json:"price"`
	SellingPrice     *float64       `gorm:"type:decimal(15,2)" json:"selling_price"`
	VATRate          *float64       `gorm:"type:decimal(5,2)" json:"vat_rate"`
	PriceIncludesVAT *bool          `json:"price_includes_vat"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// CatalogPrice is the selling price, falling back to the list price
func (s *Service) CatalogPrice() *float64 {
	if s.SellingPrice != nil {
		return s.SellingPrice
	}
	return s.Price
}
