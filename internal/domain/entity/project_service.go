package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
	"gorm.io/gorm"
)

// ProjectService attaches a catalog service to a project. The override columns
// take precedence over the catalog values when set.
type ProjectService struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TenantID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"project_id"`
	ServiceID         uuid.UUID        `gorm:"type:uuid;not null" json:"service_id"`
	BillingType       enum.BillingType `gorm:"size:20;default:'included'" json:"billing_type"`
	Quantity          float64          `gorm:"default:1" json:"quantity"`
	UnitPriceOverride *float64         `gorm:"type:decimal(15,2)" json:"unit_price_override"`
	VATRateOverride   *float64         `gorm:"type:decimal(5,2)" json:"vat_rate_override"`
	VATModeOverride   *enum.VATMode    `gorm:"size:20" json:"vat_mode_override"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID" json:"service"`
}

// BeforeCreate generates a UUID before creating a new project service
func (ps *ProjectService) BeforeCreate(tx *gorm.DB) error {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProjectService model
func (ProjectService) TableName() string {
	return "project_services"
}

// ServiceLine converts the row, with its preloaded catalog service, into a billing line
func (ps *ProjectService) ServiceLine() billing.ServiceLine {
	return billing.ServiceLine{
		Name:             ps.Service.Name,
		BillingType:      ps.BillingType,
		Quantity:         ps.Quantity,
		UnitPrice:        ps.UnitPriceOverride,
		CatalogPrice:     ps.Service.CatalogPrice(),
		VATRate:          ps.VATRateOverride,
		CatalogVATRate:   ps.Service.VATRate,
		VATMode:          ps.VATModeOverride,
		PriceIncludesVAT: ps.Service.PriceIncludesVAT,
	}
}
