package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"gorm.io/gorm"
)

// Project is a client engagement with a base package price and optional deposit terms
type Project struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID             `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name          string                `gorm:"size:255;not null" json:"name"`
	BasePrice     float64               `gorm:"type:decimal(15,2);default:0" json:"base_price"`
	DepositConfig billing.DepositConfig `gorm:"type:jsonb;serializer:json" json:"deposit_config"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	DeletedAt     gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Services []ProjectService `gorm:"foreignKey:ProjectID" json:"services,omitempty"`
}

// BeforeCreate generates a UUID before creating a new project
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
