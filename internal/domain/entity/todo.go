package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is a checklist item on a project
type Todo struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsCompleted bool      `gorm:"default:false" json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new todo
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Todo model
func (Todo) TableName() string {
	return "todos"
}
