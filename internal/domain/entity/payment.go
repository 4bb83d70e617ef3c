package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment is one row of a project's ledger. Recorded rows are real money
// movements (negative amounts are refunds); scheduled rows are planned
// installments.
type Payment struct {
	ID                       uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID                 uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProjectID                uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	Amount                   float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status                   string         `gorm:"size:20;not null;default:'due'" json:"status"`
	EntryKind                enum.EntryKind `gorm:"size:20;not null;default:'recorded'" json:"entry_kind"`
	Type                     string         `gorm:"size:50" json:"type"`
	Description              string         `gorm:"type:text" json:"description"`
	DatePaid                 *time.Time     `json:"date_paid"`
	ScheduledInitialAmount   *float64       `gorm:"type:decimal(15,2)" json:"scheduled_initial_amount"`
	ScheduledRemainingAmount *float64       `gorm:"type:decimal(15,2)" json:"scheduled_remaining_amount"`
	DepositAllocation        float64        `gorm:"type:decimal(15,2);default:0" json:"deposit_allocation"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// LedgerEntry converts the row into its billing variant
func (p *Payment) LedgerEntry() billing.PaymentEntry {
	return billing.EntryFromLedger(
		p.EntryKind,
		p.Amount,
		p.Status,
		p.ScheduledInitialAmount,
		p.ScheduledRemainingAmount,
		p.DepositAllocation,
	)
}

// LedgerEntries converts a slice of rows, keeping their order
func LedgerEntries(payments []Payment) []billing.PaymentEntry {
	entries := make([]billing.PaymentEntry, 0, len(payments))
	for i := range payments {
		entries = append(entries, payments[i].LedgerEntry())
	}
	return entries
}
