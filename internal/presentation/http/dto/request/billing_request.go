package request

import (
	"time"

	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
)

// VATRequest represents a stateless VAT calculation request
type VATRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
	Rate   float64  `json:"rate"`
	Mode   string   `json:"mode"`
}

// DepositConfigRequest represents a project's deposit terms
type DepositConfigRequest struct {
	Mode        enum.DepositMode `json:"mode" binding:"required"`
	Value       *float64         `json:"value"`
	Description string           `json:"description" binding:"max=500"`
	DueLabel    string           `json:"due_label" binding:"max=100"`
}

// ToConfig converts the request into the stored deposit terms
func (r DepositConfigRequest) ToConfig() billing.DepositConfig {
	return billing.DepositConfig{
		Mode:        r.Mode,
		Value:       r.Value,
		Description: r.Description,
		DueLabel:    r.DueLabel,
	}
}

// DepositPreviewRequest represents a stateless deposit preview request
type DepositPreviewRequest struct {
	Config        DepositConfigRequest `json:"config"`
	BasePrice     float64              `json:"base_price"`
	ExtrasTotal   float64              `json:"extras_total"`
	ContractTotal *float64             `json:"contract_total"`
}

// DepositQuoteQuery represents the query parameters of a deposit quote
type DepositQuoteQuery struct {
	ContractTotal *float64 `form:"contract_total"`
}

// RecordPaymentRequest represents a new row of a project's payment ledger
type RecordPaymentRequest struct {
	Amount            *float64       `json:"amount" binding:"required"`
	Status            string         `json:"status" binding:"omitempty,max=20"`
	EntryKind         enum.EntryKind `json:"entry_kind" binding:"omitempty,oneof=recorded scheduled"`
	Type              string         `json:"type" binding:"omitempty,max=50"`
	Description       string         `json:"description"`
	DatePaid          *time.Time     `json:"date_paid"`
	DepositAllocation float64        `json:"deposit_allocation"`
}
