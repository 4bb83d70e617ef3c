package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
)

// DepositConfig is the deposit policy stored on a project.
type DepositConfig struct {
	Mode        enum.DepositMode `json:"mode"`
	Value       *float64         `json:"value"`
	Description string           `json:"description,omitempty"`
	DueLabel    string           `json:"due_label,omitempty"`
}

// PricingContext carries the figures a deposit is computed against.
type PricingContext struct {
	BasePrice     float64  `json:"base_price"`
	ExtrasTotal   float64  `json:"extras_total"`
	ContractTotal *float64 `json:"contract_total,omitempty"`
}

// FieldIssue describes one invalid field of a DepositConfig.
type FieldIssue struct {
	Field   string
	Message string
}

// DepositStatus reports how much of a deposit has been collected.
type DepositStatus struct {
	Amount    float64 `json:"amount"`
	Paid      float64 `json:"paid"`
	Remaining float64 `json:"remaining"`
}

func (p PricingContext) ceiling() Cents {
	var c Cents
	if p.ContractTotal != nil {
		c = ToCents(*p.ContractTotal)
	} else {
		c = addCents(ToCents(p.BasePrice), ToCents(p.ExtrasTotal))
	}
	return maxCents(c, 0)
}

// Ceiling is the most a deposit may ever be: the contract total when one is
// supplied, otherwise base price plus extras. Never negative.
func (p PricingContext) Ceiling() float64 {
	return p.ceiling().Float64()
}

// ComputeDeposit derives the deposit owed under cfg. The result is rounded to
// cents and never exceeds ctx.Ceiling().
func ComputeDeposit(cfg DepositConfig, ctx PricingContext) float64 {
	return computeDeposit(cfg, ctx).Float64()
}

func computeDeposit(cfg DepositConfig, ctx PricingContext) Cents {
	ceiling := ctx.ceiling()
	value := 0.0
	if cfg.Value != nil {
		value = nonNegative(*cfg.Value)
	}

	switch enum.ParseDepositMode(string(cfg.Mode)) {
	case enum.DepositModeFixed:
		return minCents(ToCents(value), ceiling)
	case enum.DepositModePercentBase:
		base := ToCents(ctx.BasePrice)
		if base <= 0 || value <= 0 {
			return 0
		}
		return percentOf(base, value, ceiling)
	case enum.DepositModePercentTotal:
		if ceiling <= 0 || value <= 0 {
			return 0
		}
		return percentOf(ceiling, value, ceiling)
	default:
		return 0
	}
}

func percentOf(amount Cents, percent float64, ceiling Cents) Cents {
	d := decimal.NewFromInt(int64(amount)).Mul(decimal.NewFromFloat(percent)).Div(hundred)
	return capAt(d, ceiling)
}

// ValidateDepositConfig checks cfg before it is stored. It returns nil when cfg
// is acceptable.
func ValidateDepositConfig(cfg DepositConfig) []FieldIssue {
	mode := cfg.Mode
	if !mode.IsValid() {
		return []FieldIssue{{Field: "mode", Message: fmt.Sprintf("unknown deposit mode %q", string(mode))}}
	}
	if mode == enum.DepositModeNone {
		return nil
	}

	var issues []FieldIssue
	switch {
	case cfg.Value == nil:
		issues = append(issues, FieldIssue{Field: "value", Message: "value is required for this deposit mode"})
	case !isFinite(*cfg.Value) || *cfg.Value < 0:
		issues = append(issues, FieldIssue{Field: "value", Message: "value must be a non-negative number"})
	case mode.IsPercent() && *cfg.Value > 100:
		issues = append(issues, FieldIssue{Field: "value", Message: "percentage must be between 0 and 100"})
	}
	return issues
}

// DepositProgress compares a deposit amount with what has been paid towards it.
func DepositProgress(amount, paid float64) DepositStatus {
	a, p := maxCents(ToCents(amount), 0), maxCents(ToCents(paid), 0)
	return DepositStatus{
		Amount:    a.Float64(),
		Paid:      p.Float64(),
		Remaining: maxCents(a-p, 0).Float64(),
	}
}
