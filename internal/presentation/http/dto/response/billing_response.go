package response

import "github.com/togay-aytemiz/lumiso-sub014/internal/domain/billing"

// HeaderSummaryResponse is the project header card. Degraded is set when the
// figures are the zero fallback rather than computed values.
type HeaderSummaryResponse struct {
	billing.HeaderSummary
	Degraded bool `json:"degraded"`
}

// DepositPreviewResponse represents a stateless deposit preview
type DepositPreviewResponse struct {
	Amount  float64 `json:"amount"`
	Ceiling float64 `json:"ceiling"`
}
