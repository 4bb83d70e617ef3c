package billing

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
)

// maxRateBasisPoints is 99.99% expressed in hundredths of a percent.
const maxRateBasisPoints = 9999

// VAT is a validated rate/mode pair. The zero value is a 0% exclusive rate.
// Values are only built through NormalizeVAT, so a VAT never carries an
// out-of-range rate or an unknown mode.
type VAT struct {
	basisPoints int64
	mode        enum.VATMode
}

// VATResult is the outcome of applying VAT to an amount.
type VATResult struct {
	Total      float64 `json:"total"`
	VATPortion float64 `json:"vat_portion"`
}

// NormalizeVAT clamps rate into [0, 99.99] and defaults mode to exclusive.
// NaN and negative rates become 0; rates of 100 or more become 99.99.
func NormalizeVAT(rate float64, mode string) VAT {
	return VAT{
		basisPoints: rateToBasisPoints(rate),
		mode:        enum.ParseVATMode(mode),
	}
}

func rateToBasisPoints(rate float64) int64 {
	switch {
	case math.IsNaN(rate) || rate <= 0:
		return 0
	case rate >= 100:
		return maxRateBasisPoints
	}
	bp := decimal.NewFromFloat(rate).Mul(hundred).Round(0).IntPart()
	if bp > maxRateBasisPoints {
		return maxRateBasisPoints
	}
	return bp
}

// Rate returns the normalized percentage.
func (v VAT) Rate() float64 {
	return float64(v.basisPoints) / 100
}

// Mode returns the normalized mode.
func (v VAT) Mode() enum.VATMode {
	if v.mode == "" {
		return enum.VATModeExclusive
	}
	return v.mode
}

// Portion returns the tax carried by amount. For exclusive VAT that is the tax
// added on top; for inclusive VAT it is the tax already contained in amount.
func (v VAT) Portion(amount Cents) Cents {
	if v.basisPoints == 0 || amount == 0 {
		return 0
	}
	bp := decimal.NewFromInt(v.basisPoints)
	if v.Mode() == enum.VATModeInclusive {
		net := mulDivRound(amount, tenThousand, tenThousand.Add(bp))
		return amount - net
	}
	return mulDivRound(amount, bp, tenThousand)
}

// Apply returns the gross total and the tax portion for amount. Inclusive VAT
// leaves the total unchanged.
func (v VAT) Apply(amount Cents) (total, portion Cents) {
	portion = v.Portion(amount)
	if v.Mode() == enum.VATModeInclusive {
		return amount, portion
	}
	return amount + portion, portion
}

// VATPortion returns the tax carried by amount at rate/mode.
// A non-finite amount or a zero rate yields 0.
func VATPortion(amount, rate float64, mode string) float64 {
	if !isFinite(amount) {
		return 0
	}
	return NormalizeVAT(rate, mode).Portion(ToCents(amount)).Float64()
}

// ApplyVAT returns the total and tax portion of amount at rate/mode.
func ApplyVAT(amount, rate float64, mode string) VATResult {
	if !isFinite(amount) {
		return VATResult{}
	}
	total, portion := NormalizeVAT(rate, mode).Apply(ToCents(amount))
	return VATResult{Total: total.Float64(), VATPortion: portion.Float64()}
}
