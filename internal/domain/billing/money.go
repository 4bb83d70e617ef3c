// Package billing holds the pricing, deposit and payment arithmetic behind a
// project's money figures. Everything here is pure: no I/O, no shared state, and
// malformed numbers are clamped instead of reported.
package billing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Cents is an amount of money in minor currency units. All arithmetic in this
// package is done in Cents and converted back to float64 only at the edges.
type Cents int64

// maxAmount bounds the magnitude of any amount accepted at the boundary.
const maxAmount = 1e13

// maxTotal bounds every line product and running sum. Line products and sums
// saturate here, so adding two bounded values never leaves int64.
const maxTotal Cents = 1e17

var (
	hundred     = decimal.NewFromInt(100)
	tenThousand = decimal.NewFromInt(10000)
)

// ToCents converts a display amount into cents, rounding half away from zero.
// NaN and infinite amounts become zero.
func ToCents(amount float64) Cents {
	if !isFinite(amount) {
		return 0
	}
	amount = math.Max(-maxAmount, math.Min(maxAmount, amount))
	return Cents(decimal.NewFromFloat(amount).Mul(hundred).Round(0).IntPart())
}

// Float64 converts c back into a display amount.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// nonNegative returns f, or 0 when f is negative or not finite.
func nonNegative(f float64) float64 {
	if !isFinite(f) || f < 0 {
		return 0
	}
	return f
}

func maxCents(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}

func minCents(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

func clampTotal(c Cents) Cents {
	switch {
	case c > maxTotal:
		return maxTotal
	case c < -maxTotal:
		return -maxTotal
	}
	return c
}

// addCents returns a+b saturated at maxTotal. Both operands must already be
// within maxTotal.
func addCents(a, b Cents) Cents {
	return clampTotal(a + b)
}

// mulQuantity returns c*n saturated at maxTotal.
func mulQuantity(c Cents, n int64) Cents {
	d := decimal.NewFromInt(int64(c)).Mul(decimal.NewFromInt(n))
	limit := decimal.NewFromInt(int64(maxTotal))
	switch {
	case d.GreaterThan(limit):
		return maxTotal
	case d.LessThan(limit.Neg()):
		return -maxTotal
	}
	return Cents(d.IntPart())
}

// mulDivRound computes c*num/den rounded half away from zero to whole cents.
func mulDivRound(c Cents, num, den decimal.Decimal) Cents {
	return Cents(decimal.NewFromInt(int64(c)).Mul(num).DivRound(den, 0).IntPart())
}

// capAt rounds d to whole cents, never returning more than ceiling.
func capAt(d decimal.Decimal, ceiling Cents) Cents {
	d = d.Round(0)
	if d.GreaterThan(decimal.NewFromInt(int64(ceiling))) {
		return ceiling
	}
	return Cents(d.IntPart())
}
