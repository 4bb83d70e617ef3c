package billing

import (
	"math"

	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
)

// maxQuantity caps line quantities. Line gross amounts still saturate at
// maxTotal.
const maxQuantity = 1_000_000

// ServiceLine is one billable service attached to a project. Override fields
// come from the project line and fall back to the catalog entry.
type ServiceLine struct {
	Name             string
	BillingType      enum.BillingType
	Quantity         float64
	UnitPrice        *float64
	CatalogPrice     *float64
	VATRate          *float64
	CatalogVATRate   *float64
	VATMode          *enum.VATMode
	PriceIncludesVAT *bool
}

// LinePricing is the priced form of a ServiceLine.
type LinePricing struct {
	Name        string           `json:"name"`
	BillingType enum.BillingType `json:"billing_type"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   float64          `json:"unit_price"`
	VATRate     float64          `json:"vat_rate"`
	VATMode     enum.VATMode     `json:"vat_mode"`
	UnitGross   float64          `json:"unit_gross"`
	Gross       float64          `json:"gross"`
	VAT         float64          `json:"vat"`
}

// ServiceAggregate is the priced list of a project's services.
type ServiceAggregate struct {
	Lines         []LinePricing `json:"lines"`
	ExtrasTotal   float64       `json:"extras_total"`
	IncludedTotal float64       `json:"included_total"`
}

func (l ServiceLine) unitPrice() float64 {
	switch {
	case l.UnitPrice != nil:
		return *l.UnitPrice
	case l.CatalogPrice != nil:
		return *l.CatalogPrice
	}
	return 0
}

func (l ServiceLine) vat() VAT {
	rate := 0.0
	switch {
	case l.VATRate != nil:
		rate = *l.VATRate
	case l.CatalogVATRate != nil:
		rate = *l.CatalogVATRate
	}

	mode := enum.VATModeInclusive
	switch {
	case l.VATMode != nil:
		mode = *l.VATMode
	case l.PriceIncludesVAT != nil && !*l.PriceIncludesVAT:
		mode = enum.VATModeExclusive
	}
	return NormalizeVAT(rate, string(mode))
}

func (l ServiceLine) quantity() int64 {
	if !isFinite(l.Quantity) {
		return 1
	}
	q := math.Round(l.Quantity)
	switch {
	case q < 1:
		return 1
	case q > maxQuantity:
		return maxQuantity
	}
	return int64(q)
}

type pricedLine struct {
	quantity  int64
	unitGross Cents
	unitVAT   Cents
}

func priceLine(l ServiceLine) (pricedLine, VAT) {
	v := l.vat()
	gross, portion := v.Apply(ToCents(l.unitPrice()))
	return pricedLine{quantity: l.quantity(), unitGross: gross, unitVAT: portion}, v
}

func (p pricedLine) gross() Cents { return mulQuantity(p.unitGross, p.quantity) }
func (p pricedLine) vat() Cents   { return mulQuantity(p.unitVAT, p.quantity) }

// PriceServiceLine resolves the effective price, VAT and quantity of l and
// returns its gross amount. A missing price prices the line at zero.
func PriceServiceLine(l ServiceLine) LinePricing {
	p, v := priceLine(l)
	return LinePricing{
		Name:        l.Name,
		BillingType: enum.ParseBillingType(string(l.BillingType)),
		Quantity:    p.quantity,
		UnitPrice:   ToCents(l.unitPrice()).Float64(),
		VATRate:     v.Rate(),
		VATMode:     v.Mode(),
		UnitGross:   p.unitGross.Float64(),
		Gross:       p.gross().Float64(),
		VAT:         p.vat().Float64(),
	}
}

// AggregateServices prices every line in input order. Only extra lines count
// towards ExtrasTotal; included lines are reported in IncludedTotal.
func AggregateServices(lines []ServiceLine) ServiceAggregate {
	agg := ServiceAggregate{Lines: make([]LinePricing, 0, len(lines))}
	var extras, included Cents
	for _, l := range lines {
		p, _ := priceLine(l)
		if enum.ParseBillingType(string(l.BillingType)) == enum.BillingTypeExtra {
			extras = addCents(extras, p.gross())
		} else {
			included = addCents(included, p.gross())
		}
		agg.Lines = append(agg.Lines, PriceServiceLine(l))
	}
	agg.ExtrasTotal = extras.Float64()
	agg.IncludedTotal = included.Float64()
	return agg
}

// AggregateServiceTotals returns the gross total of the extra lines.
func AggregateServiceTotals(lines []ServiceLine) float64 {
	return extrasTotal(lines).Float64()
}

func extrasTotal(lines []ServiceLine) Cents {
	var total Cents
	for _, l := range lines {
		if enum.ParseBillingType(string(l.BillingType)) != enum.BillingTypeExtra {
			continue
		}
		p, _ := priceLine(l)
		total = addCents(total, p.gross())
	}
	return total
}

// ContractTotal is the full value of a project: base price plus extras, never
// negative.
func ContractTotal(basePrice, extrasTotal float64) float64 {
	return maxCents(addCents(ToCents(basePrice), ToCents(extrasTotal)), 0).Float64()
}
