package billing

import (
	"math"
	"testing"

	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
)

func b(v bool) *bool                    { return &v }
func mode(m enum.VATMode) *enum.VATMode { return &m }

func TestPriceServiceLine(t *testing.T) {
	tests := []struct {
		name      string
		line      ServiceLine
		wantQty   int64
		wantGross float64
		wantVAT   float64
		wantMode  enum.VATMode
	}{
		{
			name:      "catalog price defaults to inclusive",
			line:      ServiceLine{Quantity: 1, CatalogPrice: f(118), CatalogVATRate: f(18)},
			wantQty:   1,
			wantGross: 118,
			wantVAT:   18,
			wantMode:  enum.VATModeInclusive,
		},
		{
			name:      "catalog marks price as net",
			line:      ServiceLine{Quantity: 2, CatalogPrice: f(100), CatalogVATRate: f(20), PriceIncludesVAT: b(false)},
			wantQty:   2,
			wantGross: 240,
			wantVAT:   40,
			wantMode:  enum.VATModeExclusive,
		},
		{
			name: "overrides win over catalog",
			line: ServiceLine{
				Quantity:         1,
				UnitPrice:        f(50),
				CatalogPrice:     f(100),
				VATRate:          f(10),
				CatalogVATRate:   f(20),
				VATMode:          mode(enum.VATModeExclusive),
				PriceIncludesVAT: b(true),
			},
			wantQty:   1,
			wantGross: 55,
			wantVAT:   5,
			wantMode:  enum.VATModeExclusive,
		},
		{
			name:      "missing price",
			line:      ServiceLine{Quantity: 3, CatalogVATRate: f(20)},
			wantQty:   3,
			wantGross: 0,
			wantVAT:   0,
			wantMode:  enum.VATModeInclusive,
		},
		{
			name:      "zero quantity counts once",
			line:      ServiceLine{Quantity: 0, UnitPrice: f(10)},
			wantQty:   1,
			wantGross: 10,
			wantMode:  enum.VATModeInclusive,
		},
		{
			name:      "fractional quantity rounds",
			line:      ServiceLine{Quantity: 2.5, UnitPrice: f(10)},
			wantQty:   3,
			wantGross: 30,
			wantMode:  enum.VATModeInclusive,
		},
		{
			name:      "nan quantity",
			line:      ServiceLine{Quantity: math.NaN(), UnitPrice: f(10)},
			wantQty:   1,
			wantGross: 10,
			wantMode:  enum.VATModeInclusive,
		},
		{
			name:      "negative quantity",
			line:      ServiceLine{Quantity: -4, UnitPrice: f(10)},
			wantQty:   1,
			wantGross: 10,
			wantMode:  enum.VATModeInclusive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceServiceLine(tt.line)
			if got.Quantity != tt.wantQty {
				t.Errorf("Quantity = %d, want %d", got.Quantity, tt.wantQty)
			}
			if got.Gross != tt.wantGross {
				t.Errorf("Gross = %v, want %v", got.Gross, tt.wantGross)
			}
			if got.VAT != tt.wantVAT {
				t.Errorf("VAT = %v, want %v", got.VAT, tt.wantVAT)
			}
			if got.VATMode != tt.wantMode {
				t.Errorf("VATMode = %q, want %q", got.VATMode, tt.wantMode)
			}
		})
	}
}

func sampleLines() []ServiceLine {
	return []ServiceLine{
		{Name: "Wedding package", BillingType: enum.BillingTypeIncluded, Quantity: 1, CatalogPrice: f(1500), CatalogVATRate: f(20)},
		{Name: "Extra album", BillingType: enum.BillingTypeExtra, Quantity: 2, UnitPrice: f(100), VATRate: f(20), VATMode: mode(enum.VATModeExclusive)},
		{Name: "Drone", BillingType: enum.BillingTypeExtra, Quantity: 1, CatalogPrice: f(118), CatalogVATRate: f(18)},
		{Name: "Prints", BillingType: enum.BillingTypeExtra, Quantity: 1},
		{Name: "Legacy", BillingType: "custom", Quantity: 1, UnitPrice: f(999)},
	}
}

func TestAggregateServices(t *testing.T) {
	agg := AggregateServices(sampleLines())

	if len(agg.Lines) != 5 {
		t.Fatalf("expected 5 priced lines, got %d", len(agg.Lines))
	}
	if agg.ExtrasTotal != 358 {
		t.Errorf("ExtrasTotal = %v, want 358", agg.ExtrasTotal)
	}
	if agg.IncludedTotal != 2499 {
		t.Errorf("IncludedTotal = %v, want 2499", agg.IncludedTotal)
	}
	if agg.Lines[4].BillingType != enum.BillingTypeIncluded {
		t.Errorf("unknown billing type priced as %q, want included", agg.Lines[4].BillingType)
	}
	if agg.Lines[1].Name != "Extra album" {
		t.Errorf("lines not in input order: %+v", agg.Lines)
	}
}

func TestAggregateServiceTotalsIsOrderIndependent(t *testing.T) {
	lines := sampleLines()
	forward := AggregateServiceTotals(lines)

	reversed := make([]ServiceLine, len(lines))
	for i, l := range lines {
		reversed[len(lines)-1-i] = l
	}
	if got := AggregateServiceTotals(reversed); got != forward {
		t.Fatalf("reversed total %v != forward total %v", got, forward)
	}
	if forward != AggregateServices(lines).ExtrasTotal {
		t.Fatalf("AggregateServiceTotals disagrees with AggregateServices")
	}
}

func TestAggregateServiceTotalsEmpty(t *testing.T) {
	if got := AggregateServiceTotals(nil); got != 0 {
		t.Fatalf("AggregateServiceTotals(nil) = %v, want 0", got)
	}
	if agg := AggregateServices(nil); agg.Lines == nil || len(agg.Lines) != 0 {
		t.Fatalf("AggregateServices(nil).Lines = %#v, want empty slice", agg.Lines)
	}
}

func TestContractTotal(t *testing.T) {
	if got := ContractTotal(1000, 250.5); got != 1250.5 {
		t.Errorf("ContractTotal(1000, 250.5) = %v", got)
	}
	if got := ContractTotal(-2000, 500); got != 0 {
		t.Errorf("ContractTotal(-2000, 500) = %v, want 0", got)
	}
}

func TestServiceTotalsSaturateAtCaps(t *testing.T) {
	huge := ServiceLine{
		Name:        "Archive",
		BillingType: enum.BillingTypeExtra,
		Quantity:    1e6,
		UnitPrice:   f(1e13),
		VATRate:     f(50),
		VATMode:     mode(enum.VATModeExclusive),
	}
	lines := []ServiceLine{huge, huge, {BillingType: enum.BillingTypeIncluded, Quantity: 1e6, UnitPrice: f(1e13)}}

	if got := PriceServiceLine(huge); got.Quantity != maxQuantity || got.Gross != 1e15 {
		t.Errorf("PriceServiceLine() qty = %d gross = %v, want %d and 1e15", got.Quantity, got.Gross, maxQuantity)
	}
	if got := AggregateServiceTotals(lines); got != 1e15 {
		t.Errorf("AggregateServiceTotals() = %v, want 1e15", got)
	}
	agg := AggregateServices(lines)
	if agg.ExtrasTotal != 1e15 || agg.IncludedTotal != 1e15 {
		t.Errorf("AggregateServices() extras = %v included = %v, want 1e15 each", agg.ExtrasTotal, agg.IncludedTotal)
	}
	if got := ContractTotal(1e13, agg.ExtrasTotal); got != 1e15 {
		t.Errorf("ContractTotal() = %v, want 1e15", got)
	}
}

func TestMulQuantity(t *testing.T) {
	tests := []struct {
		name string
		c    Cents
		n    int64
		want Cents
	}{
		{"small", 250, 4, 1000},
		{"at cap", maxTotal / 10, 10, maxTotal},
		{"overflowing product", 2e15, 1e6, maxTotal},
		{"negative overflow", -2e15, 1e6, -maxTotal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mulQuantity(tt.c, tt.n); got != tt.want {
				t.Errorf("mulQuantity(%d, %d) = %d, want %d", tt.c, tt.n, got, tt.want)
			}
		})
	}
}
