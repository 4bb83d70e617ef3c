package billing

import (
	"testing"

	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
)

func TestComputeHeaderSummary(t *testing.T) {
	in := HeaderInput{
		BasePrice: 2000,
		Services:  sampleLines(),
		Payments: append(ledgerExample(),
			EntryFromLedger(enum.EntryKindScheduled, 1000, "paid", f(1000), nil, 0),
		),
		Todos:    []TodoItem{{Completed: true}, {}, {Completed: true}},
		Currency: "TRY",
	}

	got := ComputeHeaderSummary(in)

	if got.Services.TotalValue != 358 {
		t.Errorf("Services.TotalValue = %v, want 358", got.Services.TotalValue)
	}
	if got.Services.Total != 5 || len(got.Services.Names) != 5 {
		t.Errorf("Services = %+v, want 5 named lines", got.Services)
	}
	if got.Payments.Total != 2358 {
		t.Errorf("Payments.Total = %v, want 2358", got.Payments.Total)
	}
	if got.Payments.TotalPaid != 500 {
		t.Errorf("Payments.TotalPaid = %v, want 500", got.Payments.TotalPaid)
	}
	if got.Payments.Remaining != 1858 {
		t.Errorf("Payments.Remaining = %v, want 1858", got.Payments.Remaining)
	}
	if got.Payments.Currency != "TRY" {
		t.Errorf("Payments.Currency = %q", got.Payments.Currency)
	}
	if got.Todos != (HeaderTodos{Total: 3, Completed: 2}) {
		t.Errorf("Todos = %+v", got.Todos)
	}
}

func TestComputeHeaderSummaryOverpaid(t *testing.T) {
	got := ComputeHeaderSummary(HeaderInput{
		BasePrice: 100,
		Payments:  []PaymentEntry{EntryFromLedger(enum.EntryKindRecorded, 250, "paid", nil, nil, 0)},
	})
	if got.Payments.Remaining != 0 {
		t.Fatalf("Remaining = %v, want 0", got.Payments.Remaining)
	}
}

func TestZeroHeaderSummary(t *testing.T) {
	got := ZeroHeaderSummary("EUR")
	if got.Payments != (HeaderPayments{Currency: "EUR"}) {
		t.Errorf("Payments = %+v", got.Payments)
	}
	if got.Todos != (HeaderTodos{}) || got.Services.Total != 0 || got.Services.TotalValue != 0 {
		t.Errorf("expected all-zero summary, got %+v", got)
	}
	if got.Services.Names == nil {
		t.Errorf("Names should be an empty slice so it encodes as []")
	}
}

func TestComputeHeaderSummaryAtCaps(t *testing.T) {
	got := ComputeHeaderSummary(HeaderInput{
		BasePrice: 2000,
		Services: []ServiceLine{{
			BillingType: enum.BillingTypeExtra,
			Quantity:    1e6,
			UnitPrice:   f(1e13),
			VATRate:     f(50),
			VATMode:     mode(enum.VATModeExclusive),
		}},
		Payments: []PaymentEntry{EntryFromLedger(enum.EntryKindRecorded, 500, "paid", nil, nil, 0)},
		Currency: "TRY",
	})
	if got.Payments.Total != 1e15 {
		t.Errorf("Total = %v, want 1e15", got.Payments.Total)
	}
	if got.Payments.Remaining != 1e15-500 {
		t.Errorf("Remaining = %v, want %v", got.Payments.Remaining, 1e15-500)
	}
}
