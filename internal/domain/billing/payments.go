package billing

import (
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/enum"
)

// PaymentEntry is a row of a project's payment ledger: either a RecordedPayment
// or a ScheduledPayment. Callers branch on the variant with Match.
type PaymentEntry interface {
	Match(recorded func(RecordedPayment), scheduled func(ScheduledPayment))
	paymentEntry()
}

// RecordedPayment is money that was actually charged or received. A negative
// amount is a refund.
type RecordedPayment struct {
	Amount            float64
	Status            string
	DepositAllocation float64
}

// ScheduledPayment is a forecast installment. It counts towards what is
// invoiced, never towards what is paid.
type ScheduledPayment struct {
	Amount          float64
	Status          string
	InitialAmount   *float64
	RemainingAmount *float64
}

func (p RecordedPayment) Match(recorded func(RecordedPayment), _ func(ScheduledPayment)) {
	recorded(p)
}

func (p ScheduledPayment) Match(_ func(RecordedPayment), scheduled func(ScheduledPayment)) {
	scheduled(p)
}

func (RecordedPayment) paymentEntry()  {}
func (ScheduledPayment) paymentEntry() {}

// initial is the installment's original amount, falling back to Amount.
func (p ScheduledPayment) initial() float64 {
	if p.InitialAmount != nil {
		return *p.InitialAmount
	}
	return p.Amount
}

// EntryFromLedger turns a stored ledger row into a PaymentEntry. Any kind other
// than "scheduled" is a recorded payment.
func EntryFromLedger(kind enum.EntryKind, amount float64, status string, initial, remaining *float64, depositAllocation float64) PaymentEntry {
	if kind.IsScheduled() {
		return ScheduledPayment{
			Amount:          amount,
			Status:          status,
			InitialAmount:   initial,
			RemainingAmount: remaining,
		}
	}
	return RecordedPayment{Amount: amount, Status: status, DepositAllocation: depositAllocation}
}

// PaymentSummary is the collection picture of a project's ledger.
type PaymentSummary struct {
	TotalPaid             float64 `json:"total_paid"`
	TotalInvoiced         float64 `json:"total_invoiced"`
	TotalRefunded         float64 `json:"total_refunded"`
	RemainingBalance      float64 `json:"remaining_balance"`
	CollectionRate        float64 `json:"collection_rate"`
	NetCollected          float64 `json:"net_collected"`
	ManualDueTotal        float64 `json:"manual_due_total"`
	ScheduledInitialTotal float64 `json:"scheduled_initial_total"`
}

// SummarizePayments derives paid, invoiced, refunded and outstanding totals.
//
// Paid counts recorded "paid" entries with a positive amount. Refunds are the
// negative recorded amounts whatever their status. Invoiced is the scheduled
// installments' initial amounts plus every recorded entry that is not paid.
func SummarizePayments(entries []PaymentEntry) PaymentSummary {
	var paid, refunded, manualDue, scheduledInitial Cents
	for _, e := range entries {
		e.Match(
			func(p RecordedPayment) {
				amount := ToCents(p.Amount)
				if enum.IsPaidStatus(p.Status) {
					if amount > 0 {
						paid = addCents(paid, amount)
					}
				} else {
					manualDue = addCents(manualDue, amount)
				}
				if amount < 0 {
					refunded = addCents(refunded, -amount)
				}
			},
			func(s ScheduledPayment) {
				scheduledInitial = addCents(scheduledInitial, ToCents(s.initial()))
			},
		)
	}

	invoiced := addCents(scheduledInitial, manualDue)
	net := maxCents(paid-refunded, 0)
	summary := PaymentSummary{
		TotalPaid:             paid.Float64(),
		TotalInvoiced:         invoiced.Float64(),
		TotalRefunded:         refunded.Float64(),
		RemainingBalance:      maxCents(invoiced-net, 0).Float64(),
		NetCollected:          net.Float64(),
		ManualDueTotal:        manualDue.Float64(),
		ScheduledInitialTotal: scheduledInitial.Float64(),
	}
	if invoiced > 0 {
		summary.CollectionRate = float64(net) / float64(invoiced)
	}
	return summary
}

// HeaderPaidTotal sums recorded, paid, positive amounts. Unlike
// SummarizePayments it ignores refunds and schedules.
func HeaderPaidTotal(entries []PaymentEntry) float64 {
	return headerPaid(entries).Float64()
}

func headerPaid(entries []PaymentEntry) Cents {
	var total Cents
	for _, e := range entries {
		e.Match(func(p RecordedPayment) {
			if amount := ToCents(p.Amount); enum.IsPaidStatus(p.Status) && amount > 0 {
				total = addCents(total, amount)
			}
		}, func(ScheduledPayment) {})
	}
	return total
}

// DepositPaid sums the deposit allocations of recorded paid entries.
func DepositPaid(entries []PaymentEntry) float64 {
	var total Cents
	for _, e := range entries {
		e.Match(func(p RecordedPayment) {
			if a := ToCents(p.DepositAllocation); enum.IsPaidStatus(p.Status) && a > 0 {
				total = addCents(total, a)
			}
		}, func(ScheduledPayment) {})
	}
	return total.Float64()
}

// CollectedTotal is the money available to settle scheduled installments: the
// sum of recorded paid amounts, refunds included, floored at zero.
func CollectedTotal(entries []PaymentEntry) float64 {
	var total Cents
	for _, e := range entries {
		e.Match(func(p RecordedPayment) {
			if enum.IsPaidStatus(p.Status) {
				total = addCents(total, ToCents(p.Amount))
			}
		}, func(ScheduledPayment) {})
	}
	return maxCents(total, 0).Float64()
}

// InstallmentAllocation is the settled state of one scheduled installment.
type InstallmentAllocation struct {
	Initial   float64 `json:"initial"`
	Applied   float64 `json:"applied"`
	Remaining float64 `json:"remaining"`
	Status    string  `json:"status"`
}

// AllocateScheduled spreads collected over schedules first-in first-out, in the
// order given. The installment's initial amount falls back to its stored
// remaining amount, then to zero.
func AllocateScheduled(schedules []ScheduledPayment, collected float64) []InstallmentAllocation {
	left := maxCents(ToCents(collected), 0)
	out := make([]InstallmentAllocation, 0, len(schedules))
	for _, s := range schedules {
		var initial Cents
		switch {
		case s.InitialAmount != nil:
			initial = ToCents(*s.InitialAmount)
		case s.RemainingAmount != nil:
			initial = ToCents(*s.RemainingAmount)
		}
		initial = maxCents(initial, 0)

		applied := minCents(initial, left)
		left -= applied
		remaining := initial - applied

		status := enum.PaymentStatusDue
		if remaining == 0 {
			status = enum.PaymentStatusPaid
		}
		out = append(out, InstallmentAllocation{
			Initial:   initial.Float64(),
			Applied:   applied.Float64(),
			Remaining: remaining.Float64(),
			Status:    status,
		})
	}
	return out
}

// Schedules returns the scheduled variants of entries, preserving order.
func Schedules(entries []PaymentEntry) []ScheduledPayment {
	var out []ScheduledPayment
	for _, e := range entries {
		e.Match(func(RecordedPayment) {}, func(s ScheduledPayment) { out = append(out, s) })
	}
	return out
}
