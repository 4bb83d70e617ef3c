package enum

import "strings"

// EntryKind separates real ledger rows from forecast installments
type EntryKind string

const (
	EntryKindRecorded  EntryKind = "recorded"
	EntryKindScheduled EntryKind = "scheduled"
)

// IsScheduled reports whether k marks a scheduled installment. Anything else,
// including an empty kind, is treated as a recorded entry.
func (k EntryKind) IsScheduled() bool {
	return k == EntryKindScheduled
}

// Payment statuses written by the application. Upstream rows may carry other
// free-form values, so comparisons go through IsPaidStatus.
const (
	PaymentStatusPaid = "paid"
	PaymentStatusDue  = "due"
)

// IsPaidStatus compares status against "paid" case-insensitively
func IsPaidStatus(status string) bool {
	return strings.EqualFold(status, PaymentStatusPaid)
}
