package enum

import (
	"database/sql/driver"
	"fmt"
)

// BillingType tells whether a project service is part of the package price or billed on top
type BillingType string

const (
	BillingTypeIncluded BillingType = "included"
	BillingTypeExtra    BillingType = "extra"
)

// ParseBillingType defaults unknown values to included, so they never inflate extras
func ParseBillingType(s string) BillingType {
	if BillingType(s) == BillingTypeExtra {
		return BillingTypeExtra
	}
	return BillingTypeIncluded
}

func (t BillingType) Value() (driver.Value, error) {
	return string(ParseBillingType(string(t))), nil
}

func (t *BillingType) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = BillingTypeIncluded
	case string:
		*t = ParseBillingType(v)
	case []byte:
		*t = ParseBillingType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into BillingType", value)
	}
	return nil
}
