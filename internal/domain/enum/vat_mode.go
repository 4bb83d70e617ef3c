package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// VATMode represents how VAT relates to a price
type VATMode string

const (
	// VATModeExclusive means VAT is added on top of the amount
	VATModeExclusive VATMode = "exclusive"
	// VATModeInclusive means the amount already contains VAT
	VATModeInclusive VATMode = "inclusive"
)

// ParseVATMode returns the mode for s, falling back to exclusive for anything
// that is not exactly "inclusive" or "exclusive".
func ParseVATMode(s string) VATMode {
	switch VATMode(s) {
	case VATModeInclusive:
		return VATModeInclusive
	default:
		return VATModeExclusive
	}
}

// IsValid reports whether m is one of the known modes
func (m VATMode) IsValid() bool {
	return m == VATModeInclusive || m == VATModeExclusive
}

func (m VATMode) String() string {
	return string(ParseVATMode(string(m)))
}

func (m VATMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *VATMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = ParseVATMode(str)
	return nil
}

func (m VATMode) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *VATMode) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = VATModeExclusive
	case string:
		*m = ParseVATMode(v)
	case []byte:
		*m = ParseVATMode(string(v))
	default:
		return fmt.Errorf("cannot scan %T into VATMode", value)
	}
	return nil
}
