package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DepositMode represents how a project's deposit is derived
type DepositMode string

const (
	DepositModeNone         DepositMode = "none"
	DepositModeFixed        DepositMode = "fixed"
	DepositModePercentBase  DepositMode = "percent_base"
	DepositModePercentTotal DepositMode = "percent_total"
)

// ParseDepositMode maps unknown values to DepositModeNone
func ParseDepositMode(s string) DepositMode {
	switch m := DepositMode(s); m {
	case DepositModeFixed, DepositModePercentBase, DepositModePercentTotal:
		return m
	default:
		return DepositModeNone
	}
}

// IsValid reports whether m is one of the known modes
func (m DepositMode) IsValid() bool {
	switch m {
	case DepositModeNone, DepositModeFixed, DepositModePercentBase, DepositModePercentTotal:
		return true
	}
	return false
}

// IsPercent reports whether the mode takes a percentage value
func (m DepositMode) IsPercent() bool {
	return m == DepositModePercentBase || m == DepositModePercentTotal
}

func (m DepositMode) String() string {
	return string(ParseDepositMode(string(m)))
}

func (m DepositMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *DepositMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	// kept verbatim so that validation can reject unknown modes
	*m = DepositMode(str)
	return nil
}

func (m DepositMode) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m *DepositMode) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = DepositModeNone
	case string:
		*m = ParseDepositMode(v)
	case []byte:
		*m = ParseDepositMode(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DepositMode", value)
	}
	return nil
}
