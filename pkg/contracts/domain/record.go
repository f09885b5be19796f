package domain

import (
	"encoding/json"
)

// MemoryRecord represents one cleaned memory price observation
type MemoryRecord struct {
	FractionalYear float64     `json:"fractional_year" validate:"required"`
	CostPerMB      float64     `json:"cost_per_megabyte" validate:"required,gt=0"`
	Year           int         `json:"year" validate:"required,min=1950,max=2100"`
	Month          string      `json:"month" validate:"required,oneof=Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec"`
	Kilobytes      NullFloat64 `json:"kilobytes"`
	UnitCost       NullFloat64 `json:"unit_cost"`
	CostDiff       NullFloat64 `json:"cost_diff"`
}

// NullFloat64 is a float64 that can be explicitly missing. Unparsable
// source values and the leading cost difference carry Valid=false rather
// than a silent zero.
type NullFloat64 struct {
	Float64 float64
	Valid   bool
}

// Float returns a valid NullFloat64 wrapping v.
func Float(v float64) NullFloat64 {
	return NullFloat64{Float64: v, Valid: true}
}

// MarshalJSON renders missing values as null.
func (n NullFloat64) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON accepts null as a missing value.
func (n *NullFloat64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat64{}
		return nil
	}
	if err := json.Unmarshal(data, &n.Float64); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MonthAbbreviations lists the 12 valid three-letter month labels in
// calendar order.
var MonthAbbreviations = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ValidMonth reports whether m is one of the 12 three-letter abbreviations.
func ValidMonth(m string) bool {
	for _, abbr := range MonthAbbreviations {
		if m == abbr {
			return true
		}
	}
	return false
}
