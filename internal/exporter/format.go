package exporter

import (
	"fmt"

	"memtrend/pkg/contracts/domain"
)

// formatFloat formats a float64 value for CSV output with 6 significant
// digits, enough to round-trip the report's statistics readably
func formatFloat(f float64) string {
	return fmt.Sprintf("%.6g", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatNullFloat renders a missing value as an empty cell, never as zero
func formatNullFloat(n domain.NullFloat64) string {
	if !n.Valid {
		return ""
	}
	return formatFloat(n.Float64)
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
