package pricing

import (
	"fmt"
	"strconv"
)

// FormatGBP renders an amount as a pound figure rounded to two decimal
// places. This is the only place amounts are rounded; the result is never fed
// back into calculations.
func FormatGBP(v float64) string {
	return fmt.Sprintf("£%.2f", v)
}

// FormatAmount renders a bare two-decimal amount for CSV/XLSX cells.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
