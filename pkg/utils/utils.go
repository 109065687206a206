package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatUSD renders a currency amount in en-US style, e.g. "$1,234.56".
// Negative amounts are prefixed with a minus sign: "-$1,234.56".
func FormatUSD(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "$" + strings.Join(groups, ",") + "." + fracPart
	if amount.IsNegative() {
		out = "-" + out
	}
	return out
}

// FormatShortDate renders a date as "Jan 2, 2006" for display and log lines.
func FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}
