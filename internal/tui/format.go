package tui

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
)

// FormatCurrency renders a dollar amount with grouping, e.g. "$1,234.56".
func FormatCurrency(v float64) string {
	return money.NewFromFloat(v, money.USD).Display()
}

// FormatSignedCurrency renders a gain/loss amount with an explicit sign,
// e.g. "+$12.50" or "-$3.20".
func FormatSignedCurrency(v float64) string {
	if v >= 0 {
		return "+" + FormatCurrency(v)
	}
	return FormatCurrency(v)
}

// FormatSignedPercent renders a percentage with an explicit sign,
// e.g. "+1.25%".
func FormatSignedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatQuantity trims trailing zeros from a share count.
func FormatQuantity(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// formatClock renders a refresh timestamp for the "Updated:" footers.
func formatClock(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// formatEventTime renders an ISO timestamp compactly, falling back to the
// raw string when it does not parse.
func formatEventTime(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format("01/02 15:04")
}
