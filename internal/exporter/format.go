package exporter

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"entsocli/pkg/contracts/domain"
)

// displayPrinter renders grouped numbers for human-facing output. The
// locale is fixed process-wide configuration, initialized once.
var displayPrinter = message.NewPrinter(language.English)

// formatPrice formats a price value for CSV output with exactly 2 decimal
// places; an absent price renders as the display sentinel, never as 0.00.
func formatPrice(price *float64) string {
	if price == nil {
		return domain.DisplaySentinel
	}
	return fmt.Sprintf("%.2f", *price)
}

// formatQuantity formats a quantity for CSV output. Quantities come from
// the wire without a fixed scale, so trailing zeros are trimmed.
func formatQuantity(quantity float64) string {
	return strconv.FormatFloat(quantity, 'f', -1, 64)
}

// formatTimestamp renders the stored absolute instant for CSV output, or
// the display sentinel when reconstruction failed.
func formatTimestamp(ts *time.Time) string {
	if ts == nil {
		return domain.DisplaySentinel
	}
	return ts.UTC().Format(time.RFC3339)
}

// formatOptional renders an optional metadata field, leaving absence as an
// empty cell rather than an "Unknown" sentinel.
func formatOptional(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// FormatGroupedNumber renders a number with locale grouping separators for
// preview tables, e.g. 12345.6 -> "12,345.60".
func FormatGroupedNumber(value float64) string {
	return displayPrinter.Sprintf("%.2f", value)
}
