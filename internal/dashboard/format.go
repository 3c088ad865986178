package dashboard

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount prints an integer with thousands separators: 1470 -> "1,470".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney prints a whole-unit amount with thousands separators after the
// currency symbol: 6502.93 -> "₹6,503".
func FormatMoney(symbol string, v float64) string {
	return symbol + printer.Sprintf("%.0f", v)
}

// FormatPercent prints a percentage with two decimals: 16.1224 -> "16.12%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatYears prints a duration in years with one decimal.
func FormatYears(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
