// Package format renders money and percentages for display.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency returns a currency string with the given symbol and thousands
// separators (e.g., "-₹1,234.56").
func Currency(amount float64, symbol string) string {
	formatted := NumericCurrency(amount)
	if rest, negative := strings.CutPrefix(formatted, "-"); negative {
		return "-" + symbol + rest
	}
	return symbol + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	formatted := message.NewPrinter(language.English).Sprintf("%.2f", amount)
	// Amounts that round to zero print unsigned.
	if strings.Trim(formatted, "-0.,") == "" {
		return "0.00"
	}
	return formatted
}

// Percent renders a percentage with two decimals.
func Percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
