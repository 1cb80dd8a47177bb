package careermetrics

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders cents as grouped whole dollars, e.g. "$123,457".
func FormatCurrency(cents int64) string {
	dollars := CentsToDollars(&cents)
	if dollars < 0 {
		return printer.Sprintf("-$%d", -dollars)
	}
	return printer.Sprintf("$%d", dollars)
}

// FormatPercentage renders v with the given number of decimals, e.g. "22.5%".
func FormatPercentage(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df%%%%", decimals), v)
}
