package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatLKR renders an amount the way customers and laborers see it,
// e.g. "Rs. 1,500" or "Rs. 1,500.50".
func FormatLKR(amount float64) string {
	if amount == math.Trunc(amount) {
		return amountPrinter.Sprintf("Rs. %d", int64(amount))
	}
	return amountPrinter.Sprintf("Rs. %.2f", amount)
}
