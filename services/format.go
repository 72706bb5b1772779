package services

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCurrency renders a USD amount with two decimals.
func FormatCurrency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatInt renders an integer with thousands separators: 17350 → "17,350".
func FormatInt(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatRounded rounds to a whole number and adds thousands separators.
func FormatRounded(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%.0f", v)
}

// FormatRating renders a rating as it appears in the source data.
func FormatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
