package domain

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySuffix is appended to every formatted amount.
const CurrencySuffix = "FCFA"

var pricePrinter = message.NewPrinter(language.French)

// FormatAmount renders an integer amount with French-locale thousand
// grouping and the shop currency suffix, e.g. 12345 -> "12 345 FCFA".
func FormatAmount(amount int64) string {
	return pricePrinter.Sprintf("%d", amount) + " " + CurrencySuffix
}
