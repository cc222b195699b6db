package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols maps the currency codes the budget loader accepts to their
// display symbols. Unknown codes fall back to "<CODE> ".
var currencySymbols = map[string]string{
	"IDR": "Rp",
	"USD": "$",
	"EUR": "€",
	"JPY": "¥",
	"GBP": "£",
	"AUD": "A$",
	"CAD": "C$",
	"SGD": "S$",
}

// FormatCurrency renders an amount with its currency symbol and thousands
// separators, e.g. FormatCurrency(d(1234567.5), "USD") == "$1,234,567.50".
func FormatCurrency(amount decimal.Decimal, currencyCode string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currencyCode)]
	if !ok {
		symbol = strings.ToUpper(currencyCode) + " "
	}
	return symbol + groupThousands(amount.StringFixed(2))
}

func groupThousands(s string) string {
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
