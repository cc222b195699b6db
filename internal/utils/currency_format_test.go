package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/budget_approval_app/internal/utils"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234567.5", "USD", "$1,234,567.50"},
		{"1000", "EUR", "€1,000.00"},
		{"0", "USD", "$0.00"},
		{"999", "GBP", "£999.00"},
		{"-1234.5", "USD", "$-1,234.50"},
		{"2500000", "IDR", "Rp2,500,000.00"},
		{"100", "usd", "$100.00"},
		{"42", "CHF", "CHF 42.00"},
	}
	for _, tc := range cases {
		got := utils.FormatCurrency(decimal.RequireFromString(tc.amount), tc.currency)
		assert.Equal(t, tc.want, got, "%s %s", tc.amount, tc.currency)
	}
}
