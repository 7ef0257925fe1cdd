package output

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders a decimal amount as a dollar string.
func FormatCurrency(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatPercentage renders a fractional rate (0.07 = 7%) as a percent string.
func FormatPercentage(d decimal.Decimal) string {
	return d.Mul(hundred).StringFixed(2) + "%"
}
