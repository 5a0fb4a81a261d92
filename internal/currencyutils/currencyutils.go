// Package currencyutils provides the lenient decimal parsing and dollar
// formatting used for invoice quantities, rates and amounts.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var symbolPattern = regexp.MustCompile(`[$€£¥\s]|USD|CAD|EUR|GBP|CHF`)

// ParseAmount parses a string into a decimal. Currency symbols, codes,
// thousands separators and whitespace are stripped first; an accounting
// style "(12.50)" is negative. It reports false when nothing parseable was
// left.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// ParseLenient parses like ParseAmount but degrades to zero on failure.
func ParseLenient(amountStr string) decimal.Decimal {
	amount, _ := ParseAmount(amountStr)
	return amount
}

// StandardizeAmount converts a display amount such as "$1,234.50" or
// "(45.00)" into a form accepted by decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	s := symbolPattern.ReplaceAllString(strings.TrimSpace(amountStr), "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "'", "")

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	return s
}

// FormatNumber renders a decimal with two places and comma thousands
// separators: 1234.5 -> "1,234.50".
func FormatNumber(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + fracPart
}

// FormatDollars renders an amount as "$1,234.50"; negatives as "-$12.00".
func FormatDollars(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + FormatNumber(amount.Neg())
	}
	return "$" + FormatNumber(amount)
}
