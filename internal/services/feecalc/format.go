package feecalc

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const DefaultCurrency = "USD"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CHF": "CHF ",
	"AED": "AED ",
	"SGD": "S$",
}

// NormalizeCurrency returns the canonical ISO 4217 code, falling back to USD
// for empty or unknown codes.
func NormalizeCurrency(code string) string {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return DefaultCurrency
	}
	return unit.String()
}

// FormatCurrency renders amount as whole currency units with thousands
// separators, e.g. 1500000 -> "$1,500,000".
func FormatCurrency(amount float64, code string) string {
	code = NormalizeCurrency(code)
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	units := decimal.NewFromFloat(amount).Round(0).IntPart()
	if units < 0 {
		return "-" + symbol + humanize.Comma(-units)
	}
	return symbol + humanize.Comma(units)
}

// ParseAmount strips every character other than digits and '.' and parses
// what is left. It reports false when nothing parsable remains.
func ParseAmount(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}
	return value, true
}
