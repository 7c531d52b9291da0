package feecalc

import (
	"estatefees/internal/models"

	"github.com/shopspring/decimal"
)

// Compare measures baseValue against a reference (category average) value.
// A zero reference yields a zero percentage difference instead of dividing by zero.
func Compare(baseValue, referenceValue float64, currencyCode string) models.ComparisonResult {
	base := decimal.NewFromFloat(baseValue)
	ref := decimal.NewFromFloat(referenceValue)
	diff := base.Sub(ref)

	pct := decimal.Zero
	if !ref.IsZero() {
		pct = diff.Div(ref).Mul(hundred)
	}

	return models.ComparisonResult{
		IsAboveAverage:       diff.IsPositive(),
		Difference:           diff.InexactFloat64(),
		PercentageDifference: pct.InexactFloat64(),
		FormattedDifference:  FormatCurrency(diff.Abs().InexactFloat64(), currencyCode),
		ReferenceValue:       referenceValue,
	}
}
