package feecalc

import (
	"estatefees/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FeeAmount returns round(baseValue * percentage / 100) in whole currency units.
// Halves round away from zero, which is half-up for the non-negative inputs
// this function is defined for.
func FeeAmount(baseValue, percentage float64) float64 {
	return feeAmount(decimal.NewFromFloat(baseValue), percentage).InexactFloat64()
}

func feeAmount(base decimal.Decimal, percentage float64) decimal.Decimal {
	return base.Mul(decimal.NewFromFloat(percentage)).Div(hundred).Round(0)
}

// TotalFees sums the rounded fee amount of every item.
func TotalFees(baseValue float64, items []models.FeeItem) float64 {
	return totalFees(decimal.NewFromFloat(baseValue), items).InexactFloat64()
}

func totalFees(base decimal.Decimal, items []models.FeeItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(feeAmount(base, item.Percentage))
	}
	return total
}

// GrossTotal is the base value plus every rounded fee amount.
func GrossTotal(baseValue float64, items []models.FeeItem) float64 {
	base := decimal.NewFromFloat(baseValue)
	return base.Add(totalFees(base, items)).InexactFloat64()
}

// TotalPercentage is the unrounded sum of item percentages.
func TotalPercentage(items []models.FeeItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Percentage))
	}
	return total.InexactFloat64()
}
