/*
Package feecalc computes category fee breakdowns for tokenized real-estate assets.

It covers:
- Fee math (per-item fee amounts, gross totals, total percentages)
- Categorizing fee items into ordered display buckets
- Comparing a base value against the category average
- The Calculator, which turns a selected category and base value into a CalculationResult

Usage:

	calc := feecalc.NewCalculator(cat)

	// Select a category; the base value resets to the category default
	calc.SelectCategory("data-centers-edge")

	// Override the base value from user input
	calc.SetBaseValueText("30,000,000.00")

	result := calc.Result()
	comparison := calc.Comparison()

Amounts are computed with decimal arithmetic and rounded to whole currency units.
All functions are synchronous and free of shared state.
*/
package feecalc
