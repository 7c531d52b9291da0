package feecalc

import (
	"math"

	"estatefees/internal/models"

	"github.com/shopspring/decimal"
)

// CatalogSource resolves a category id to its fee structure.
type CatalogSource interface {
	Get(id string) (models.CategoryFeeStructure, bool)
}

// Calculator holds the selected category and the active base value and
// derives a fresh CalculationResult on every call. It is owned by a single
// caller and is not safe for concurrent use.
type Calculator struct {
	source    CatalogSource
	structure *models.CategoryFeeStructure
	baseValue float64
}

func NewCalculator(source CatalogSource) *Calculator {
	if source == nil {
		panic("catalog source is required")
	}
	return &Calculator{source: source}
}

// SelectCategory loads the category and resets the base value to its default.
// An unknown id leaves the calculator with no category selected.
func (c *Calculator) SelectCategory(categoryID string) bool {
	structure, ok := c.source.Get(categoryID)
	if !ok {
		c.structure = nil
		c.baseValue = 0
		return false
	}
	c.structure = &structure
	c.baseValue = structure.BasePropertyValue
	return true
}

// SetBaseValue overrides the active base value. Negative or non-finite values
// and calls made before a category is selected are ignored.
func (c *Calculator) SetBaseValue(value float64) bool {
	if c.structure == nil {
		return false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return false
	}
	c.baseValue = value
	return true
}

// SetBaseValueText parses free-form input such as "30,000,000.00".
func (c *Calculator) SetBaseValueText(text string) bool {
	value, ok := ParseAmount(text)
	if !ok {
		return false
	}
	return c.SetBaseValue(value)
}

func (c *Calculator) ResetToDefault() {
	if c.structure == nil {
		return
	}
	c.baseValue = c.structure.BasePropertyValue
}

func (c *Calculator) CategoryID() string {
	if c.structure == nil {
		return ""
	}
	return c.structure.CategoryID
}

func (c *Calculator) BaseValue() float64 {
	return c.baseValue
}

// Result returns nil while no category is selected.
func (c *Calculator) Result() *models.CalculationResult {
	if c.structure == nil {
		return nil
	}
	s := c.structure
	code := NormalizeCurrency(s.Currency)
	base := decimal.NewFromFloat(c.baseValue)

	groups := Categorize(s.FeeItems)
	categorized := make([]models.CategoryFees, 0, len(groups))
	totalFeesAmount := decimal.Zero
	for _, group := range groups {
		lines := make([]models.FeeLine, 0, len(group.Fees))
		groupTotal := decimal.Zero
		for _, item := range group.Fees {
			amount := feeAmount(base, item.Percentage)
			groupTotal = groupTotal.Add(amount)
			lines = append(lines, models.FeeLine{
				FeeItem:         cloneItem(item),
				Amount:          amount.InexactFloat64(),
				FormattedAmount: FormatCurrency(amount.InexactFloat64(), code),
			})
		}
		totalFeesAmount = totalFeesAmount.Add(groupTotal)
		categorized = append(categorized, models.CategoryFees{
			Category:       group.Category,
			Label:          group.Category.Label(),
			Fees:           lines,
			Total:          groupTotal.InexactFloat64(),
			FormattedTotal: FormatCurrency(groupTotal.InexactFloat64(), code),
		})
	}

	gross := base.Add(totalFeesAmount)
	return &models.CalculationResult{
		CategoryID:          s.CategoryID,
		CategoryName:        s.CategoryName,
		Currency:            code,
		BaseValue:           c.baseValue,
		TotalFeesAmount:     totalFeesAmount.InexactFloat64(),
		TotalPercentage:     TotalPercentage(s.FeeItems),
		GrossTotal:          gross.InexactFloat64(),
		CategorizedFees:     categorized,
		FormattedBaseValue:  FormatCurrency(c.baseValue, code),
		FormattedTotalFees:  FormatCurrency(totalFeesAmount.InexactFloat64(), code),
		FormattedGrossTotal: FormatCurrency(gross.InexactFloat64(), code),
		Notes:               append([]string(nil), s.Notes...),
	}
}

// Comparison compares the active base value with the category default.
func (c *Calculator) Comparison() *models.ComparisonResult {
	if c.structure == nil {
		return nil
	}
	result := Compare(c.baseValue, c.structure.BasePropertyValue, c.structure.Currency)
	return &result
}

func cloneItem(item models.FeeItem) models.FeeItem {
	if item.FixedAmount != nil {
		amount := *item.FixedAmount
		item.FixedAmount = &amount
	}
	return item
}
