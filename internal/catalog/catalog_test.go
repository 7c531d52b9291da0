package catalog

import (
	"errors"
	"math"
	"strings"
	"testing"

	"estatefees/internal/models"
	"estatefees/internal/services/feecalc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_SelfConsistent(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)
	require.NoError(t, cat.Validate())

	for _, s := range cat.List() {
		t.Run(s.CategoryID, func(t *testing.T) {
			assert.InDelta(t, s.TotalPercentage, feecalc.TotalPercentage(s.FeeItems), PercentageTolerance)
			assert.Equal(t, s.GrossTotal, feecalc.GrossTotal(s.BasePropertyValue, s.FeeItems))

			for _, item := range s.FeeItems {
				if !item.HasFixedAmount() {
					continue
				}
				assert.Equal(t, *item.FixedAmount, feecalc.FeeAmount(s.BasePropertyValue, item.Percentage), item.ID)
			}
		})
	}
}

func TestDefaultCatalog_DataCentersEdge(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	s, ok := cat.Get("data-centers-edge")
	require.True(t, ok)
	assert.Equal(t, float64(25000000), s.BasePropertyValue)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, 5.8, s.TotalPercentage)
	assert.Equal(t, float64(26450000), s.GrossTotal)
}

func TestCatalog_GetReturnsCopy(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	first, ok := cat.Get("data-centers-edge")
	require.True(t, ok)
	first.FeeItems[0].Percentage = 99
	*first.FeeItems[0].FixedAmount = 1
	first.Notes[0] = "changed"

	second, _ := cat.Get("data-centers-edge")
	assert.Equal(t, 1.50, second.FeeItems[0].Percentage)
	assert.Equal(t, float64(375000), *second.FeeItems[0].FixedAmount)
	assert.NotEqual(t, "changed", second.Notes[0])
}

func TestCatalog_GetUnknown(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	_, ok := cat.Get("no-such-category")
	assert.False(t, ok)

	var nilCatalog *Catalog
	_, ok = nilCatalog.Get("data-centers-edge")
	assert.False(t, ok)
}

func TestLoad_DefaultsAndErrors(t *testing.T) {
	t.Run("currency defaults to USD", func(t *testing.T) {
		cat, err := Load(strings.NewReader(`
categories:
  - category_id: empty
    category_name: Empty
    base_property_value: 100
`))
		require.NoError(t, err)
		s, ok := cat.Get("empty")
		require.True(t, ok)
		assert.Equal(t, "USD", s.Currency)
		assert.NoError(t, cat.Validate())
	})

	t.Run("duplicate ids", func(t *testing.T) {
		_, err := Load(strings.NewReader(`
categories:
  - category_id: a
  - category_id: a
`))
		assert.ErrorIs(t, err, ErrDuplicateCategory)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := Load(strings.NewReader(`
categories:
  - category_name: Nameless
`))
		assert.ErrorIs(t, err, ErrEmptyCategoryID)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(strings.NewReader("categories: ["))
		assert.Error(t, err)
	})
}

func TestValidateStructure_ReportsViolations(t *testing.T) {
	wrong := float64(15)
	s := models.CategoryFeeStructure{
		CategoryID:        "broken",
		BasePropertyValue: 1000,
		TotalPercentage:   3,
		GrossTotal:        1000,
		FeeItems: []models.FeeItem{
			{ID: "a", Percentage: 1, FixedAmount: &wrong, Category: models.FeeCategoryLegal},
			{ID: "a", Percentage: 1, Category: "unknown"},
		},
	}

	errs := ValidateStructure(s)
	// fixed amount, duplicate id, unknown category, percentage sum, gross total
	assert.Len(t, errs, 5)
	for _, err := range errs {
		assert.True(t, errors.Is(err, ErrInvariant))
	}
}

func TestSummaries(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	summaries := cat.Summaries()
	require.Len(t, summaries, cat.Len())
	assert.Equal(t, cat.IDs()[0], summaries[0].CategoryID)
	for _, s := range summaries {
		assert.False(t, math.IsNaN(s.TotalPercentage))
		assert.Positive(t, s.FeeCount)
	}
}
