package catalog

import (
	"errors"
	"fmt"
	"math"

	"estatefees/internal/models"
	"estatefees/internal/services/feecalc"
)

// PercentageTolerance bounds the drift between declared and summed percentages.
const PercentageTolerance = 0.01

var ErrInvariant = errors.New("catalog invariant violated")

// Validate checks every entry for self-consistency and returns all
// violations joined together.
func (c *Catalog) Validate() error {
	var errs []error
	for _, id := range c.order {
		errs = append(errs, ValidateStructure(c.entries[id])...)
	}
	return errors.Join(errs...)
}

// ValidateStructure checks one category against the catalog invariants.
func ValidateStructure(s models.CategoryFeeStructure) []error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvariant, s.CategoryID, fmt.Sprintf(format, args...)))
	}

	if s.BasePropertyValue < 0 {
		fail("negative base property value %v", s.BasePropertyValue)
	}

	seen := make(map[string]struct{}, len(s.FeeItems))
	for _, item := range s.FeeItems {
		if _, dup := seen[item.ID]; dup {
			fail("duplicate fee item id %q", item.ID)
		}
		seen[item.ID] = struct{}{}

		if !item.Category.Valid() {
			fail("fee item %q has unknown category %q", item.ID, item.Category)
		}
		if item.Percentage < 0 {
			fail("fee item %q has negative percentage %v", item.ID, item.Percentage)
		}
		if item.FixedAmount != nil {
			if want := feecalc.FeeAmount(s.BasePropertyValue, item.Percentage); want != *item.FixedAmount {
				fail("fee item %q fixed amount %v, expected %v", item.ID, *item.FixedAmount, want)
			}
		}
	}

	if sum := feecalc.TotalPercentage(s.FeeItems); math.Abs(sum-s.TotalPercentage) > PercentageTolerance {
		fail("total percentage %v, fee items sum to %v", s.TotalPercentage, sum)
	}
	if gross := feecalc.GrossTotal(s.BasePropertyValue, s.FeeItems); gross != s.GrossTotal {
		fail("gross total %v, expected %v", s.GrossTotal, gross)
	}
	return errs
}
