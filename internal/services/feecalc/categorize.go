package feecalc

import "estatefees/internal/models"

// CategoryGroup is a bucket of fee items sharing a category.
type CategoryGroup struct {
	Category models.FeeCategory
	Fees     []models.FeeItem
}

// Categorize buckets items in canonical category order, keeping the relative
// input order inside each bucket. Empty buckets are omitted.
func Categorize(items []models.FeeItem) []CategoryGroup {
	groups := make([]CategoryGroup, 0, len(models.FeeCategories()))
	for _, category := range models.FeeCategories() {
		var fees []models.FeeItem
		for _, item := range items {
			if item.Category == category {
				fees = append(fees, item)
			}
		}
		if len(fees) == 0 {
			continue
		}
		groups = append(groups, CategoryGroup{Category: category, Fees: fees})
	}
	return groups
}
