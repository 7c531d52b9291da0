package models

// FeeCategory groups catalog fee items for display.
type FeeCategory string

const (
	FeeCategoryRegistration  FeeCategory = "registration"
	FeeCategoryLegal         FeeCategory = "legal"
	FeeCategoryPlatform      FeeCategory = "platform"
	FeeCategoryBrokerage     FeeCategory = "brokerage"
	FeeCategoryTechnical     FeeCategory = "technical"
	FeeCategoryMiscellaneous FeeCategory = "miscellaneous"
)

var feeCategoryOrder = []FeeCategory{
	FeeCategoryRegistration,
	FeeCategoryLegal,
	FeeCategoryPlatform,
	FeeCategoryBrokerage,
	FeeCategoryTechnical,
	FeeCategoryMiscellaneous,
}

var feeCategoryLabels = map[FeeCategory]string{
	FeeCategoryRegistration:  "Registration Fees",
	FeeCategoryLegal:         "Legal Fees",
	FeeCategoryPlatform:      "Platform Fees",
	FeeCategoryBrokerage:     "Brokerage Fees",
	FeeCategoryTechnical:     "Technical Fees",
	FeeCategoryMiscellaneous: "Miscellaneous Fees",
}

// FeeCategories returns every category in canonical display order.
func FeeCategories() []FeeCategory {
	out := make([]FeeCategory, len(feeCategoryOrder))
	copy(out, feeCategoryOrder)
	return out
}

func (c FeeCategory) Valid() bool {
	_, ok := feeCategoryLabels[c]
	return ok
}

// Label is the display heading for the category bucket.
func (c FeeCategory) Label() string {
	if label, ok := feeCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// FeeItem is one charge within a category fee structure.
// Percentage is expressed in percent, so 1.50 means 1.5%.
type FeeItem struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Percentage  float64     `json:"percentage" yaml:"percentage"`
	FixedAmount *float64    `json:"fixed_amount,omitempty" yaml:"fixed_amount,omitempty"`
	Required    bool        `json:"required" yaml:"required"`
	Category    FeeCategory `json:"category" yaml:"category"`
}

// HasFixedAmount reports whether the catalog declared a precomputed amount.
func (f FeeItem) HasFixedAmount() bool {
	return f.FixedAmount != nil
}

// CategoryFeeStructure is the catalog entry of a single asset category.
type CategoryFeeStructure struct {
	CategoryID        string    `json:"category_id" yaml:"category_id"`
	CategoryName      string    `json:"category_name" yaml:"category_name"`
	BasePropertyValue float64   `json:"base_property_value" yaml:"base_property_value"`
	Currency          string    `json:"currency" yaml:"currency"`
	FeeItems          []FeeItem `json:"fee_items" yaml:"fee_items"`
	TotalPercentage   float64   `json:"total_percentage" yaml:"total_percentage"`
	GrossTotal        float64   `json:"gross_total" yaml:"gross_total"`
	Notes             []string  `json:"notes" yaml:"notes"`
}

// Clone returns a deep copy so catalog entries are never shared mutably.
func (s CategoryFeeStructure) Clone() CategoryFeeStructure {
	out := s
	out.FeeItems = make([]FeeItem, len(s.FeeItems))
	for i, item := range s.FeeItems {
		if item.FixedAmount != nil {
			amount := *item.FixedAmount
			item.FixedAmount = &amount
		}
		out.FeeItems[i] = item
	}
	out.Notes = append([]string(nil), s.Notes...)
	return out
}

// CategorySummary is the list view of a catalog entry.
type CategorySummary struct {
	CategoryID        string  `json:"category_id"`
	CategoryName      string  `json:"category_name"`
	BasePropertyValue float64 `json:"base_property_value"`
	Currency          string  `json:"currency"`
	TotalPercentage   float64 `json:"total_percentage"`
	FeeCount          int     `json:"fee_count"`
}
