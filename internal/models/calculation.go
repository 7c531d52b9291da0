package models

// FeeLine is a catalog fee item priced against the active base value.
type FeeLine struct {
	FeeItem
	Amount          float64 `json:"amount"`
	FormattedAmount string  `json:"formatted_amount"`
}

// CategoryFees is one display bucket of a calculation result.
type CategoryFees struct {
	Category       FeeCategory `json:"category"`
	Label          string      `json:"label"`
	Fees           []FeeLine   `json:"fees"`
	Total          float64     `json:"total"`
	FormattedTotal string      `json:"formatted_total"`
}

// CalculationResult is derived from a category and a base value; it is never stored.
type CalculationResult struct {
	CategoryID          string         `json:"category_id"`
	CategoryName        string         `json:"category_name"`
	Currency            string         `json:"currency"`
	BaseValue           float64        `json:"base_value"`
	TotalFeesAmount     float64        `json:"total_fees_amount"`
	TotalPercentage     float64        `json:"total_percentage"`
	GrossTotal          float64        `json:"gross_total"`
	CategorizedFees     []CategoryFees `json:"categorized_fees"`
	FormattedBaseValue  string         `json:"formatted_base_value"`
	FormattedTotalFees  string         `json:"formatted_total_fees"`
	FormattedGrossTotal string         `json:"formatted_gross_total"`
	Notes               []string       `json:"notes"`
}

// ComparisonResult compares a base value against the category reference value.
type ComparisonResult struct {
	IsAboveAverage       bool    `json:"is_above_average"`
	Difference           float64 `json:"difference"`
	PercentageDifference float64 `json:"percentage_difference"`
	FormattedDifference  string  `json:"formatted_difference"`
	ReferenceValue       float64 `json:"reference_value"`
}
