package feeregistry

import (
	"math"
	"strings"
)

// MaxPercentage is the upper bound for percentage based fees.
const MaxPercentage = 100.0

// Validate applies the entry rules shared by add and edit.
func Validate(e Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
		return ErrInvalidValue
	}
	if e.Value < 0 {
		return ErrNegativeValue
	}
	if e.IsPercentage && e.Value > MaxPercentage {
		return ErrPercentageExceeds100
	}
	if !e.Type.Valid() {
		return ErrInvalidFeeType
	}
	return nil
}
