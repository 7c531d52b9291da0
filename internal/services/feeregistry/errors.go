package feeregistry

import "errors"

// Validation errors
var (
	ErrEmptyName            = errors.New("fee name must not be empty")
	ErrNegativeValue        = errors.New("fee value must not be negative")
	ErrPercentageExceeds100 = errors.New("percentage fee must not exceed 100")
	ErrInvalidValue         = errors.New("fee value must be a finite number")
	ErrInvalidFeeType       = errors.New("invalid fee type")
)

// Registry errors
var (
	ErrEntryNotFound = errors.New("fee entry not found")
	ErrEntryBusy     = errors.New("fee entry has an operation in progress")
	ErrBackingStore  = errors.New("fee backing store failure")
)

// IsValidationError reports whether err is one of the field validation errors.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrPercentageExceeds100) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrInvalidFeeType)
}
