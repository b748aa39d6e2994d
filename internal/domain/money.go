package domain

import (
	"errors"
	"math"
)

// MaxAmount is the largest value a DECIMAL(10,2) column holds.
const MaxAmount = 99999999.99

var (
	ErrAmountNotPositive = errors.New("must be greater than 0")
	ErrAmountPrecision   = errors.New("must have at most 2 decimal places")
	ErrAmountTooLarge    = errors.New("must be at most 99999999.99")
)

// ValidateAmount reports whether v is a positive money amount that a
// DECIMAL(10,2) column stores without rounding.
func ValidateAmount(v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return ErrAmountNotPositive
	}
	if v > MaxAmount {
		return ErrAmountTooLarge
	}
	if math.Round(v*100)/100 != v {
		return ErrAmountPrecision
	}
	return nil
}
