// Package types provides common type aliases and utilities.
package types

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; intermediate values
// stay unrounded and are only rounded at the display boundary.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// Non-finite input (NaN, ±Inf) is coerced to zero so that a single bad
// field can never corrupt a document total.
func NewMoney(f float64) Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for precise monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// SafeFloat coerces a float to a finite value, substituting zero for
// NaN and ±Inf. Quantities and rates arriving from user input pass
// through this before any arithmetic.
func SafeFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
