// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/advisor-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for display and for making logical comparisons; computations keep
// full precision.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// FloorZero returns val, or 0 when val is negative.
func FloorZero(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// Saturate clamps val to [-constants.MaxAmount, constants.MaxAmount].
// Infinities saturate at the matching bound and NaN becomes 0.
func Saturate(val float64) float64 {
	switch {
	case math.IsNaN(val):
		return 0
	case val > constants.MaxAmount:
		return constants.MaxAmount
	case val < -constants.MaxAmount:
		return -constants.MaxAmount
	}
	return val
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}
