// Package growth provides compound-growth and amortization projections.
package growth

import (
	"math"

	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/mathutil"
)

func growthFactor(annualRatePercent float64, years int) float64 {
	return math.Pow(1.00+annualRatePercent/constants.PercentageMultiplier, float64(years))
}

// ProjectValue compounds value at annualRatePercent for the given number of
// years. Non-positive years return the value unchanged; the result is never
// negative and saturates at constants.MaxAmount.
func ProjectValue(value, annualRatePercent float64, years int) float64 {
	if years <= 0 || annualRatePercent == 0 {
		return mathutil.FloorZero(mathutil.Saturate(value))
	}
	return mathutil.FloorZero(mathutil.Saturate(value * growthFactor(annualRatePercent, years)))
}

// AmortizedBalance returns the remaining balance of a debt after years of
// annual payments:
//
//	value*(1+r)^y - payment*((1+r)^y - 1)/r
//
// With a zero rate the payment term is payment*y. The balance is floored at
// 0 and never rises above the starting value. When the growth factor
// overflows, the balance stays at the starting value if interest outpaces
// the payment and is 0 otherwise.
func AmortizedBalance(value, annualRatePercent, annualPayment float64, years int) float64 {
	if years <= 0 {
		return mathutil.FloorZero(value)
	}

	var remaining float64
	if annualRatePercent == 0 {
		// For zero interest the payments simply accumulate.
		remaining = value - annualPayment*float64(years)
	} else {
		r := annualRatePercent / constants.PercentageMultiplier
		factor := growthFactor(annualRatePercent, years)
		if math.IsInf(factor, 0) {
			if value*r > annualPayment {
				return mathutil.FloorZero(value)
			}
			return 0
		}
		remaining = value*factor - annualPayment*(factor-1.00)/r
	}

	if remaining > value || math.IsNaN(remaining) {
		remaining = value
	}
	return mathutil.FloorZero(mathutil.Saturate(remaining))
}

// DebtBalance returns the balance years after acquisition, treating the
// loan as paid once any earlier year reached 0. We will get machine error
// near the payoff year otherwise, so balances that round to zero count as
// paid too.
func DebtBalance(value, annualRatePercent, annualPayment float64, years int) float64 {
	if years <= 0 {
		return mathutil.FloorZero(value)
	}
	for y := 1; y <= years; y++ {
		if mathutil.Round(AmortizedBalance(value, annualRatePercent, annualPayment, y)) == 0 {
			return 0
		}
	}
	return AmortizedBalance(value, annualRatePercent, annualPayment, years)
}

// PayoffYears returns the number of years until the debt reaches 0, or
// false when it is not paid off within maxYears.
func PayoffYears(value, annualRatePercent, annualPayment float64, maxYears int) (int, bool) {
	if mathutil.Round(value) <= 0 {
		return 0, true
	}
	for y := 1; y <= maxYears; y++ {
		if DebtBalance(value, annualRatePercent, annualPayment, y) == 0 {
			return y, true
		}
	}
	return 0, false
}

// Horizon returns the projection horizon in years for an instrument: the
// term capped at constants.MaxAssetHorizonYears, or life expectancy plus
// constants.OpenTermExtraYears when the term is open.
func Horizon(term *int, lifeExpectancy int) int {
	if term != nil {
		if *term < constants.MaxAssetHorizonYears {
			return *term
		}
		return constants.MaxAssetHorizonYears
	}
	return lifeExpectancy + constants.OpenTermExtraYears
}

// NeedsHorizon returns min(term, lifeExpectancy), or lifeExpectancy when
// the term is open.
func NeedsHorizon(term *int, lifeExpectancy int) int {
	if term != nil && *term < lifeExpectancy {
		return *term
	}
	return lifeExpectancy
}
