// Package format renders amounts for display.
package format

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/mathutil"
)

// minorUnits converts an amount to the currency's smallest unit, rounding
// half away from zero. Amounts are saturated first so infinities and NaN
// never reach the decimal conversion.
func minorUnits(amount float64, cur *money.Currency) int64 {
	d := decimal.NewFromFloat(mathutil.Saturate(amount)).Round(int32(cur.Fraction))
	factor := decimal.New(1, int32(cur.Fraction))
	return d.Mul(factor).IntPart()
}

func currency() *money.Currency {
	return money.GetCurrency(constants.DefaultCurrency)
}

// Currency returns a currency string with a currency sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	cur := currency()
	return money.New(minorUnits(amount, cur), cur.Code).Display()
}

// Percent renders a percentage with two decimals (e.g., "12.50%").
func Percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
