// Package normalize turns the decimal-string monetary and percentage fields
// found in client records into validated numeric values. It is the only
// place where malformed numeric input is rejected; everything downstream
// assumes clean numbers.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/advisor-forecast/pkg/constants"
)

// ErrInvalidInput is the sentinel wrapped by every normalization failure.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError describes a field that could not be normalized.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %q %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, value, reason string) error {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.NewFromFloat(constants.MaxAmount)
	maxRate   = decimal.NewFromInt(constants.MaxRatePercent)
)

// clean strips currency decoration so "$1,250.50" parses as 1250.50.
func clean(raw string) string {
	r := strings.NewReplacer("$", "", ",", "", "_", "", " ", "")
	return r.Replace(strings.TrimSpace(raw))
}

func parse(field, raw string) (decimal.Decimal, error) {
	s := clean(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid(field, raw, "is not a decimal number")
	}
	return d, nil
}

// Money parses a monetary amount. An empty string is zero and the magnitude
// may not exceed constants.MaxAmount.
func Money(field, raw string) (float64, error) {
	d, err := parse(field, raw)
	if err != nil {
		return 0, err
	}
	if d.Abs().GreaterThan(maxAmount) {
		return 0, invalid(field, raw, fmt.Sprintf("must not exceed %g in magnitude", constants.MaxAmount))
	}
	return d.InexactFloat64(), nil
}

// NonNegativeMoney parses a monetary amount that may not be negative.
func NonNegativeMoney(field, raw string) (float64, error) {
	v, err := Money(field, raw)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, invalid(field, raw, "must not be negative")
	}
	return v, nil
}

// Percent parses a percentage in [0,100]; a trailing % sign is accepted.
func Percent(field, raw string) (float64, error) {
	d, err := parse(field, strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if err != nil {
		return 0, invalid(field, raw, "is not a percentage")
	}
	if d.IsNegative() || d.GreaterThan(hundred) {
		return 0, invalid(field, raw, "must be between 0 and 100")
	}
	return d.InexactFloat64(), nil
}

// Rate parses an annual growth rate in percent. Negative rates model
// depreciation but a rate at or below -100% would wipe out the base, and
// rates above constants.MaxRatePercent are refused.
func Rate(field, raw string) (float64, error) {
	d, err := parse(field, strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if err != nil {
		return 0, invalid(field, raw, "is not a rate")
	}
	if d.LessThanOrEqual(hundred.Neg()) {
		return 0, invalid(field, raw, "must be greater than -100")
	}
	if d.GreaterThan(maxRate) {
		return 0, invalid(field, raw, fmt.Sprintf("must not exceed %d", constants.MaxRatePercent))
	}
	return d.InexactFloat64(), nil
}

// Parts parses a relative allocation weight, which may be any non-negative number.
func Parts(field, raw string) (float64, error) {
	return NonNegativeMoney(field, raw)
}

// Whole parses a non-negative whole number. An empty string is zero.
func Whole(field, raw string) (int, error) {
	d, err := parse(field, raw)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, invalid(field, raw, "must be a whole number")
	}
	if d.IsNegative() {
		return 0, invalid(field, raw, "must not be negative")
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, invalid(field, raw, "is too large")
	}
	return int(d.IntPart()), nil
}

// WholeUpTo parses a whole number in [0,max]. An empty string is zero.
func WholeUpTo(field, raw string, max int) (int, error) {
	v, err := Whole(field, raw)
	if err != nil {
		return 0, err
	}
	if v > max {
		return 0, invalid(field, raw, fmt.Sprintf("must not exceed %d", max))
	}
	return v, nil
}

// Year parses a required calendar year between constants.MinYear and
// constants.MaxYear.
func Year(field, raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, invalid(field, raw, "is required")
	}
	return OptionalYear(field, raw)
}

// OptionalYear is like Year but an empty string or 0 means no year and
// returns 0.
func OptionalYear(field, raw string) (int, error) {
	v, err := Whole(field, raw)
	if err != nil || v == 0 {
		return v, err
	}
	if v < constants.MinYear || v > constants.MaxYear {
		return 0, invalid(field, raw, fmt.Sprintf("must be between %d and %d", constants.MinYear, constants.MaxYear))
	}
	return v, nil
}

// Term parses a term in years, at most constants.MaxTermYears. An empty
// string means no term and returns nil.
func Term(field, raw string) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	years, err := WholeUpTo(field, raw, constants.MaxTermYears)
	if err != nil {
		return nil, err
	}
	return &years, nil
}
