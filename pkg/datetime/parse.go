// Package datetime provides the calendar year used by projections.
package datetime

import (
	"time"
)

// YearProvider supplies the current calendar year.
type YearProvider interface {
	Year() int
}

// SystemClock reads the year from the wall clock.
type SystemClock struct{}

// Year returns the current wall-clock year.
func (SystemClock) Year() int {
	return time.Now().Year()
}

// FixedYear always returns the same year; used for deterministic runs.
type FixedYear int

// Year returns the fixed year.
func (y FixedYear) Year() int {
	return int(y)
}

// ProviderFor returns a FixedYear when year is positive and the system
// clock otherwise.
func ProviderFor(year int) YearProvider {
	if year > 0 {
		return FixedYear(year)
	}
	return SystemClock{}
}

// YearsUntil returns the whole years from currentYear to targetYear, or 0
// when the target is not in the future.
func YearsUntil(currentYear, targetYear int) int {
	if targetYear <= currentYear {
		return 0
	}
	return targetYear - currentYear
}
