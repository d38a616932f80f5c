package budget

import (
	"math"
)

// Bracket maps an inclusive whole-dollar range to a percentage range.
type Bracket struct {
	Min    float64
	Max    float64 // math.Inf(1) for the open top bracket
	MinPct float64
	MaxPct float64
}

// Contains reports whether a whole-dollar value falls in the bracket.
func (b Bracket) Contains(value float64) bool {
	return value >= b.Min && value <= b.Max
}

// BracketTable is an ordered, non-overlapping list of brackets.
type BracketTable []Bracket

// Lookup returns the bracket containing value. Values are floored to whole
// dollars first so that amounts such as 50000.40 land in the [0, 50000]
// bracket instead of falling between two brackets. ok is false when no
// bracket matches, e.g. for negative values.
func (t BracketTable) Lookup(value float64) (Bracket, bool) {
	if math.IsNaN(value) {
		return Bracket{}, false
	}
	whole := math.Floor(value)
	for _, b := range t {
		if b.Contains(whole) {
			return b, true
		}
	}
	return Bracket{}, false
}

// IncomeBrackets are keyed by annual income.
var IncomeBrackets = BracketTable{
	{Min: 0, Max: 50000, MinPct: 5, MaxPct: 10},
	{Min: 50001, Max: 100000, MinPct: 10, MaxPct: 15},
	{Min: 100001, Max: 250000, MinPct: 15, MaxPct: 20},
	{Min: 250001, Max: 500000, MinPct: 20, MaxPct: 25},
	{Min: 500001, Max: math.Inf(1), MinPct: 25, MaxPct: 30},
}

// NetWorthBrackets are keyed by net worth.
var NetWorthBrackets = BracketTable{
	{Min: 0, Max: 250000, MinPct: 0.5, MaxPct: 1},
	{Min: 250001, Max: 1000000, MinPct: 1, MaxPct: 2},
	{Min: 1000001, Max: 5000000, MinPct: 2, MaxPct: 3},
	{Min: 5000001, Max: math.Inf(1), MinPct: 3, MaxPct: 4},
}
