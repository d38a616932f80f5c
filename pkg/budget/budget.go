// Package budget computes net worth and the recommended insurance budget band.
package budget

import (
	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/growth"
	"github.com/iwvelando/advisor-forecast/pkg/mathutil"
)

// DebtPresentValue is the debt balance as of currentYear.
func DebtPresentValue(d domain.Debt, currentYear int) float64 {
	elapsed := currentYear - d.YearAcquired
	if elapsed < 0 {
		elapsed = 0
	}
	return growth.DebtBalance(d.InitialValue, d.Rate, d.AnnualPayment, elapsed)
}

// TotalDebt sums the present value of every debt.
func TotalDebt(debts []domain.Debt, currentYear int) float64 {
	total := 0.0
	for _, d := range debts {
		total += DebtPresentValue(d, currentYear)
	}
	return total
}

// NetWorth is current assets plus the client's business shares minus the
// present value of debts.
func NetWorth(assets []domain.Asset, businesses []domain.Business, debts []domain.Debt, currentYear int) float64 {
	total := 0.0
	for _, a := range assets {
		total += a.CurrentValue
	}
	for _, b := range businesses {
		total += b.ClientShareValue()
	}
	return total - TotalDebt(debts, currentYear)
}

// Recommendation is the recommended budget band.
type Recommendation struct {
	MinBudget           float64 `json:"minBudget"`
	MaxBudget           float64 `json:"maxBudget"`
	IsFromMaxIncome     bool    `json:"isFromMaxIncome"`
	MaxBudgetPercentage float64 `json:"maxBudgetPercentage"`
	Basis               string  `json:"basis"`
}

// Candidate is the maximum budget one base would allow.
type Candidate struct {
	Basis      string
	Base       float64
	Percentage float64
	Amount     float64
	Matched    bool
}

func candidate(basis string, base float64, table BracketTable) Candidate {
	c := Candidate{Basis: basis, Base: base}
	bracket, ok := table.Lookup(base)
	if !ok {
		// Out of table: this base contributes nothing.
		return c
	}
	c.Matched = true
	c.Percentage = bracket.MaxPct
	c.Amount = mathutil.ApplyPercentage(base, bracket.MaxPct)
	return c
}

// IncomeCandidate returns the income-based maximum.
func IncomeCandidate(income float64) Candidate {
	return candidate(constants.BudgetBasisIncome, income, IncomeBrackets)
}

// NetWorthCandidate returns the net-worth-based maximum.
func NetWorthCandidate(netWorth float64) Candidate {
	return candidate(constants.BudgetBasisNetWorth, netWorth, NetWorthBrackets)
}

// Recommend computes the budget band. The minimum is a fixed share of
// income; the maximum is the larger of the income and net worth
// candidates, with ties going to income.
func Recommend(income, netWorth float64) Recommendation {
	rec := Recommendation{
		MinBudget: mathutil.FloorZero(mathutil.ApplyPercentage(income, constants.MinIncomePercentage)),
	}

	byIncome := IncomeCandidate(income)
	byNetWorth := NetWorthCandidate(netWorth)

	chosen := byIncome
	if byNetWorth.Amount > byIncome.Amount {
		chosen = byNetWorth
	}

	rec.MaxBudget = chosen.Amount
	rec.MaxBudgetPercentage = chosen.Percentage
	rec.Basis = chosen.Basis
	rec.IsFromMaxIncome = chosen.Basis == constants.BudgetBasisIncome
	return rec
}

// Position places a proposed budget relative to the recommended band.
type Position string

const (
	PositionUnset  Position = "unset"
	PositionBelow  Position = "below"
	PositionWithin Position = "within"
	PositionAbove  Position = "above"
)

// Evaluate reports where the persisted proposed budget sits in the band.
func Evaluate(b *domain.Budget, rec Recommendation) Position {
	if b == nil {
		return PositionUnset
	}
	switch {
	case b.Income < rec.MinBudget:
		return PositionBelow
	case b.Income > rec.MaxBudget:
		return PositionAbove
	default:
		return PositionWithin
	}
}
