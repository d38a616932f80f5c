// Package liquidity splits projected liquid wealth between what is
// preserved and what funds the client's goals.
package liquidity

import (
	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/mathutil"
)

// Split divides future liquidity by the percentage allocated towards goals.
func Split(futureLiquid, goalsPercent float64) (preserved, allocatedToGoals float64) {
	allocatedToGoals = mathutil.ApplyPercentage(futureLiquid, goalsPercent)
	preserved = futureLiquid * (1 - goalsPercent/constants.PercentageMultiplier)
	return preserved, allocatedToGoals
}

// GoalTotals sums goal amounts overall and by kind.
type GoalTotals struct {
	Total         float64 `json:"total"`
	Philanthropic float64 `json:"philanthropic"`
	Personal      float64 `json:"personal"`
	Count         int     `json:"count"`
}

// TotalGoals sums the client's goals.
func TotalGoals(goals []domain.Goal) GoalTotals {
	var totals GoalTotals
	for _, g := range goals {
		totals.Total += g.Amount
		if g.IsPhilanthropic {
			totals.Philanthropic += g.Amount
		} else {
			totals.Personal += g.Amount
		}
		totals.Count++
	}
	return totals
}

// SurplusShortfall is the liquidity allocated to goals minus what the goals
// need. With no goal amounts it is 0, whatever was allocated: "no goals"
// carries no surplus or shortfall signal.
func SurplusShortfall(allocatedToGoals, totalGoals float64) float64 {
	if totalGoals == 0 {
		return 0
	}
	return allocatedToGoals - totalGoals
}

// MaxInsurableAmount is a quarter of net worth, never below the floor.
func MaxInsurableAmount(netWorth float64) float64 {
	return mathutil.Max(constants.MaxInsurableFloor, constants.MaxInsurableNetWorthShare*netWorth)
}

// Reconciliation bundles the liquidity and goals figures.
type Reconciliation struct {
	FutureLiquid              float64    `json:"futureLiquid"`
	GoalsPercent              float64    `json:"goalsPercent"`
	LiquidityPreserved        float64    `json:"liquidityPreserved"`
	LiquidityAllocatedToGoals float64    `json:"liquidityAllocatedToGoals"`
	Goals                     GoalTotals `json:"goals"`
	SurplusShortfall          float64    `json:"surplusShortfall"`
	MaxInsurableAmount        float64    `json:"maxInsurableAmount"`
}

// Shortfall returns the unfunded goal amount, or 0 when goals are funded.
func (r Reconciliation) Shortfall() float64 {
	return mathutil.FloorZero(-r.SurplusShortfall)
}

// Reconcile computes the full liquidity and goals picture.
func Reconcile(futureLiquid, goalsPercent float64, goals []domain.Goal, netWorth float64) Reconciliation {
	preserved, allocated := Split(futureLiquid, goalsPercent)
	totals := TotalGoals(goals)
	return Reconciliation{
		FutureLiquid:              futureLiquid,
		GoalsPercent:              goalsPercent,
		LiquidityPreserved:        preserved,
		LiquidityAllocatedToGoals: allocated,
		Goals:                     totals,
		SurplusShortfall:          SurplusShortfall(allocated, totals.Total),
		MaxInsurableAmount:        MaxInsurableAmount(netWorth),
	}
}
