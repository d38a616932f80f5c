package insurance

import (
	"github.com/google/uuid"

	"github.com/iwvelando/advisor-forecast/pkg/domain"
)

// PurposeInputs carries the client-level figures purposes derive from.
type PurposeInputs struct {
	AnnualIncome   float64
	LifeExpectancy int
	TotalDebt      float64
	GoalsShortfall float64
}

// PurposeNeed derives the need for a purpose. An explicit amount always
// wins; a custom purpose without an amount has no need.
func PurposeNeed(p domain.InsurablePurpose, in PurposeInputs) float64 {
	if p.Amount != nil {
		return *p.Amount
	}
	switch p.Kind {
	case domain.PurposeIncomeReplacement:
		return in.AnnualIncome * float64(in.LifeExpectancy)
	case domain.PurposeDebtRepayment:
		return in.TotalDebt
	case domain.PurposeGoalsFunding:
		return in.GoalsShortfall
	default:
		return 0
	}
}

// PurposeRecommendation is one line of Total Insurable Needs.
type PurposeRecommendation struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	Kind     domain.PurposeKind `json:"kind"`
	Need     float64            `json:"need"`
	Priority float64            `json:"priority"`
	Want     float64            `json:"want"`
}

// Recompute applies a new priority to the purpose.
func (p PurposeRecommendation) Recompute(priority float64) PurposeRecommendation {
	p.Priority = priority
	p.Want = Want(p.Need, priority)
	return p
}

// TotalNeeds is the client's Total Insurable Needs.
type TotalNeeds struct {
	Purposes            []PurposeRecommendation `json:"purposes"`
	Need                float64                 `json:"need"`
	Want                float64                 `json:"want"`
	MaxInsurableAmount  float64                 `json:"maxInsurableAmount"`
	ExceedsMaxInsurable bool                    `json:"exceedsMaxInsurable"`
}

// ForPurposes computes each purpose's need and want and compares the total
// want against the maximum insurable amount.
func ForPurposes(purposes []domain.InsurablePurpose, in PurposeInputs, maxInsurable float64) TotalNeeds {
	total := TotalNeeds{MaxInsurableAmount: maxInsurable}
	for _, p := range purposes {
		rec := PurposeRecommendation{
			ID:   p.ID,
			Name: p.Name,
			Kind: p.Kind,
			Need: PurposeNeed(p, in),
		}.Recompute(p.Priority)
		total.Purposes = append(total.Purposes, rec)
		total.Need += rec.Need
		total.Want += rec.Want
	}
	total.ExceedsMaxInsurable = total.Want > maxInsurable
	return total
}
