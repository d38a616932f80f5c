// Package beneficiary reconciles what beneficiaries receive under the
// current asset designations against what they would receive under their
// declared allocation parts.
package beneficiary

import (
	"github.com/google/uuid"

	"github.com/iwvelando/advisor-forecast/pkg/aggregate"
	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/mathutil"
)

// Share is one beneficiary's reconciled position.
type Share struct {
	BeneficiaryID      uuid.UUID `json:"beneficiaryId"`
	Name               string    `json:"name"`
	AllocationParts    float64   `json:"allocationParts"`
	Real               float64   `json:"real"`
	RealPercentage     float64   `json:"realPercentage"`
	Ideal              float64   `json:"ideal"`
	IdealPercentage    float64   `json:"idealPercentage"`
	AdditionalRequired float64   `json:"additionalRequired"`
}

// Rounded returns a copy with money and percentages rounded for display.
func (s Share) Rounded() Share {
	s.Real = mathutil.Round(s.Real)
	s.RealPercentage = mathutil.Round(s.RealPercentage)
	s.Ideal = mathutil.Round(s.Ideal)
	s.IdealPercentage = mathutil.Round(s.IdealPercentage)
	s.AdditionalRequired = mathutil.Round(s.AdditionalRequired)
	return s
}

// Reconciliation is the full real-versus-ideal comparison.
type Reconciliation struct {
	Shares                  []Share `json:"shares"`
	TotalRealizable         float64 `json:"totalRealizable"`
	TotalReal               float64 `json:"totalReal"`
	Unassigned              float64 `json:"unassigned"`
	TotalAdditionalRequired float64 `json:"totalAdditionalRequired"`
	// Skipped counts designations that referenced a beneficiary no longer
	// in the active set.
	Skipped int `json:"skipped"`
}

// Input is a realizable asset's projected value with its designations.
type Input struct {
	FutureValue   float64
	Beneficiaries []domain.AssetBeneficiary
}

// Inputs projects the client's realizable assets into reconciliation inputs.
func Inputs(assets []domain.Asset, lifeExpectancy int) []Input {
	var inputs []Input
	for _, a := range assets {
		if !a.Realizable() {
			continue
		}
		inputs = append(inputs, Input{
			FutureValue:   aggregate.AssetFutureValue(a, lifeExpectancy),
			Beneficiaries: a.Beneficiaries,
		})
	}
	return inputs
}

// Reconcile computes real and ideal distributions. Assets with no
// designations reach no one; ideal amounts split every realizable dollar by
// allocation parts; only shortfalls count towards the additional money
// required and surpluses are not redistributed.
func Reconcile(beneficiaries []domain.Beneficiary, inputs []Input) Reconciliation {
	var rec Reconciliation

	index := make(map[uuid.UUID]int, len(beneficiaries))
	rec.Shares = make([]Share, len(beneficiaries))
	totalParts := 0.0
	for i, b := range beneficiaries {
		index[b.ID] = i
		rec.Shares[i] = Share{BeneficiaryID: b.ID, Name: b.Name, AllocationParts: b.Allocation}
		totalParts += b.Allocation
	}

	for _, in := range inputs {
		rec.TotalRealizable += in.FutureValue
		for _, ab := range in.Beneficiaries {
			i, ok := index[ab.BeneficiaryID]
			if !ok {
				rec.Skipped++
				continue
			}
			amount := mathutil.ApplyPercentage(in.FutureValue, ab.AllocationPercent)
			rec.Shares[i].Real += amount
			rec.TotalReal += amount
		}
	}
	rec.Unassigned = mathutil.FloorZero(rec.TotalRealizable - rec.TotalReal)

	for i := range rec.Shares {
		s := &rec.Shares[i]
		if totalParts > 0 {
			s.Ideal = s.AllocationParts / totalParts * rec.TotalRealizable
		}
		s.RealPercentage = mathutil.CalculatePercentage(s.Real, rec.TotalRealizable)
		s.IdealPercentage = mathutil.CalculatePercentage(s.Ideal, rec.TotalRealizable)
		s.AdditionalRequired = mathutil.FloorZero(s.Ideal - s.Real)
		rec.TotalAdditionalRequired += s.AdditionalRequired
	}
	return rec
}

// ReconcileClient runs the reconciliation for a whole client.
func ReconcileClient(c *domain.Client) Reconciliation {
	return Reconcile(c.Beneficiaries, Inputs(c.Assets, c.LifeExpectancy))
}
