// Package insurance derives insurable needs and priority-weighted coverage
// recommendations ("wants").
package insurance

import (
	"github.com/google/uuid"

	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/growth"
	"github.com/iwvelando/advisor-forecast/pkg/mathutil"
)

// StakeholderKind distinguishes the parties insured within a business.
type StakeholderKind string

const (
	KindBusiness    StakeholderKind = "business"
	KindKeyPerson   StakeholderKind = "key person"
	KindShareholder StakeholderKind = "shareholder"
)

// Want scales a need by a priority percentage.
func Want(need, priority float64) float64 {
	return mathutil.ApplyPercentage(need, priority)
}

// Gap is the coverage still missing once existing insurance is counted.
func Gap(want, existingCoverage float64) float64 {
	return mathutil.FloorZero(want - existingCoverage)
}

// Recommendation is the need, want and coverage gap for one insured party.
type Recommendation struct {
	ID                 uuid.UUID       `json:"id"`
	BusinessID         uuid.UUID       `json:"businessId"`
	Business           string          `json:"business"`
	Name               string          `json:"name"`
	Kind               StakeholderKind `json:"kind"`
	HorizonYears       int             `json:"horizonYears"`
	Need               float64         `json:"need"`
	Priority           float64         `json:"priority"`
	Want               float64         `json:"want"`
	ExistingCoverage   float64         `json:"existingCoverage"`
	AdditionalCoverage float64         `json:"additionalCoverage"`
}

// Recompute returns the recommendation with a new priority applied. Nothing
// but Priority, Want and AdditionalCoverage changes.
func (r Recommendation) Recompute(priority float64) Recommendation {
	r.Priority = priority
	r.Want = Want(r.Need, priority)
	r.AdditionalCoverage = Gap(r.Want, r.ExistingCoverage)
	return r
}

func recommendation(id uuid.UUID, b domain.Business, name string, kind StakeholderKind, years int, need, priority, coverage float64) Recommendation {
	r := Recommendation{
		ID:               id,
		BusinessID:       b.ID,
		Business:         b.Name,
		Name:             name,
		Kind:             kind,
		HorizonYears:     years,
		Need:             need,
		ExistingCoverage: coverage,
	}
	return r.Recompute(priority)
}

// KeyPersonNeed is the key person's share of projected EBITDA.
func KeyPersonNeed(b domain.Business, kp domain.KeyPerson, years int) float64 {
	projected := growth.ProjectValue(b.Ebitda, b.AppreciationRate, years)
	return mathutil.ApplyPercentage(projected, kp.EbitdaContributionPercentage)
}

// ShareholderNeed is the shareholder's share of the projected valuation.
func ShareholderNeed(b domain.Business, sh domain.Shareholder, years int) float64 {
	projected := growth.ProjectValue(b.Valuation, b.AppreciationRate, years)
	return mathutil.ApplyPercentage(projected, sh.SharePercentage)
}

// BusinessNeed is the client's own share of the projected valuation.
func BusinessNeed(b domain.Business, years int) float64 {
	return growth.ProjectValue(b.ClientShareValue(), b.AppreciationRate, years)
}

// ForBusiness returns recommendations for the client's stake followed by
// each key person and shareholder, in input order.
func ForBusiness(b domain.Business, lifeExpectancy int) []Recommendation {
	years := growth.NeedsHorizon(b.Term, lifeExpectancy)

	recs := make([]Recommendation, 0, 1+len(b.KeyPeople)+len(b.Shareholders))
	recs = append(recs, recommendation(b.ID, b, b.Name, KindBusiness, years,
		BusinessNeed(b, years), b.Priority, b.InsuranceCoverage))
	for _, kp := range b.KeyPeople {
		recs = append(recs, recommendation(kp.ID, b, kp.Name, KindKeyPerson, years,
			KeyPersonNeed(b, kp, years), kp.Priority, kp.InsuranceCoverage))
	}
	for _, sh := range b.Shareholders {
		recs = append(recs, recommendation(sh.ID, b, sh.Name, KindShareholder, years,
			ShareholderNeed(b, sh, years), sh.Priority, sh.InsuranceCoverage))
	}
	return recs
}

// ForBusinesses runs ForBusiness over every business.
func ForBusinesses(businesses []domain.Business, lifeExpectancy int) []Recommendation {
	var recs []Recommendation
	for _, b := range businesses {
		recs = append(recs, ForBusiness(b, lifeExpectancy)...)
	}
	return recs
}

// Totals sums needs, wants and gaps.
type Totals struct {
	Need               float64 `json:"need"`
	Want               float64 `json:"want"`
	AdditionalCoverage float64 `json:"additionalCoverage"`
}

// Sum totals a set of recommendations.
func Sum(recs []Recommendation) Totals {
	var t Totals
	for _, r := range recs {
		t.Need += r.Need
		t.Want += r.Want
		t.AdditionalCoverage += r.AdditionalCoverage
	}
	return t
}
