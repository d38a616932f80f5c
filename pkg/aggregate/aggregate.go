// Package aggregate sums current and projected values across a client's
// assets and businesses.
package aggregate

import (
	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/growth"
	"github.com/iwvelando/advisor-forecast/pkg/mathutil"
)

// Bucket is the liquidity class a holding falls into.
type Bucket string

const (
	BucketLiquid   Bucket = "liquid"
	BucketFixed    Bucket = "fixed"
	BucketToBeSold Bucket = "to be sold"
)

// AssetBucket classifies an asset. Liquidity wins over a planned sale; a
// non-liquid asset is either fixed or to be sold.
func AssetBucket(a domain.Asset) Bucket {
	switch {
	case a.IsLiquid:
		return BucketLiquid
	case a.ToBeSold:
		return BucketToBeSold
	default:
		return BucketFixed
	}
}

// BusinessBucket classifies a business, which is never liquid.
func BusinessBucket(b domain.Business) Bucket {
	if b.ToBeSold {
		return BucketToBeSold
	}
	return BucketFixed
}

// Totals holds the six bucket sums.
type Totals struct {
	CurrentLiquid   float64 `json:"currentLiquid"`
	FutureLiquid    float64 `json:"futureLiquid"`
	CurrentFixed    float64 `json:"currentFixed"`
	FutureFixed     float64 `json:"futureFixed"`
	CurrentToBeSold float64 `json:"currentToBeSold"`
	FutureToBeSold  float64 `json:"futureToBeSold"`
}

// CurrentRealizable is the current value that will turn into cash.
func (t Totals) CurrentRealizable() float64 {
	return t.CurrentLiquid + t.CurrentToBeSold
}

// FutureRealizable is the projected value that will turn into cash.
func (t Totals) FutureRealizable() float64 {
	return t.FutureLiquid + t.FutureToBeSold
}

// CurrentTotal sums every bucket's current value.
func (t Totals) CurrentTotal() float64 {
	return t.CurrentLiquid + t.CurrentFixed + t.CurrentToBeSold
}

// FutureTotal sums every bucket's projected value.
func (t Totals) FutureTotal() float64 {
	return t.FutureLiquid + t.FutureFixed + t.FutureToBeSold
}

func (t *Totals) add(bucket Bucket, current, future float64) {
	switch bucket {
	case BucketLiquid:
		t.CurrentLiquid += current
		t.FutureLiquid += future
	case BucketToBeSold:
		t.CurrentToBeSold += current
		t.FutureToBeSold += future
	default:
		t.CurrentFixed += current
		t.FutureFixed += future
	}
}

// Projection is one holding's current and projected value.
type Projection struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"` // asset type, or "Business"
	Bucket  Bucket  `json:"bucket"`
	Horizon int     `json:"horizon"`
	Current float64 `json:"current"`
	Future  float64 `json:"future"`
}

// AssetFutureValue projects an asset's current value over its horizon.
func AssetFutureValue(a domain.Asset, lifeExpectancy int) float64 {
	return growth.ProjectValue(a.CurrentValue, a.Rate, growth.Horizon(a.Term, lifeExpectancy))
}

// BusinessFutureValue projects the client's share of a business over its horizon.
func BusinessFutureValue(b domain.Business, lifeExpectancy int) float64 {
	return growth.ProjectValue(b.ClientShareValue(), b.AppreciationRate, growth.Horizon(b.Term, lifeExpectancy))
}

// Project returns the per-holding projections, assets first then businesses,
// preserving input order.
func Project(assets []domain.Asset, businesses []domain.Business, lifeExpectancy int) []Projection {
	projections := make([]Projection, 0, len(assets)+len(businesses))
	for _, a := range assets {
		projections = append(projections, Projection{
			Name:    a.Name,
			Kind:    string(a.Type),
			Bucket:  AssetBucket(a),
			Horizon: growth.Horizon(a.Term, lifeExpectancy),
			Current: a.CurrentValue,
			Future:  AssetFutureValue(a, lifeExpectancy),
		})
	}
	for _, b := range businesses {
		projections = append(projections, Projection{
			Name:    b.Name,
			Kind:    "Business",
			Bucket:  BusinessBucket(b),
			Horizon: growth.Horizon(b.Term, lifeExpectancy),
			Current: b.ClientShareValue(),
			Future:  BusinessFutureValue(b, lifeExpectancy),
		})
	}
	return projections
}

// Aggregate computes the six bucket totals. Empty inputs give all zeros.
func Aggregate(assets []domain.Asset, businesses []domain.Business, lifeExpectancy int) Totals {
	var totals Totals
	for _, p := range Project(assets, businesses, lifeExpectancy) {
		totals.add(p.Bucket, p.Current, p.Future)
	}
	return totals
}

// Slice is one diversification bucket.
type Slice struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Diversification groups current values by asset type plus a synthetic
// businesses bucket. Types with no holdings are left out; order follows
// domain.AssetTypes with businesses last.
func Diversification(assets []domain.Asset, businesses []domain.Business) []Slice {
	byType := make(map[domain.AssetType]float64)
	seen := make(map[domain.AssetType]bool)
	total := 0.0
	for _, a := range assets {
		byType[a.Type] += a.CurrentValue
		seen[a.Type] = true
		total += a.CurrentValue
	}

	businessTotal := 0.0
	for _, b := range businesses {
		businessTotal += b.ClientShareValue()
	}
	total += businessTotal

	var slices []Slice
	for _, t := range domain.AssetTypes {
		if !seen[t] {
			continue
		}
		slices = append(slices, Slice{
			Label:      string(t),
			Value:      byType[t],
			Percentage: mathutil.CalculatePercentage(byType[t], total),
		})
	}
	if len(businesses) > 0 {
		slices = append(slices, Slice{
			Label:      constants.BusinessesBucket,
			Value:      businessTotal,
			Percentage: mathutil.CalculatePercentage(businessTotal, total),
		})
	}
	return slices
}
