// Package adapters provides adapter implementations between different package interfaces.
package adapters

import (
	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/growth"
)

// AssetInstrument wraps domain.Asset to implement growth.Instrument. The
// asset compounds from its initial value starting in the year acquired.
type AssetInstrument struct {
	Asset domain.Asset
}

// GetName returns the asset name
func (w AssetInstrument) GetName() string {
	return w.Asset.Name
}

// GetStartYear returns the year the asset was acquired
func (w AssetInstrument) GetStartYear() int {
	return w.Asset.YearAcquired
}

// IsLiability is always false for assets
func (w AssetInstrument) IsLiability() bool {
	return false
}

// ValueAt returns the projected asset value in the given year
func (w AssetInstrument) ValueAt(year int) float64 {
	return growth.ProjectValue(w.Asset.InitialValue, w.Asset.Rate, year-w.Asset.YearAcquired)
}

// DebtInstrument wraps domain.Debt to implement growth.Instrument. The debt
// amortizes from its initial value starting in the year acquired.
type DebtInstrument struct {
	Debt domain.Debt
}

// GetName returns the debt name
func (w DebtInstrument) GetName() string {
	return w.Debt.Name
}

// GetStartYear returns the year the debt was taken
func (w DebtInstrument) GetStartYear() int {
	return w.Debt.YearAcquired
}

// IsLiability is always true for debts
func (w DebtInstrument) IsLiability() bool {
	return true
}

// ValueAt returns the remaining balance in the given year
func (w DebtInstrument) ValueAt(year int) float64 {
	d := w.Debt
	return growth.DebtBalance(d.InitialValue, d.Rate, d.AnnualPayment, year-d.YearAcquired)
}

// AssetsToInstruments converts domain.Asset slices to growth.Instrument slices
func AssetsToInstruments(assets []domain.Asset) []growth.Instrument {
	if assets == nil {
		return nil
	}

	var instruments []growth.Instrument
	for _, asset := range assets {
		instruments = append(instruments, AssetInstrument{Asset: asset})
	}
	return instruments
}

// DebtsToInstruments converts domain.Debt slices to growth.Instrument slices
func DebtsToInstruments(debts []domain.Debt) []growth.Instrument {
	if debts == nil {
		return nil
	}

	var instruments []growth.Instrument
	for _, debt := range debts {
		instruments = append(instruments, DebtInstrument{Debt: debt})
	}
	return instruments
}
