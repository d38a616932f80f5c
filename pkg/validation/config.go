// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/growth"
	"github.com/iwvelando/advisor-forecast/pkg/mathutil"
)

// ValidateDebtTerm checks whether a debt is paid off by the end of its
// term. Debts without a term are checked over the client's remaining years.
func ValidateDebtTerm(d domain.Debt, lifeExpectancy int) string {
	years := lifeExpectancy
	window := "the client's life expectancy"
	if d.Term != nil {
		years = *d.Term
		window = fmt.Sprintf("its %d year term", *d.Term)
	}

	if _, paid := growth.PayoffYears(d.InitialValue, d.Rate, d.AnnualPayment, years); !paid {
		return fmt.Sprintf("Debt '%s' is not paid off within %s - a balance of %.2f remains",
			d.Name, window, growth.DebtBalance(d.InitialValue, d.Rate, d.AnnualPayment, years))
	}
	return ""
}

// ValidateAssetAllocations checks that an asset's beneficiary shares do not
// exceed 100% and that they reference known beneficiaries.
func ValidateAssetAllocations(a domain.Asset, beneficiaries map[string]bool) []string {
	var warnings []string

	total := 0.0
	for _, ab := range a.Beneficiaries {
		total += ab.AllocationPercent
	}
	if total > constants.PercentageMultiplier+constants.CurrencyTolerance {
		warnings = append(warnings, fmt.Sprintf("Asset '%s' allocates %.2f%% to beneficiaries (more than 100%%)",
			a.Name, total))
	}

	if a.Realizable() && len(a.Beneficiaries) == 0 && len(beneficiaries) > 0 {
		warnings = append(warnings, fmt.Sprintf("Asset '%s' has no beneficiaries - its value is unassigned", a.Name))
	}

	return warnings
}

// ValidateBusinessShares checks that ownership and EBITDA contributions of a
// business stay within 100%.
func ValidateBusinessShares(b domain.Business) []string {
	var warnings []string

	owned := b.ClientSharePercentage
	for _, sh := range b.Shareholders {
		owned += sh.SharePercentage
	}
	if owned > constants.PercentageMultiplier+constants.CurrencyTolerance {
		warnings = append(warnings, fmt.Sprintf("Business '%s' shares add up to %.2f%% (more than 100%%)", b.Name, owned))
	}

	contributed := b.ClientEbitdaContributed
	for _, kp := range b.KeyPeople {
		contributed += kp.EbitdaContributionPercentage
	}
	if contributed > constants.PercentageMultiplier+constants.CurrencyTolerance {
		warnings = append(warnings, fmt.Sprintf("Business '%s' EBITDA contributions add up to %.2f%% (more than 100%%)",
			b.Name, contributed))
	}

	return warnings
}

// ClientValidator checks a normalized client for inconsistencies that do
// not prevent a projection but are likely input mistakes.
type ClientValidator struct {
	CurrentYear int
}

// NewClientValidator returns a validator for the given projection year.
func NewClientValidator(currentYear int) *ClientValidator {
	return &ClientValidator{CurrentYear: currentYear}
}

// ValidateClient validates the entire client and returns warnings
func (cv *ClientValidator) ValidateClient(c *domain.Client) []string {
	var warnings []string

	if c.LifeExpectancy == 0 {
		warnings = append(warnings, "Life expectancy is 0 - open-ended assets are only projected over the extra years")
	}

	if c.TaxFreezeAtYear != 0 && c.TaxFreezeAtYear < cv.CurrentYear {
		warnings = append(warnings, fmt.Sprintf("Tax freeze year %d is before %d - the tax freeze view is skipped",
			c.TaxFreezeAtYear, cv.CurrentYear))
	}

	parts := 0.0
	names := make(map[string]bool, len(c.Beneficiaries))
	for _, b := range c.Beneficiaries {
		parts += b.Allocation
		names[b.Name] = true
	}
	if len(c.Beneficiaries) > 0 && mathutil.IsZero(parts) {
		warnings = append(warnings, "Beneficiaries have no allocation parts - every ideal share is 0")
	}

	for _, a := range c.Assets {
		if a.YearAcquired > cv.CurrentYear {
			warnings = append(warnings, fmt.Sprintf("Asset '%s' is acquired in the future (%d)", a.Name, a.YearAcquired))
		}
		warnings = append(warnings, ValidateAssetAllocations(a, names)...)
	}

	for _, d := range c.Debts {
		if w := ValidateDebtTerm(d, c.LifeExpectancy); w != "" {
			warnings = append(warnings, w)
		}
	}

	for _, b := range c.Businesses {
		warnings = append(warnings, ValidateBusinessShares(b)...)
	}

	if len(c.Goals) > 0 && mathutil.IsZero(c.LiquidityAllocatedTowardsGoals) {
		warnings = append(warnings, "Goals are set but no liquidity is allocated towards them")
	}

	return warnings
}
