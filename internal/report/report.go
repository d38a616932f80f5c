// Package report assembles every projection for a client into a single
// advisory report.
package report

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/iwvelando/advisor-forecast/pkg/adapters"
	"github.com/iwvelando/advisor-forecast/pkg/aggregate"
	"github.com/iwvelando/advisor-forecast/pkg/beneficiary"
	"github.com/iwvelando/advisor-forecast/pkg/budget"
	"github.com/iwvelando/advisor-forecast/pkg/constants"
	"github.com/iwvelando/advisor-forecast/pkg/datetime"
	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/growth"
	"github.com/iwvelando/advisor-forecast/pkg/insurance"
	"github.com/iwvelando/advisor-forecast/pkg/liquidity"
	"github.com/iwvelando/advisor-forecast/pkg/normalize"
	"github.com/iwvelando/advisor-forecast/pkg/validation"
)

// Report holds all information produced for one client.
type Report struct {
	ClientID          string                     `json:"clientId"`
	ClientName        string                     `json:"clientName"`
	Year              int                        `json:"year"`
	LifeExpectancy    int                        `json:"lifeExpectancy"`
	Totals            aggregate.Totals           `json:"totals"`
	PerAsset          []aggregate.Projection     `json:"perAsset"`
	Diversification   []aggregate.Slice          `json:"diversification"`
	NetWorth          float64                    `json:"netWorth"`
	TotalDebt         float64                    `json:"totalDebt"`
	Budget            BudgetView                 `json:"budget"`
	Beneficiaries     beneficiary.Reconciliation `json:"beneficiaries"`
	Liquidity         liquidity.Reconciliation   `json:"liquidity"`
	Stakeholders      []insurance.Recommendation `json:"stakeholders"`
	StakeholderTotals insurance.Totals           `json:"stakeholderTotals"`
	Purposes          insurance.TotalNeeds       `json:"purposes"`
	Timeline          []growth.Row               `json:"timeline"`
	TaxFreeze         *TaxFreeze                 `json:"taxFreeze,omitempty"`
	Warnings          []string                   `json:"warnings,omitempty"`
}

// BudgetView is the recommended band alongside the proposed budget.
type BudgetView struct {
	Recommendation budget.Recommendation `json:"recommendation"`
	Proposed       *float64              `json:"proposed,omitempty"`
	Position       budget.Position       `json:"position"`
}

// FrozenHolding is one holding valued at the tax freeze year.
type FrozenHolding struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Current  float64 `json:"current"`
	AtFreeze float64 `json:"atFreeze"`
}

// TaxFreeze values assets and business shares at the planned freeze year.
type TaxFreeze struct {
	Year     int             `json:"year"`
	Years    int             `json:"years"`
	Holdings []FrozenHolding `json:"holdings"`
	Current  float64         `json:"current"`
	AtFreeze float64         `json:"atFreeze"`
	Growth   float64         `json:"growth"`
}

// Generate builds the report for the current calendar year.
func Generate(logger *zap.Logger, client *domain.Client) (*Report, error) {
	return GenerateWithFixedYear(logger, client, datetime.SystemClock{}.Year())
}

// GenerateWithFixedYear builds the report as of the given year.
func GenerateWithFixedYear(logger *zap.Logger, client *domain.Client, year int) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		return nil, fmt.Errorf("no client to report on")
	}
	if year < constants.MinYear || year > constants.MaxYear {
		return nil, &normalize.InvalidInputError{Field: "year", Value: strconv.Itoa(year),
			Reason: fmt.Sprintf("must be between %d and %d", constants.MinYear, constants.MaxYear)}
	}

	start := time.Now()
	le := client.LifeExpectancy

	r := &Report{
		ClientID:        client.ID.String(),
		ClientName:      client.Name,
		Year:            year,
		LifeExpectancy:  le,
		Totals:          aggregate.Aggregate(client.Assets, client.Businesses, le),
		PerAsset:        aggregate.Project(client.Assets, client.Businesses, le),
		Diversification: aggregate.Diversification(client.Assets, client.Businesses),
		NetWorth:        budget.NetWorth(client.Assets, client.Businesses, client.Debts, year),
		TotalDebt:       budget.TotalDebt(client.Debts, year),
		Beneficiaries:   beneficiary.ReconcileClient(client),
	}

	rec := budget.Recommend(client.AnnualIncome, r.NetWorth)
	r.Budget = BudgetView{Recommendation: rec, Position: budget.Evaluate(client.Budget, rec)}
	if client.Budget != nil {
		proposed := client.Budget.Income
		r.Budget.Proposed = &proposed
	}

	r.Liquidity = liquidity.Reconcile(r.Totals.FutureLiquid, client.LiquidityAllocatedTowardsGoals, client.Goals, r.NetWorth)

	r.Stakeholders = insurance.ForBusinesses(client.Businesses, le)
	r.StakeholderTotals = insurance.Sum(r.Stakeholders)
	r.Purposes = insurance.ForPurposes(client.Purposes, insurance.PurposeInputs{
		AnnualIncome:   client.AnnualIncome,
		LifeExpectancy: le,
		TotalDebt:      r.TotalDebt,
		GoalsShortfall: r.Liquidity.Shortfall(),
	}, r.Liquidity.MaxInsurableAmount)

	instruments := append(adapters.AssetsToInstruments(client.Assets), adapters.DebtsToInstruments(client.Debts)...)
	r.Timeline = growth.NewSeriesGenerator(logger).Generate(instruments, year+le)

	r.TaxFreeze = taxFreeze(client, year)
	if r.TaxFreeze == nil && client.TaxFreezeAtYear != 0 {
		logger.Debug(fmt.Sprintf("tax freeze year %d is before %d, skipping", client.TaxFreezeAtYear, year),
			zap.String("op", "report.GenerateWithFixedYear"),
		)
	}

	r.Warnings = validation.NewClientValidator(year).ValidateClient(client)
	if r.Beneficiaries.Skipped > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d beneficiary designations reference removed beneficiaries and were ignored",
			r.Beneficiaries.Skipped))
	}
	if r.Purposes.ExceedsMaxInsurable {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Insurable needs of %.2f exceed the maximum insurable amount of %.2f",
			r.Purposes.Want, r.Purposes.MaxInsurableAmount))
	}

	logger.Debug("report generated",
		zap.String("op", "report.GenerateWithFixedYear"),
		zap.String("client", client.Name),
		zap.Int("year", year),
		zap.Int("timelineYears", len(r.Timeline)),
		zap.Int("warnings", len(r.Warnings)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return r, nil
}

// taxFreeze projects every asset and business share to the freeze year. It
// returns nil when no freeze is planned or the year has passed.
func taxFreeze(client *domain.Client, year int) *TaxFreeze {
	if client.TaxFreezeAtYear == 0 || client.TaxFreezeAtYear < year {
		return nil
	}

	years := datetime.YearsUntil(year, client.TaxFreezeAtYear)
	tf := &TaxFreeze{Year: client.TaxFreezeAtYear, Years: years}
	add := func(name, kind string, current, rate float64) {
		h := FrozenHolding{
			Name:     name,
			Kind:     kind,
			Current:  current,
			AtFreeze: growth.ProjectValue(current, rate, years),
		}
		tf.Holdings = append(tf.Holdings, h)
		tf.Current += h.Current
		tf.AtFreeze += h.AtFreeze
	}
	for _, a := range client.Assets {
		add(a.Name, string(a.Type), a.CurrentValue, a.Rate)
	}
	for _, b := range client.Businesses {
		add(b.Name, "Business", b.ClientShareValue(), b.AppreciationRate)
	}
	tf.Growth = tf.AtFreeze - tf.Current
	return tf
}
