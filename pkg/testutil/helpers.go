// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/google/uuid"

	"github.com/iwvelando/advisor-forecast/pkg/beneficiary"
	"github.com/iwvelando/advisor-forecast/pkg/domain"
	"github.com/iwvelando/advisor-forecast/pkg/insurance"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// SampleClient returns a fully populated client with stable figures: three
// assets across all buckets, one mortgage, one business with a key person
// and a shareholder, two goals and three insurable purposes.
func SampleClient() *domain.Client {
	alice := domain.Beneficiary{ID: uuid.New(), Name: "Alice", Allocation: 1}
	bob := domain.Beneficiary{ID: uuid.New(), Name: "Bob", Allocation: 1}

	return &domain.Client{
		ID:                             uuid.New(),
		Name:                           "Jane Doe",
		AnnualIncome:                   120000,
		Age:                            50,
		LifeExpectancy:                 30,
		TaxFreezeAtYear:                2030,
		LiquidityAllocatedTowardsGoals: 40,
		Province:                       "ON",
		Budget:                         &domain.Budget{Income: 8000},
		Beneficiaries:                  []domain.Beneficiary{alice, bob},
		Assets: []domain.Asset{
			{
				ID: uuid.New(), Name: "Savings", Type: domain.AssetTypeCash,
				YearAcquired: 2020, InitialValue: 100000, CurrentValue: 100000, Rate: 0, Term: intPtr(10),
				IsLiquid: true,
				Beneficiaries: []domain.AssetBeneficiary{
					{BeneficiaryID: alice.ID, AllocationPercent: 70},
					{BeneficiaryID: bob.ID, AllocationPercent: 30},
				},
			},
			{
				ID: uuid.New(), Name: "Cottage", Type: domain.AssetTypeRealEstate,
				YearAcquired: 2015, InitialValue: 250000, CurrentValue: 400000, Rate: 3,
				ToBeSold: true,
				Beneficiaries: []domain.AssetBeneficiary{
					{BeneficiaryID: bob.ID, AllocationPercent: 100},
				},
			},
			{
				ID: uuid.New(), Name: "Home", Type: domain.AssetTypeRealEstate,
				YearAcquired: 2010, InitialValue: 300000, CurrentValue: 650000, Rate: 2.5,
			},
		},
		Debts: []domain.Debt{
			{
				ID: uuid.New(), Name: "Mortgage", InitialValue: 200000, Rate: 4, AnnualPayment: 24000,
				YearAcquired: 2015, Term: intPtr(15),
			},
		},
		Businesses: []domain.Business{
			{
				ID:                      uuid.New(),
				Name:                    "OpCo",
				Valuation:               1000000,
				Ebitda:                  200000,
				AppreciationRate:        10,
				ClientSharePercentage:   60,
				ClientEbitdaContributed: 50,
				Term:                    intPtr(2),
				InsuranceCoverage:       100000,
				Priority:                50,
				KeyPeople: []domain.KeyPerson{
					{ID: uuid.New(), Name: "CTO", EbitdaContributionPercentage: 25, InsuranceCoverage: 80000, Priority: 100},
				},
				Shareholders: []domain.Shareholder{
					{ID: uuid.New(), Name: "Partner", SharePercentage: 40, Priority: 0},
				},
			},
		},
		Goals: []domain.Goal{
			{ID: uuid.New(), Name: "Grandchildren education", Amount: 50000},
			{ID: uuid.New(), Name: "Hospital foundation", Amount: 25000, IsPhilanthropic: true},
		},
		Purposes: []domain.InsurablePurpose{
			{ID: uuid.New(), Name: "Income replacement", Kind: domain.PurposeIncomeReplacement, Priority: 50},
			{ID: uuid.New(), Name: "Debt repayment", Kind: domain.PurposeDebtRepayment, Priority: 100},
			{ID: uuid.New(), Name: "Funeral costs", Kind: domain.PurposeCustom, Amount: floatPtr(25000), Priority: 100},
		},
	}
}

// FindStakeholder finds a recommendation by stakeholder name.
// Returns a pointer to the recommendation if found, nil otherwise.
func FindStakeholder(recs []insurance.Recommendation, name string) *insurance.Recommendation {
	for i := range recs {
		if recs[i].Name == name {
			return &recs[i]
		}
	}
	return nil
}

// FindShare finds a beneficiary share by beneficiary name.
// Returns a pointer to the share if found, nil otherwise.
func FindShare(shares []beneficiary.Share, name string) *beneficiary.Share {
	for i := range shares {
		if shares[i].Name == name {
			return &shares[i]
		}
	}
	return nil
}
