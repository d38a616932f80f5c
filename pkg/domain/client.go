// Package domain defines the validated records the projection engine works
// on. Values here have already passed normalization; the engine never
// re-checks them.
package domain

import (
	"github.com/google/uuid"
)

// AssetType classifies an asset for diversification views.
type AssetType string

const (
	AssetTypeCash              AssetType = "Cash"
	AssetTypeStocks            AssetType = "Stocks"
	AssetTypeBonds             AssetType = "Bonds"
	AssetTypeRealEstate        AssetType = "RealEstate"
	AssetTypeMutualFunds       AssetType = "MutualFunds"
	AssetTypeRetirementAccount AssetType = "RetirementAccount"
	AssetTypeCrypto            AssetType = "Crypto"
	AssetTypeLifeInsurance     AssetType = "LifeInsurance"
)

// AssetTypes lists every asset type in display order.
var AssetTypes = []AssetType{
	AssetTypeCash,
	AssetTypeStocks,
	AssetTypeBonds,
	AssetTypeRealEstate,
	AssetTypeMutualFunds,
	AssetTypeRetirementAccount,
	AssetTypeCrypto,
	AssetTypeLifeInsurance,
}

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	for _, known := range AssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Client is the aggregate root owning every other record.
type Client struct {
	ID                             uuid.UUID
	Name                           string
	AnnualIncome                   float64
	Age                            int
	LifeExpectancy                 int // remaining years, used as a horizon
	TaxFreezeAtYear                int
	LiquidityAllocatedTowardsGoals float64 // percent
	Province                       string

	Assets        []Asset
	Debts         []Debt
	Businesses    []Business
	Beneficiaries []Beneficiary
	Goals         []Goal
	Purposes      []InsurablePurpose
	Budget        *Budget
}

// Asset is a held asset with compound growth.
type Asset struct {
	ID            uuid.UUID
	Name          string
	Type          AssetType
	YearAcquired  int
	InitialValue  float64
	CurrentValue  float64
	Rate          float64 // annual percent
	Term          *int    // years; nil means open-ended
	IsTaxable     bool
	IsLiquid      bool
	ToBeSold      bool
	Beneficiaries []AssetBeneficiary
}

// AssetBeneficiary encodes part of an asset to a beneficiary.
type AssetBeneficiary struct {
	BeneficiaryID     uuid.UUID
	AllocationPercent float64
}

// Realizable reports whether the asset turns into cash for the estate.
func (a Asset) Realizable() bool {
	return a.IsLiquid || a.ToBeSold
}

// Beneficiary receives part of the estate; Allocation is in relative parts.
type Beneficiary struct {
	ID         uuid.UUID
	Name       string
	Allocation float64
}

// Debt is an amortizing loan.
type Debt struct {
	ID            uuid.UUID
	Name          string
	InitialValue  float64
	Rate          float64
	AnnualPayment float64
	YearAcquired  int
	Term          *int
}

// Business is a company the client holds a stake in.
type Business struct {
	ID                      uuid.UUID
	Name                    string
	Valuation               float64
	Ebitda                  float64
	AppreciationRate        float64
	ClientSharePercentage   float64
	ClientEbitdaContributed float64
	Term                    *int
	ToBeSold                bool
	InsuranceCoverage       float64
	Priority                float64
	KeyPeople               []KeyPerson
	Shareholders            []Shareholder
}

// ClientShareValue is the valuation attributable to the client.
func (b Business) ClientShareValue() float64 {
	return b.Valuation * b.ClientSharePercentage / 100
}

// KeyPerson contributes a share of a business's EBITDA.
type KeyPerson struct {
	ID                           uuid.UUID
	Name                         string
	EbitdaContributionPercentage float64
	InsuranceCoverage            float64
	Priority                     float64
}

// Shareholder owns a share of a business.
type Shareholder struct {
	ID                uuid.UUID
	Name              string
	SharePercentage   float64
	InsuranceCoverage float64
	Priority          float64
}

// Goal is an amount the client wants funded from liquidity.
type Goal struct {
	ID              uuid.UUID
	Name            string
	Amount          float64
	IsPhilanthropic bool
}

// PurposeKind selects how a client-level insurable need is derived.
type PurposeKind string

const (
	PurposeIncomeReplacement PurposeKind = "income_replacement"
	PurposeDebtRepayment     PurposeKind = "debt_repayment"
	PurposeGoalsFunding      PurposeKind = "goals_funding"
	PurposeCustom            PurposeKind = "custom"
)

// Valid reports whether k is a known purpose kind.
func (k PurposeKind) Valid() bool {
	switch k {
	case PurposeIncomeReplacement, PurposeDebtRepayment, PurposeGoalsFunding, PurposeCustom:
		return true
	}
	return false
}

// InsurablePurpose is one line of the client's Total Insurable Needs.
// Amount overrides the derived need when set.
type InsurablePurpose struct {
	ID       uuid.UUID
	Name     string
	Kind     PurposeKind
	Amount   *float64
	Priority float64
}

// Budget holds the persisted proposed insurance budget.
type Budget struct {
	Income float64
}

// BeneficiaryIndex maps active beneficiary ids to their records.
func (c *Client) BeneficiaryIndex() map[uuid.UUID]Beneficiary {
	index := make(map[uuid.UUID]Beneficiary, len(c.Beneficiaries))
	for _, b := range c.Beneficiaries {
		index[b.ID] = b
	}
	return index
}
