package beneficiary

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwvelando/advisor-forecast/pkg/domain"
)

func TestReconcileSplitAgainstEqualParts(t *testing.T) {
	a := domain.Beneficiary{ID: uuid.New(), Name: "A", Allocation: 50}
	b := domain.Beneficiary{ID: uuid.New(), Name: "B", Allocation: 50}

	inputs := []Input{{
		FutureValue: 100000,
		Beneficiaries: []domain.AssetBeneficiary{
			{BeneficiaryID: a.ID, AllocationPercent: 70},
			{BeneficiaryID: b.ID, AllocationPercent: 30},
		},
	}}

	rec := Reconcile([]domain.Beneficiary{a, b}, inputs)
	require.Len(t, rec.Shares, 2)

	assert.InDelta(t, 70000, rec.Shares[0].Real, 1e-9)
	assert.InDelta(t, 50000, rec.Shares[0].Ideal, 1e-9)
	assert.Zero(t, rec.Shares[0].AdditionalRequired)

	assert.InDelta(t, 30000, rec.Shares[1].Real, 1e-9)
	assert.InDelta(t, 50000, rec.Shares[1].Ideal, 1e-9)
	assert.InDelta(t, 20000, rec.Shares[1].AdditionalRequired, 1e-9)

	assert.InDelta(t, 20000, rec.TotalAdditionalRequired, 1e-9)
	assert.InDelta(t, 30, rec.Shares[1].RealPercentage, 1e-9)
	assert.Zero(t, rec.Unassigned)
}

func TestReconcileUnassignedAssetReachesNoOne(t *testing.T) {
	a := domain.Beneficiary{ID: uuid.New(), Name: "A", Allocation: 1}
	b := domain.Beneficiary{ID: uuid.New(), Name: "B", Allocation: 3}

	inputs := []Input{
		{FutureValue: 40000, Beneficiaries: []domain.AssetBeneficiary{{BeneficiaryID: a.ID, AllocationPercent: 100}}},
		{FutureValue: 60000},
	}

	rec := Reconcile([]domain.Beneficiary{a, b}, inputs)

	assert.InDelta(t, 100000, rec.TotalRealizable, 1e-9)
	assert.InDelta(t, 40000, rec.TotalReal, 1e-9)
	assert.InDelta(t, 60000, rec.Unassigned, 1e-9)
	assert.Zero(t, rec.Shares[1].Real)
	assert.InDelta(t, 25000, rec.Shares[0].Ideal, 1e-9)
	assert.InDelta(t, 75000, rec.Shares[1].Ideal, 1e-9)
	assert.Zero(t, rec.Shares[0].AdditionalRequired)
	assert.InDelta(t, 75000, rec.TotalAdditionalRequired, 1e-9)
}

func TestReconcileMissingAssociationIsSkipped(t *testing.T) {
	a := domain.Beneficiary{ID: uuid.New(), Name: "A", Allocation: 1}
	gone := uuid.New()

	inputs := []Input{{
		FutureValue: 1000,
		Beneficiaries: []domain.AssetBeneficiary{
			{BeneficiaryID: gone, AllocationPercent: 50},
			{BeneficiaryID: a.ID, AllocationPercent: 50},
		},
	}}

	rec := Reconcile([]domain.Beneficiary{a}, inputs)

	assert.Equal(t, 1, rec.Skipped)
	assert.InDelta(t, 500, rec.Shares[0].Real, 1e-9)
	assert.InDelta(t, 1000, rec.Shares[0].Ideal, 1e-9)
}

func TestReconcileZeroPartsDegradesToZeroIdeal(t *testing.T) {
	a := domain.Beneficiary{ID: uuid.New(), Name: "A"}
	inputs := []Input{{FutureValue: 1000, Beneficiaries: []domain.AssetBeneficiary{{BeneficiaryID: a.ID, AllocationPercent: 100}}}}

	rec := Reconcile([]domain.Beneficiary{a}, inputs)

	assert.Zero(t, rec.Shares[0].Ideal)
	assert.Zero(t, rec.Shares[0].AdditionalRequired)
	assert.Zero(t, rec.TotalAdditionalRequired)
}

func TestReconcileEmpty(t *testing.T) {
	rec := Reconcile(nil, nil)
	assert.Empty(t, rec.Shares)
	assert.Zero(t, rec.TotalRealizable)
}

func TestReconcileClientUsesRealizableAssetsOnly(t *testing.T) {
	a := domain.Beneficiary{ID: uuid.New(), Name: "A", Allocation: 1}
	client := &domain.Client{
		LifeExpectancy: 10,
		Beneficiaries:  []domain.Beneficiary{a},
		Assets: []domain.Asset{
			{Name: "Cash", CurrentValue: 1000, IsLiquid: true,
				Beneficiaries: []domain.AssetBeneficiary{{BeneficiaryID: a.ID, AllocationPercent: 100}}},
			{Name: "Home", CurrentValue: 500000,
				Beneficiaries: []domain.AssetBeneficiary{{BeneficiaryID: a.ID, AllocationPercent: 100}}},
		},
	}

	rec := ReconcileClient(client)
	assert.InDelta(t, 1000, rec.TotalRealizable, 1e-9)
	assert.InDelta(t, 1000, rec.Shares[0].Real, 1e-9)
}

func TestShareRounded(t *testing.T) {
	s := Share{Real: 1234.5678, RealPercentage: 33.33333, Ideal: 0.004, AdditionalRequired: 10.005}
	r := s.Rounded()
	assert.InDelta(t, 1234.57, r.Real, 1e-9)
	assert.InDelta(t, 33.33, r.RealPercentage, 1e-9)
	assert.Zero(t, r.Ideal)
	assert.InDelta(t, 1234.5678, s.Real, 1e-9)
}
