package growth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iwvelando/advisor-forecast/pkg/constants"
)

func intPtr(v int) *int { return &v }

func TestProjectValue(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		rate     float64
		years    int
		expected float64
	}{
		{"ten percent for two years", 1000, 10, 2, 1210},
		{"zero years", 1000, 10, 0, 1000},
		{"negative years", 1000, 10, -3, 1000},
		{"depreciation", 1000, -50, 1, 500},
		{"zero value", 0, 7, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ProjectValue(tt.value, tt.rate, tt.years), 1e-6)
		})
	}
}

func TestProjectValueZeroRateIsIdentity(t *testing.T) {
	for _, value := range []float64{0, 1, 1234.56, 1e9} {
		for _, years := range []int{0, 1, 5, 40, 100} {
			assert.Equal(t, value, ProjectValue(value, 0, years), "value %v years %d", value, years)
		}
	}
}

func TestProjectValueSaturates(t *testing.T) {
	got := ProjectValue(1e12, 100, 10000)
	assert.False(t, math.IsInf(got, 0))
	assert.Equal(t, constants.MaxAmount, got)

	assert.Equal(t, constants.MaxAmount, ProjectValue(math.Inf(1), 0, 0))
	assert.Zero(t, ProjectValue(math.NaN(), 5, 3))
}

func TestAmortizedBalanceOverflow(t *testing.T) {
	// Interest outpaces the payment so the balance holds at its start.
	assert.Equal(t, 1000.0, AmortizedBalance(1000, 100, 10, 5000))
	// The payment covers the interest so the loan is long gone.
	assert.Zero(t, AmortizedBalance(1000, 100, 5000, 5000))
}

func TestAmortizedBalance(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		rate     float64
		payment  float64
		years    int
		expected float64
	}{
		{"no elapsed time", 100000, 5, 10000, 0, 100000},
		{"one year at five percent", 100000, 5, 10000, 1, 95000},
		{"two years at five percent", 100000, 5, 10000, 2, 89750},
		{"zero rate", 50000, 0, 5000, 3, 35000},
		{"zero rate paid off exactly", 50000, 0, 5000, 10, 0},
		{"zero rate overpaid floors at zero", 50000, 0, 5000, 15, 0},
		{"large payment floors at zero", 1000, 5, 5000, 1, 0},
		{"payment below interest never exceeds start", 1000, 10, 50, 5, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, AmortizedBalance(tt.value, tt.rate, tt.payment, tt.years), 1e-6)
		})
	}
}

func TestDebtBalanceMonotonicAndFloored(t *testing.T) {
	debts := []struct {
		value, rate, payment float64
	}{
		{250000, 4.5, 18000},
		{30000, 0, 4000},
		{12000, 19.9, 3000},
		{500, 3, 10000},
		{80000, 2, 1000},
	}

	for _, d := range debts {
		previous := d.value
		for years := 0; years <= 60; years++ {
			balance := DebtBalance(d.value, d.rate, d.payment, years)
			require.GreaterOrEqual(t, balance, 0.0)
			require.LessOrEqual(t, balance, previous, "debt %+v increased at year %d", d, years)
			previous = balance
		}
	}
}

func TestDebtBalanceStaysPaid(t *testing.T) {
	years, ok := PayoffYears(30000, 0, 4000, 50)
	require.True(t, ok)
	assert.Equal(t, 8, years)

	for y := years; y < years+10; y++ {
		assert.Zero(t, DebtBalance(30000, 0, 4000, y))
	}

	_, ok = PayoffYears(80000, 10, 1000, 50)
	assert.False(t, ok)
}

func TestHorizon(t *testing.T) {
	assert.Equal(t, 10, Horizon(intPtr(10), 30))
	assert.Equal(t, 20, Horizon(intPtr(35), 30))
	assert.Equal(t, 20, Horizon(intPtr(20), 30))
	assert.Equal(t, 35, Horizon(nil, 30))

	assert.Equal(t, 10, NeedsHorizon(intPtr(10), 30))
	assert.Equal(t, 30, NeedsHorizon(intPtr(45), 30))
	assert.Equal(t, 30, NeedsHorizon(nil, 30))
}

type fakeInstrument struct {
	name      string
	start     int
	liability bool
	values    map[int]float64
}

func (f fakeInstrument) GetName() string         { return f.name }
func (f fakeInstrument) GetStartYear() int       { return f.start }
func (f fakeInstrument) IsLiability() bool       { return f.liability }
func (f fakeInstrument) ValueAt(year int) float64 { return f.values[year] }

func TestSeriesGenerator(t *testing.T) {
	generator := NewSeriesGenerator(zap.NewNop())

	asset := fakeInstrument{
		name:   "Cottage",
		start:  2022,
		values: map[int]float64{2022: 100, 2023: 110, 2024: 121, 2025: 133.1},
	}
	loan := fakeInstrument{
		name:      "Loan",
		start:     2020,
		liability: true,
		values:    map[int]float64{2020: 50, 2021: 20, 2022: 0, 2023: 5},
	}

	rows := generator.Generate([]Instrument{asset, loan}, 2025)

	require.Len(t, rows, 6)
	assert.Equal(t, 2020, rows[0].Year)
	assert.Equal(t, []Entry{{Name: "Loan", Value: 50, Liability: true}}, rows[0].Entries)

	// The loan hit zero in 2022 so the 2023 value is ignored.
	assert.Equal(t, 2023, rows[3].Year)
	require.Len(t, rows[3].Entries, 1)
	assert.Equal(t, "Cottage", rows[3].Entries[0].Name)

	assert.InDelta(t, 121.0, rows[4].Net(), 1e-9)
	assert.InDelta(t, -20.0, rows[1].Net(), 1e-9)
}

func TestSeriesGeneratorOmitsEmptyYears(t *testing.T) {
	generator := NewSeriesGenerator(nil)

	gap := fakeInstrument{
		name:   "Seasonal",
		start:  2020,
		values: map[int]float64{2020: 10, 2022: 10},
	}

	rows := generator.Generate([]Instrument{gap}, 2023)
	require.Len(t, rows, 2)
	assert.Equal(t, 2020, rows[0].Year)
	assert.Equal(t, 2022, rows[1].Year)

	assert.Empty(t, generator.Generate(nil, 2030))
	assert.Empty(t, generator.Generate([]Instrument{gap}, 2019))
}

type flatInstrument struct {
	start int
}

func (f flatInstrument) GetName() string         { return "Flat" }
func (f flatInstrument) GetStartYear() int       { return f.start }
func (f flatInstrument) IsLiability() bool       { return false }
func (f flatInstrument) ValueAt(year int) float64 { return 1 }

func TestSeriesGeneratorCapsSpan(t *testing.T) {
	generator := NewSeriesGenerator(nil)

	rows := generator.Generate([]Instrument{flatInstrument{start: -1000000000}}, 2025)
	require.Len(t, rows, constants.MaxSeriesYears)
	assert.Equal(t, 2025-constants.MaxSeriesYears+1, rows[0].Year)
	assert.Equal(t, 2025, rows[len(rows)-1].Year)
}
