package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Cents", 0.5, "$0.50"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 1250000, "$1,250,000.00"},
		{"Negative", -1234.56, "-$1,234.56"},
		{"Rounds half up", 10.005, "$10.01"},
		{"Float noise", 0.1 + 0.2, "$0.30"},
		{"Infinity saturates", math.Inf(1), "$1,000,000,000,000,000.00"},
		{"Negative infinity saturates", math.Inf(-1), "-$1,000,000,000,000,000.00"},
		{"NaN", math.NaN(), "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Currency(tt.amount))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "12.50%", Percent(12.5))
	assert.Equal(t, "0.00%", Percent(0))
}
