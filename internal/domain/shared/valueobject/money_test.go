package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney_MinorUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"123.45", 12345},
		{"0.995", 100},
		{"12.345", 1235},
		{"0", 0},
		{"-1.5", -150},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, NewINR(decimal.RequireFromString(tt.amount)).MinorUnits())
		})
	}
}

func TestMoney_NonNegativeMinorUnits(t *testing.T) {
	assert.Equal(t, int64(0), NewINR(decimal.NewFromInt(-10)).NonNegativeMinorUnits())
	assert.Equal(t, int64(1000), NewINR(decimal.NewFromInt(10)).NonNegativeMinorUnits())
}

func TestMoney_Formatting(t *testing.T) {
	m := NewINR(decimal.RequireFromString("499"))
	assert.Equal(t, INR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(499)))
	assert.Equal(t, "INR 499.00", m.String())
	assert.Equal(t, "inr", m.Currency().Lower())
}
