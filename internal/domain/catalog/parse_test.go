package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("a, b", "", " c "))
	assert.Empty(t, SplitList())
}

func TestParseSizes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"json array", `["S"," M ",""]`, []string{"S", "M"}},
		{"comma list", "S, M,L", []string{"S", "M", "L"}},
		{"single", "Free", []string{"Free"}},
		{"empty", "  ", []string{}},
		{"broken json falls back", `["S"`, []string{`["S"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSizes(tt.raw))
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", " on "} {
		assert.True(t, ParseBool(v), v)
	}
	for _, v := range []string{"", "false", "0", "nope"} {
		assert.False(t, ParseBool(v), v)
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("1"))
	assert.False(t, ToBool("yes"))
	assert.False(t, ToBool("TRUE"))
}

func TestParsePrice(t *testing.T) {
	assert.True(t, ParsePrice(" 12.50 ").Equal(decimal.RequireFromString("12.5")))
	assert.True(t, ParsePrice("abc").IsZero())
}
