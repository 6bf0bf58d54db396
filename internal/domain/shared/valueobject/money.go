package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code
type Currency string

// INR is the storefront's settlement currency
const INR Currency = "INR"

// Lower returns the code the way Stripe expects it ("inr")
func (c Currency) Lower() string {
	return strings.ToLower(string(c))
}

var paisePerRupee = decimal.NewFromInt(100)

// Money is an immutable amount in a currency
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewINR creates Money in rupees
func NewINR(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: INR}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// MinorUnits returns the amount in paise, rounded half away from zero
// (₹12.345 → 1235).
func (m Money) MinorUnits() int64 {
	return m.amount.Mul(paisePerRupee).Round(0).IntPart()
}

// NonNegativeMinorUnits is MinorUnits clamped at zero
func (m Money) NonNegativeMinorUnits() int64 {
	return max(m.MinorUnits(), 0)
}

// String renders e.g. "INR 499.00"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(2))
}
