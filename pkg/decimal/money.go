package decimal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Money is a currency amount carried at full decimal precision. Rounding is
// left to the presentation layer.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// ToLocal converts a native-currency amount using rate (local units per
// native unit).
func (m Money) ToLocal(rate decimal.Decimal) Money {
	return Money{m.Decimal.Mul(rate)}
}

// ToNative converts a local-currency amount back to native currency.
func (m Money) ToNative(rate decimal.Decimal) Money {
	return Money{m.Decimal.Div(rate)}
}

// PercentOf returns pct percent of the amount (pct=4 yields 4%).
func (m Money) PercentOf(pct decimal.Decimal) Money {
	return Money{m.Decimal.Mul(pct).Div(hundred)}
}

// GrossUp returns the pre-tax amount that nets m after a flat tax of
// taxRatePercent. The rate must lie in [0, 100).
func (m Money) GrossUp(taxRatePercent decimal.Decimal) (Money, error) {
	if taxRatePercent.IsNegative() || taxRatePercent.GreaterThanOrEqual(hundred) {
		return Money{}, fmt.Errorf("tax rate must be in [0, 100), got %s", taxRatePercent)
	}
	if taxRatePercent.IsZero() {
		return m, nil
	}
	keep := decimal.NewFromInt(1).Sub(taxRatePercent.Div(hundred))
	return Money{m.Decimal.Div(keep)}, nil
}

// Units returns how many units priced at unitPrice the amount buys.
func (m Money) Units(unitPrice decimal.Decimal) decimal.Decimal {
	return m.Decimal.Div(unitPrice)
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// String renders the amount with no fractional digits, the display
// precision for local-currency amounts.
func (m Money) String() string {
	return m.Decimal.StringFixed(0)
}
