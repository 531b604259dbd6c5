package money

import "github.com/shopspring/decimal"

// Cents is a monetary amount in integer minor units. All cart math happens
// in cents; decimal conversion is reserved for percentages and display.
type Cents int64

// Decimal returns the amount in major units (e.g. 1250 -> 12.50).
func (c Cents) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(c)).Shift(-2)
}

// String formats the amount with two fractional digits.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Mul scales the amount by an integer quantity.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

// Percent applies a percentage (0-100) to the amount, rounding half away
// from zero to the nearest cent.
func (c Cents) Percent(pct float64) Cents {
	if pct == 0 || c == 0 {
		return 0
	}
	amount := decimal.NewFromInt(int64(c)).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return Cents(amount.IntPart())
}
