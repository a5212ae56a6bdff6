package dex

import (
	"testing"

	"gearbox/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetAmountOut(t *testing.T) {
	reserveIn := number.Decimal("10000")
	reserveOut := number.Decimal("50")

	out := GetAmountOut(number.Decimal("5000"), reserveIn, reserveOut)
	assert.True(t, out.IsPositive())
	assert.True(t, out.LessThan(reserveOut), "output never drains the reserve")

	// zero and bad inputs quote zero
	assert.True(t, GetAmountOut(decimal.Zero, reserveIn, reserveOut).IsZero())
	assert.True(t, GetAmountOut(number.Decimal("1"), decimal.Zero, reserveOut).IsZero())
}

func TestGetAmountIn(t *testing.T) {
	reserveIn := number.Decimal("10000")
	reserveOut := number.Decimal("50")

	in := GetAmountIn(number.Decimal("10"), reserveIn, reserveOut)
	assert.True(t, in.IsPositive())

	// asking for the whole reserve is unpayable
	assert.True(t, GetAmountIn(reserveOut, reserveIn, reserveOut).IsZero())
}

// exact-in then pricing the realized output as an exact-out request must
// round-trip within fee/rounding tolerance
func TestExactInExactOutCrossCheck(t *testing.T) {
	reserveIn := number.Decimal("10000")
	reserveOut := number.Decimal("50")
	amountIn := number.Decimal("5000")

	out := GetAmountOut(amountIn, reserveIn, reserveOut)
	in := GetAmountIn(out, reserveIn, reserveOut)

	drift := in.Sub(amountIn).Abs()
	tolerance := amountIn.Mul(number.Decimal("0.0001")).Add(number.Decimal("0.00000001"))
	assert.True(t, drift.LessThanOrEqual(tolerance), "in %s vs %s", in, amountIn)
	assert.True(t, in.GreaterThanOrEqual(out.Mul(reserveIn).Div(reserveOut).Truncate(8).Sub(number.Decimal("1"))), "exact-out input covers spot value less rounding")
}

// exact-out for 99% of a quoted full swap consumes no more than the quoted
// input and lands within 2 units of the target
func TestExactOutNearQuote(t *testing.T) {
	reserveIn := number.Decimal("10000")
	reserveOut := number.Decimal("50")
	amountIn := number.Decimal("5000")

	quotedOut := GetAmountOut(amountIn, reserveIn, reserveOut)
	target := quotedOut.Mul(number.Decimal("0.99")).Truncate(8)

	in := GetAmountIn(target, reserveIn, reserveOut)
	assert.True(t, in.LessThanOrEqual(amountIn), "99%% of the output must cost no more than the full quote")

	realized := GetAmountOut(in, reserveIn, reserveOut)
	shortfall := target.Sub(realized)
	assert.True(t, shortfall.LessThanOrEqual(number.Decimal("2")), "shortfall %s", shortfall)
	assert.True(t, shortfall.GreaterThanOrEqual(number.Decimal("-2")))
}
