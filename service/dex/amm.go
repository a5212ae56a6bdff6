package dex

import (
	"gearbox/internal/gearbox"
	"gearbox/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	feeNumerator   = decimal.NewFromInt(997)
	feeDenominator = decimal.NewFromInt(1000)
)

// GetAmountOut constant-product output for a fixed input, 0.3% fee
// out = in * 997 * Rout / (Rin * 1000 + in * 997)
func GetAmountOut(amountIn, reserveIn, reserveOut decimal.Decimal) decimal.Decimal {
	if !amountIn.IsPositive() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return decimal.Zero
	}

	inWithFee := amountIn.Mul(feeNumerator)
	numerator := inWithFee.Mul(reserveOut)
	denominator := reserveIn.Mul(feeDenominator).Add(inWithFee)

	return numerator.Div(denominator).Truncate(gearbox.AmountPrecision)
}

// GetAmountIn constant-product input required for a fixed output, rounded up
// in = Rin * 1000 * out / ((Rout - out) * 997)
func GetAmountIn(amountOut, reserveIn, reserveOut decimal.Decimal) decimal.Decimal {
	if !amountOut.IsPositive() || !reserveIn.IsPositive() || amountOut.GreaterThanOrEqual(reserveOut) {
		return decimal.Zero
	}

	numerator := reserveIn.Mul(feeDenominator).Mul(amountOut)
	denominator := reserveOut.Sub(amountOut).Mul(feeNumerator)

	return number.Ceil(numerator.Div(denominator), gearbox.AmountPrecision)
}
