package gearbox

import (
	"github.com/shopspring/decimal"
)

var (
	// LeverageDecimals fixed-point base of the leverage factor, 10000 = 1x
	LeverageDecimals int64 = 10000

	leverageDecimals = decimal.NewFromInt(LeverageDecimals)

	// MaxHealthFactor reported for an account with no debt
	MaxHealthFactor = decimal.New(1, 6)
)

// AmountPrecision token amounts are truncated to 8 decimals
const AmountPrecision int32 = 8

// BorrowedAmount pool principal for a collateral amount at a leverage factor,
// division truncates toward zero
func BorrowedAmount(collateral decimal.Decimal, leverageFactor int64) decimal.Decimal {
	return collateral.Mul(decimal.NewFromInt(leverageFactor)).Div(leverageDecimals).Truncate(AmountPrecision)
}

// TotalFunds collateral plus borrowed principal landing on a fresh account
func TotalFunds(collateral decimal.Decimal, leverageFactor int64) decimal.Decimal {
	return collateral.Add(BorrowedAmount(collateral, leverageFactor))
}

// HealthFactor totalValue / debt; accounts with no debt report MaxHealthFactor
func HealthFactor(totalValue, debt decimal.Decimal) decimal.Decimal {
	if !debt.IsPositive() {
		return MaxHealthFactor
	}

	return totalValue.Div(debt).Truncate(MaxPricision)
}

// ValidLeverage leverage factor must be positive and within the pool bound
func ValidLeverage(leverageFactor, maxLeverageFactor int64) bool {
	return leverageFactor > 0 && leverageFactor <= maxLeverageFactor
}
