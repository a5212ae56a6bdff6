package gearbox

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerBlock seconds per block
	SecondsPerBlock int64 = 15
	// BlocksPerYear blocks per year
	BlocksPerYear = decimal.NewFromInt(2102400)
	// LiquidationIncentiveMin must be no less than this value
	LiquidationIncentiveMin = decimal.NewFromFloat(0.01)
	// LiquidationIncentiveMax must be no greater than this value
	LiquidationIncentiveMax = decimal.NewFromFloat(0.9)
	// MaxPricision max pricision
	MaxPricision int32 = 16
)

// UtilizationRate utilization rate
// utilization_rate = pool.total_borrowed/(pool.available_liquidity + pool.total_borrowed - pool.reserves)
func UtilizationRate(available, borrowed, reserves decimal.Decimal) decimal.Decimal {
	total := available.Add(borrowed).Sub(reserves)
	if total.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return borrowed.Div(total).Truncate(MaxPricision)
}

// GetBorrowRatePerBlock borrowRate per block
func GetBorrowRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink decimal.Decimal) decimal.Decimal {
	if kink.Equal(decimal.Zero) ||
		utilizationRate.LessThanOrEqual(kink) {
		return utilizationRate.Mul(GetMultiplierPerBlock(multiplier)).Add(GetBaseRatePerBlock(baseRate)).Truncate(MaxPricision)
	}

	normalRate := kink.Mul(GetMultiplierPerBlock(multiplier)).Add(GetBaseRatePerBlock(baseRate))
	excessUtilRate := utilizationRate.Sub(kink)
	return excessUtilRate.Mul(GetJumpMultiplierPerBlock(jumpMultiplier)).Add(normalRate).Truncate(MaxPricision)
}

// GetSupplyRatePerBlock supply rate per block
func GetSupplyRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRatePerBlock(utilizationRate, baseRate, multiplier, jumpMultiplier, kink)
	oneMinusReserveFactor := decimal.NewFromInt(1).Sub(reserveFactor)
	rateToPool := borrowRate.Mul(oneMinusReserveFactor)
	return utilizationRate.Mul(rateToPool).Truncate(MaxPricision)
}

// GetBaseRatePerBlock base rate per block
func GetBaseRatePerBlock(baseRate decimal.Decimal) decimal.Decimal {
	return baseRate.Div(BlocksPerYear).Truncate(MaxPricision)
}

// GetMultiplierPerBlock multiplier per block
func GetMultiplierPerBlock(multiplier decimal.Decimal) decimal.Decimal {
	return multiplier.Div(BlocksPerYear).Truncate(MaxPricision)
}

// GetJumpMultiplierPerBlock jump multiplier per block
func GetJumpMultiplierPerBlock(jumpMultiplier decimal.Decimal) decimal.Decimal {
	return jumpMultiplier.Div(BlocksPerYear).Truncate(MaxPricision)
}

// CompoundIndex advance the cumulative borrow index over blockDelta blocks,
// index never decreases
func CompoundIndex(index, borrowRatePerBlock decimal.Decimal, blockDelta int64) decimal.Decimal {
	if !index.IsPositive() {
		index = decimal.New(1, 0)
	}
	if blockDelta <= 0 {
		return index
	}

	timesBorrowRate := borrowRatePerBlock.Mul(decimal.NewFromInt(blockDelta))
	return index.Add(
		timesBorrowRate.Mul(index).
			Shift(MaxPricision).Ceil().Shift(-MaxPricision))
}

// BorrowBalance owed principal plus interest accrued since the index snapshot
// balance = principal * pool_index / snapshot_index, rounded up
func BorrowBalance(principal, poolIndex, snapshotIndex decimal.Decimal) decimal.Decimal {
	if !poolIndex.IsPositive() {
		poolIndex = decimal.New(1, 0)
	}
	if !snapshotIndex.IsPositive() {
		snapshotIndex = poolIndex
	}

	return principal.Mul(poolIndex).Div(snapshotIndex).
		Shift(MaxPricision).Ceil().Shift(-MaxPricision)
}
