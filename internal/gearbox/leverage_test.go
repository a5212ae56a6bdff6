package gearbox

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowedAmount(t *testing.T) {
	// 1,000 at 4x leverage borrows 4,000 from the pool
	borrowed := BorrowedAmount(decimal.NewFromInt(1000), 4*LeverageDecimals)
	assert.True(t, borrowed.Equal(decimal.NewFromInt(4000)))

	// division truncates toward zero
	borrowed = BorrowedAmount(decimal.NewFromFloat(0.00000033), 15000)
	assert.True(t, borrowed.LessThanOrEqual(decimal.NewFromFloat(0.00000050)))
	assert.True(t, borrowed.GreaterThanOrEqual(decimal.Zero))
}

func TestTotalFunds(t *testing.T) {
	one := decimal.New(1, -AmountPrecision)

	cases := []struct {
		collateral string
		leverage   int64
		expect     string
	}{
		{"1000", 4 * LeverageDecimals, "5000"},
		{"1000", 15000, "2500"},
		{"0.5", 25000, "1.75"},
		{"333.33333333", 30000, "1333.33333332"},
	}

	for _, c := range cases {
		collateral, err := decimal.NewFromString(c.collateral)
		require.NoError(t, err)
		expect, err := decimal.NewFromString(c.expect)
		require.NoError(t, err)

		total := TotalFunds(collateral, c.leverage)
		drift := total.Sub(expect).Abs()
		assert.True(t, drift.LessThanOrEqual(one), "total %s expect %s", total, expect)
	}
}

func TestHealthFactor(t *testing.T) {
	hf := HealthFactor(decimal.NewFromInt(5000), decimal.NewFromInt(4000))
	assert.True(t, hf.Equal(decimal.NewFromFloat(1.25)))

	hf = HealthFactor(decimal.NewFromInt(3999), decimal.NewFromInt(4000))
	assert.True(t, hf.LessThan(decimal.New(1, 0)))

	// no debt
	hf = HealthFactor(decimal.NewFromInt(100), decimal.Zero)
	assert.True(t, hf.Equal(MaxHealthFactor))
}

func TestValidLeverage(t *testing.T) {
	assert.True(t, ValidLeverage(40000, 40000))
	assert.True(t, ValidLeverage(1, 40000))
	assert.False(t, ValidLeverage(0, 40000))
	assert.False(t, ValidLeverage(-10000, 40000))
	assert.False(t, ValidLeverage(40001, 40000))
}
