package creditmanager

import (
	"context"
	"testing"
	"time"

	"gearbox/core"
	"gearbox/internal/gearbox"
	"gearbox/pkg/number"
	"gearbox/service/adapter"
	"gearbox/service/creditfilter"
	"gearbox/service/dex"
	poolservice "gearbox/service/pool"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	assetA    = "asset-a"
	assetB    = "asset-b"
	ammTarget = "amm-router"
	adapterID = "amm-v1"
	owner     = "user-1"
)

type rig struct {
	pools    *fakePoolStore
	accounts *fakeAccountStore
	balances *fakeBalanceStore
	filters  *fakeFilterStore
	pairs    *fakePairStore
	prices   *fakePriceService
	blocks   *fakeBlockService

	dexService core.IDexService
	manager    core.ICreditManagerService
}

func newRig(t *testing.T) *rig {
	r := &rig{
		pools:    newFakePoolStore(),
		accounts: newFakeAccountStore(),
		balances: newFakeBalanceStore(),
		filters:  newFakeFilterStore(),
		pairs:    newFakePairStore(),
		prices:   newFakePriceService(),
		blocks:   &fakeBlockService{},
	}

	ctx := context.Background()

	require.NoError(t, r.pools.Save(ctx, nil, &core.Pool{
		AssetID:              assetA,
		Symbol:               "A",
		TotalLiquidity:       number.Decimal("10000"),
		AvailableLiquidity:   number.Decimal("10000"),
		BorrowIndex:          decimal.New(1, 0),
		BaseRate:             number.Decimal("0.025"),
		Multiplier:           number.Decimal("0.2"),
		JumpMultiplier:       number.Decimal("2"),
		Kink:                 number.Decimal("0.8"),
		MaxLeverageFactor:    4 * gearbox.LeverageDecimals,
		LiquidationIncentive: number.Decimal("0.05"),
	}))

	require.NoError(t, r.pairs.Save(ctx, nil, &core.Pair{
		BaseAssetID:  assetA,
		QuoteAssetID: assetB,
		BaseReserve:  number.Decimal("10000"),
		QuoteReserve: number.Decimal("50"),
	}))

	require.NoError(t, r.filters.SaveContract(ctx, nil, &core.AllowedContract{TargetID: ammTarget, AdapterID: adapterID}))
	require.NoError(t, r.filters.SaveToken(ctx, nil, &core.AllowedToken{AssetID: assetA}))
	require.NoError(t, r.filters.SaveToken(ctx, nil, &core.AllowedToken{AssetID: assetB}))

	r.prices.prices[assetA] = number.Decimal("1")
	r.prices.prices[assetB] = number.Decimal("400")

	r.balances.set(owner, assetA, number.Decimal("1000"))

	poolService := poolservice.New(r.pools, r.balances, r.blocks)
	filterService := creditfilter.New(r.filters, r.balances, r.prices)
	r.dexService = dex.New(r.pairs)

	registry := core.AdapterRegistry{
		adapterID: adapter.NewAmm(ammTarget, r.dexService, filterService, r.balances),
	}

	r.manager = New(assetA, r.pools, r.accounts, r.balances, &fakeTransactionStore{}, poolService, filterService, r.prices, registry)

	return r
}

func (r *rig) open(t *testing.T, amount string, leverage int64) *core.CreditAccount {
	account, err := r.manager.OpenCreditAccount(context.Background(), nil, owner, number.Decimal(amount), leverage, "")
	require.NoError(t, err)
	return account
}

func (r *rig) swapOrder(path []string, amountIn, amountOutMin string) *core.SwapOrder {
	return &core.SwapOrder{
		Side:         core.SwapSideExactIn,
		AmountIn:     number.Decimal(amountIn),
		AmountOutMin: number.Decimal(amountOutMin),
		Path:         path,
		Deadline:     time.Now().Add(time.Minute),
	}
}

func TestOpenCreditAccount(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	account := r.open(t, "1000", 4*gearbox.LeverageDecimals)

	// 1000 * (4*LD + LD) / LD = 5000 on the account, within 1 unit
	held := r.balances.get(account.Trace, assetA)
	drift := held.Sub(number.Decimal("5000")).Abs()
	assert.True(t, drift.LessThanOrEqual(decimal.New(1, -gearbox.AmountPrecision)), "held %s", held)

	pool, err := r.pools.Find(ctx, assetA)
	require.NoError(t, err)
	assert.True(t, pool.AvailableLiquidity.Equal(number.Decimal("6000")))
	assert.True(t, pool.TotalBorrowed.Equal(number.Decimal("4000")))
	assert.True(t, pool.TotalLiquidity.Equal(pool.AvailableLiquidity.Add(pool.TotalBorrowed)))

	// the owner wallet paid the collateral
	assert.True(t, r.balances.get(owner, assetA).IsZero())

	// one active account per owner
	_, err = r.manager.OpenCreditAccount(ctx, nil, owner, number.Decimal("1"), gearbox.LeverageDecimals, "")
	assert.Equal(t, core.ErrAccountAlreadyOpen, err)
}

func TestOpenCreditAccountBounds(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	_, err := r.manager.OpenCreditAccount(ctx, nil, owner, number.Decimal("1000"), 5*gearbox.LeverageDecimals, "")
	assert.Equal(t, core.ErrExcessiveLeverage, err)

	_, err = r.manager.OpenCreditAccount(ctx, nil, owner, number.Decimal("1000"), 0, "")
	assert.Equal(t, core.ErrExcessiveLeverage, err)

	_, err = r.manager.OpenCreditAccount(ctx, nil, owner, decimal.Zero, gearbox.LeverageDecimals, "")
	assert.Equal(t, core.ErrInvalidAmount, err)

	// pool of 10,000 cannot fund a 12,000 borrow
	r.balances.set(owner, assetA, number.Decimal("3000"))
	_, err = r.manager.OpenCreditAccount(ctx, nil, owner, number.Decimal("3000"), 4*gearbox.LeverageDecimals, "")
	assert.Equal(t, core.ErrInsufficientLiquidity, err)

	_, err = r.manager.GetCreditAccountOrRevert(ctx, owner)
	assert.Equal(t, core.ErrAccountNotFound, err)
}

func TestExecuteOrderSwap(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	account := r.open(t, "1000", 4*gearbox.LeverageDecimals)

	quote, err := r.dexService.GetAmountsOut(ctx, number.Decimal("5000"), []string{assetA, assetB})
	require.NoError(t, err)
	quoted := quote[len(quote)-1]

	order := r.swapOrder([]string{assetA, assetB}, "5000", quoted.String())
	result, err := r.manager.ExecuteOrder(ctx, nil, owner, ammTarget, order)
	require.NoError(t, err)
	assert.True(t, result.AmountOut.Equal(quoted))

	// at most 1 unit of residual A, at least the quoted B
	assert.True(t, r.balances.get(account.Trace, assetA).LessThanOrEqual(number.Decimal("1")))
	assert.True(t, r.balances.get(account.Trace, assetB).GreaterThanOrEqual(quoted))
}

func TestExecuteOrderRejections(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	account := r.open(t, "1000", 4*gearbox.LeverageDecimals)
	before := r.balances.get(account.Trace, assetA)

	// unauthorized target, regardless of otherwise-valid amounts
	_, err := r.manager.ExecuteOrder(ctx, nil, owner, "unknown-router", r.swapOrder([]string{assetA, assetB}, "5000", "0"))
	assert.Equal(t, core.ErrUnauthorizedTarget, err)

	// expired deadline
	order := r.swapOrder([]string{assetA, assetB}, "5000", "0")
	order.Deadline = time.Now().Add(-time.Second)
	_, err = r.manager.ExecuteOrder(ctx, nil, owner, ammTarget, order)
	assert.Equal(t, core.ErrDeadlineExpired, err)

	// slippage floor above the achievable output
	_, err = r.manager.ExecuteOrder(ctx, nil, owner, ammTarget, r.swapOrder([]string{assetA, assetB}, "5000", "50"))
	assert.Equal(t, core.ErrSlippageExceeded, err)

	// disallowed token in the path
	_, err = r.manager.ExecuteOrder(ctx, nil, owner, ammTarget, r.swapOrder([]string{assetA, "asset-x"}, "5000", "0"))
	assert.Equal(t, core.ErrTokenNotAllowed, err)

	// unrecognized side never falls through to a swap
	order = r.swapOrder([]string{assetA, assetB}, "5000", "0")
	order.Side = "EXACT_BOTH"
	_, err = r.manager.ExecuteOrder(ctx, nil, owner, ammTarget, order)
	assert.Equal(t, core.ErrInvalidAmount, err)

	// every rejection leaves the account untouched
	assert.True(t, r.balances.get(account.Trace, assetA).Equal(before))
	assert.True(t, r.balances.get(account.Trace, assetB).IsZero())
}

func TestExecuteOrderInsolvency(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	// B priced so low the post-trade value cannot cover the debt
	r.prices.prices[assetB] = number.Decimal("150")

	r.open(t, "1000", 4*gearbox.LeverageDecimals)

	_, err := r.manager.ExecuteOrder(ctx, nil, owner, ammTarget, r.swapOrder([]string{assetA, assetB}, "5000", "0"))
	assert.Equal(t, core.ErrInsufficientCollateral, err)
}

func TestExecuteOrderUnpricedAsset(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	delete(r.prices.prices, assetB)

	r.open(t, "1000", 4*gearbox.LeverageDecimals)

	_, err := r.manager.ExecuteOrder(ctx, nil, owner, ammTarget, r.swapOrder([]string{assetA, assetB}, "5000", "0"))
	assert.Equal(t, core.ErrUnpricedAsset, err)
}

func TestRepayCreditAccount(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	account := r.open(t, "1000", 4*gearbox.LeverageDecimals)

	require.NoError(t, r.manager.RepayCreditAccount(ctx, nil, owner, owner))

	// debt zeroed, pool made whole, residual collateral back to the owner
	pool, err := r.pools.Find(ctx, assetA)
	require.NoError(t, err)
	assert.True(t, pool.TotalBorrowed.IsZero())
	assert.True(t, pool.AvailableLiquidity.Equal(number.Decimal("10000")))
	assert.True(t, r.balances.get(owner, assetA).Equal(number.Decimal("1000")))
	assert.True(t, r.balances.get(account.Trace, assetA).LessThanOrEqual(number.Decimal("1")))

	stored, err := r.accounts.FindByTrace(ctx, account.Trace)
	require.NoError(t, err)
	assert.Equal(t, core.CreditAccountStateRepaid, stored.State)

	// open -> repay -> open cycles
	next := r.open(t, "1000", 4*gearbox.LeverageDecimals)
	assert.NotEqual(t, account.Trace, next.Trace)
}

func TestRepayCollectsInterest(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	r.open(t, "1000", 4*gearbox.LeverageDecimals)

	// a year of blocks elapses before the repay
	r.blocks.block = 2102400

	require.NoError(t, r.manager.RepayCreditAccount(ctx, nil, owner, owner))

	pool, err := r.pools.Find(ctx, assetA)
	require.NoError(t, err)
	assert.True(t, pool.TotalBorrowed.IsZero())
	assert.True(t, pool.BorrowIndex.GreaterThan(decimal.New(1, 0)), "index advanced")
	assert.True(t, pool.TotalLiquidity.GreaterThan(number.Decimal("10000")), "interest accrued to the pool")

	// the owner got back less than the interest-free residual
	assert.True(t, r.balances.get(owner, assetA).LessThan(number.Decimal("1000")))
}

func TestRepayInsufficient(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	r.open(t, "1000", 4*gearbox.LeverageDecimals)

	// swap everything away so the pool asset cannot be covered
	_, err := r.manager.ExecuteOrder(ctx, nil, owner, ammTarget, r.swapOrder([]string{assetA, assetB}, "5000", "0"))
	require.NoError(t, err)

	err = r.manager.RepayCreditAccount(ctx, nil, owner, owner)
	assert.Equal(t, core.ErrInsufficientRepayment, err)
}

func TestLiquidateCreditAccount(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	account := r.open(t, "1000", 4*gearbox.LeverageDecimals)

	// still healthy, not liquidatable
	r.balances.set("liquidator", assetA, number.Decimal("5000"))
	err := r.manager.LiquidateCreditAccount(ctx, nil, "liquidator", owner, "liquidator")
	assert.Equal(t, core.ErrAccountNotLiquidatable, err)

	// trade into B, then the B price collapses
	_, err = r.manager.ExecuteOrder(ctx, nil, owner, ammTarget, r.swapOrder([]string{assetA, assetB}, "5000", "0"))
	require.NoError(t, err)
	r.prices.prices[assetB] = number.Decimal("150")

	require.NoError(t, r.manager.LiquidateCreditAccount(ctx, nil, "liquidator", owner, "liquidator"))

	stored, err := r.accounts.FindByTrace(ctx, account.Trace)
	require.NoError(t, err)
	assert.Equal(t, core.CreditAccountStateLiquidated, stored.State)

	// pool repaid in full
	pool, err := r.pools.Find(ctx, assetA)
	require.NoError(t, err)
	assert.True(t, pool.TotalBorrowed.IsZero())

	// the liquidator paid the debt and seized the account holdings
	assert.True(t, r.balances.get("liquidator", assetA).LessThan(number.Decimal("5000")))
	assert.True(t, r.balances.get("liquidator", assetB).IsPositive())
	assert.True(t, r.balances.get(account.Trace, assetB).IsZero())

	// owner slot released
	_, err = r.manager.GetCreditAccountOrRevert(ctx, owner)
	assert.Equal(t, core.ErrAccountNotFound, err)
}

func TestAddCollateral(t *testing.T) {
	r := newRig(t)
	ctx := context.Background()

	account := r.open(t, "1000", 4*gearbox.LeverageDecimals)

	r.balances.set(owner, assetB, number.Decimal("3"))
	require.NoError(t, r.manager.AddCollateral(ctx, nil, owner, assetB, number.Decimal("3")))
	assert.True(t, r.balances.get(account.Trace, assetB).Equal(number.Decimal("3")))

	// tokens off the allow list stay off the balance sheet
	r.balances.set(owner, "asset-x", number.Decimal("1"))
	err := r.manager.AddCollateral(ctx, nil, owner, "asset-x", number.Decimal("1"))
	assert.Equal(t, core.ErrTokenNotAllowed, err)
}
