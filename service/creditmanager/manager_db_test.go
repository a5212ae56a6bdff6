package creditmanager

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gearbox/core"
	"gearbox/internal/gearbox"
	"gearbox/pkg/number"
	"gearbox/service/adapter"
	"gearbox/service/creditfilter"
	"gearbox/service/dex"
	poolservice "gearbox/service/pool"
	"gearbox/store/allowlist"
	"gearbox/store/balance"
	"gearbox/store/credit"
	"gearbox/store/pair"
	"gearbox/store/pool"
	"gearbox/store/transaction"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dbRig runs the manager against the real gorm stores, the same wiring the
// server uses. The in-memory fakes read their own writes; the gorm stores
// only do when reads go through the transaction, which is what these tests
// pin down.
type dbRig struct {
	db       *db.DB
	pools    core.IPoolStore
	accounts core.ICreditAccountStore
	balances core.IBalanceStore
	prices   *fakePriceService
	manager  core.ICreditManagerService
}

func newDBRig(t *testing.T) *dbRig {
	database := db.MustOpen(db.Config{
		Dialect: "sqlite3",
		Host:    filepath.Join(t.TempDir(), "gearbox.db"),
	})
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.Migrate(database))

	r := &dbRig{
		db:       database,
		pools:    pool.New(database),
		accounts: credit.New(database),
		balances: balance.New(database),
		prices:   newFakePriceService(),
	}

	filterStore := allowlist.New(database)
	pairStore := pair.New(database)
	transactionStore := transaction.New(database)
	blocks := &fakeBlockService{}

	ctx := context.Background()
	require.NoError(t, database.Tx(func(tx *db.DB) error {
		if err := r.pools.Save(ctx, tx, &core.Pool{
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
		}); err != nil {
			return err
		}

		if err := pairStore.Save(ctx, tx, &core.Pair{
			BaseAssetID:  assetA,
			QuoteAssetID: assetB,
			BaseReserve:  number.Decimal("10000"),
			QuoteReserve: number.Decimal("50"),
		}); err != nil {
			return err
		}

		if err := filterStore.SaveContract(ctx, tx, &core.AllowedContract{TargetID: ammTarget, AdapterID: adapterID}); err != nil {
			return err
		}
		if err := filterStore.SaveToken(ctx, tx, &core.AllowedToken{AssetID: assetA}); err != nil {
			return err
		}
		if err := filterStore.SaveToken(ctx, tx, &core.AllowedToken{AssetID: assetB}); err != nil {
			return err
		}

		return r.balances.Add(ctx, tx, owner, assetA, number.Decimal("1000"))
	}))

	r.prices.prices[assetA] = number.Decimal("1")
	r.prices.prices[assetB] = number.Decimal("400")

	poolService := poolservice.New(r.pools, r.balances, blocks)
	filterService := creditfilter.New(filterStore, r.balances, r.prices)
	dexService := dex.New(pairStore)

	registry := core.AdapterRegistry{
		adapterID: adapter.NewAmm(ammTarget, dexService, filterService, r.balances),
	}

	r.manager = New(assetA, r.pools, r.accounts, r.balances, transactionStore, poolService, filterService, r.prices, registry)

	return r
}

func (r *dbRig) held(t *testing.T, holder, asset string) decimal.Decimal {
	b, err := r.balances.Find(context.Background(), r.db, holder, asset)
	require.NoError(t, err)
	return b.Amount
}

// the post-open solvency check must see the collateral and borrowed funds
// credited earlier in the same transaction
func TestOpenCreditAccountOnDatabase(t *testing.T) {
	r := newDBRig(t)
	ctx := context.Background()

	var account *core.CreditAccount
	err := r.db.Tx(func(tx *db.DB) error {
		var err error
		account, err = r.manager.OpenCreditAccount(ctx, tx, owner, number.Decimal("1000"), 4*gearbox.LeverageDecimals, "")
		return err
	})
	require.NoError(t, err)

	assert.True(t, r.held(t, account.Trace, assetA).Equal(number.Decimal("5000")))
	assert.True(t, r.held(t, owner, assetA).IsZero())

	p, err := r.pools.Find(ctx, assetA)
	require.NoError(t, err)
	assert.True(t, p.TotalBorrowed.Equal(number.Decimal("4000")))
	assert.True(t, p.AvailableLiquidity.Equal(number.Decimal("6000")))
}

// the post-trade solvency check must see the in-transaction swap settlement;
// an insolvent outcome rolls the whole transaction back
func TestExecuteOrderInsolvencyOnDatabase(t *testing.T) {
	r := newDBRig(t)
	ctx := context.Background()

	var account *core.CreditAccount
	err := r.db.Tx(func(tx *db.DB) error {
		var err error
		account, err = r.manager.OpenCreditAccount(ctx, tx, owner, number.Decimal("1000"), 4*gearbox.LeverageDecimals, "")
		return err
	})
	require.NoError(t, err)

	// B priced so low the swapped-out position cannot cover the debt
	r.prices.prices[assetB] = number.Decimal("150")

	order := &core.SwapOrder{
		Side:     core.SwapSideExactIn,
		AmountIn: number.Decimal("5000"),
		Path:     []string{assetA, assetB},
		Deadline: time.Now().Add(time.Minute),
	}
	err = r.db.Tx(func(tx *db.DB) error {
		_, err := r.manager.ExecuteOrder(ctx, tx, owner, ammTarget, order)
		return err
	})
	assert.Equal(t, core.ErrInsufficientCollateral, err)

	// rolled back: funds still on the account, nothing swapped
	assert.True(t, r.held(t, account.Trace, assetA).Equal(number.Decimal("5000")))
	assert.True(t, r.held(t, account.Trace, assetB).IsZero())
}
