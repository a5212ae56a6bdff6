package creditmanager

import (
	"context"

	"gearbox/core"
	"gearbox/pkg/locker"
)

// Manager owns the credit account lifecycle for one pool: open, adapter-routed
// trades, repay and liquidation. Every mutating entry point runs inside the
// caller's db transaction and under the account lock, so a failure at any step
// discards every effect of the call.
type Manager struct {
	assetID string

	poolStore        core.IPoolStore
	accountStore     core.ICreditAccountStore
	balanceStore     core.IBalanceStore
	transactionStore core.ITransactionStore
	poolService      core.IPoolService
	filterService    core.ICreditFilterService
	priceService     core.IPriceOracleService
	adapters         core.AdapterRegistry

	locks *locker.Locker
}

// New new credit manager for the pool of assetID
func New(
	assetID string,
	poolStore core.IPoolStore,
	accountStore core.ICreditAccountStore,
	balanceStore core.IBalanceStore,
	transactionStore core.ITransactionStore,
	poolService core.IPoolService,
	filterService core.ICreditFilterService,
	priceService core.IPriceOracleService,
	adapters core.AdapterRegistry,
) core.ICreditManagerService {
	return &Manager{
		assetID:          assetID,
		poolStore:        poolStore,
		accountStore:     accountStore,
		balanceStore:     balanceStore,
		transactionStore: transactionStore,
		poolService:      poolService,
		filterService:    filterService,
		priceService:     priceService,
		adapters:         adapters,
		locks:            locker.New(),
	}
}

// GetCreditAccountOrRevert the canonical existence check: the active account
// of owner or ErrAccountNotFound
func (m *Manager) GetCreditAccountOrRevert(ctx context.Context, owner string) (*core.CreditAccount, error) {
	account, err := m.accountStore.FindActiveByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	if account.AssetID != m.assetID {
		return nil, core.ErrAccountNotFound
	}

	return account, nil
}
