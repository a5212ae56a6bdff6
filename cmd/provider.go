package cmd

import (
	"context"

	"gearbox/core"
	"gearbox/service/adapter"
	blockservice "gearbox/service/block"
	"gearbox/service/creditfilter"
	"gearbox/service/creditmanager"
	dexservice "gearbox/service/dex"
	oracle "gearbox/service/oracle"
	poolservice "gearbox/service/pool"
	"gearbox/store/allowlist"
	"gearbox/store/balance"
	"gearbox/store/credit"
	"gearbox/store/pair"
	"gearbox/store/pool"
	"gearbox/store/price"
	"gearbox/store/transaction"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/sirupsen/logrus"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func provideSystem() *core.System {
	return &core.System{
		Version: rootCmd.Version,
		Genesis: cfg.App.Genesis,
		Admins:  cfg.Admins,
	}
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePoolStore(db *db.DB) core.IPoolStore {
	return pool.New(db)
}

func provideAccountStore(db *db.DB) core.ICreditAccountStore {
	return credit.New(db)
}

func provideBalanceStore(db *db.DB) core.IBalanceStore {
	return balance.New(db)
}

func provideFilterStore(db *db.DB) core.ICreditFilterStore {
	return allowlist.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func providePairStore(db *db.DB) core.IPairStore {
	return pair.New(db)
}

func provideTransactionStore(db *db.DB) core.ITransactionStore {
	return transaction.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.IBlockService {
	return blockservice.New(provideConfig())
}

func providePriceService(priceStore core.IPriceStore, blockService core.IBlockService) core.IPriceOracleService {
	return oracle.New(provideConfig(), priceStore, blockService)
}

func providePoolService(poolStore core.IPoolStore, balanceStore core.IBalanceStore, blockService core.IBlockService) core.IPoolService {
	return poolservice.New(poolStore, balanceStore, blockService)
}

func provideFilterService(filterStore core.ICreditFilterStore, balanceStore core.IBalanceStore, priceService core.IPriceOracleService) core.ICreditFilterService {
	return creditfilter.New(filterStore, balanceStore, priceService)
}

func provideDexService(pairStore core.IPairStore) core.IDexService {
	return dexservice.New(pairStore)
}

// adapter per allow-listed contract, keyed by adapter id
func provideAdapterRegistry(ctx context.Context,
	filterStore core.ICreditFilterStore,
	dexService core.IDexService,
	filterService core.ICreditFilterService,
	balanceStore core.IBalanceStore) core.AdapterRegistry {
	registry := core.AdapterRegistry{}

	contracts, err := filterStore.AllContracts(ctx)
	if err != nil {
		logrus.WithError(err).Panicln("load allowed contracts")
	}

	for _, contract := range contracts {
		registry[contract.AdapterID] = adapter.NewAmm(contract.TargetID, dexService, filterService, balanceStore)
	}

	return registry
}

// manager per pool, keyed by the pool asset
func provideManagers(ctx context.Context,
	poolStore core.IPoolStore,
	accountStore core.ICreditAccountStore,
	balanceStore core.IBalanceStore,
	transactionStore core.ITransactionStore,
	poolService core.IPoolService,
	filterService core.ICreditFilterService,
	priceService core.IPriceOracleService,
	adapters core.AdapterRegistry) map[string]core.ICreditManagerService {
	managers := make(map[string]core.ICreditManagerService)

	pools, err := poolStore.All(ctx)
	if err != nil {
		logrus.WithError(err).Panicln("load pools")
	}

	for _, p := range pools {
		managers[p.AssetID] = creditmanager.New(
			p.AssetID,
			poolStore,
			accountStore,
			balanceStore,
			transactionStore,
			poolService,
			filterService,
			priceService,
			adapters,
		)
	}

	return managers
}
