package cmd

import (
	"gearbox/worker"
	"gearbox/worker/interest"
	"gearbox/worker/liquidator"
	"gearbox/worker/pricesync"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "gearbox job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		poolStore := providePoolStore(database)
		accountStore := provideAccountStore(database)
		balanceStore := provideBalanceStore(database)
		filterStore := provideFilterStore(database)
		priceStore := providePriceStore(database)
		pairStore := providePairStore(database)
		transactionStore := provideTransactionStore(database)

		blockService := provideBlockService()
		priceService := providePriceService(priceStore, blockService)
		poolService := providePoolService(poolStore, balanceStore, blockService)
		filterService := provideFilterService(filterStore, balanceStore, priceService)
		dexService := provideDexService(pairStore)
		adapters := provideAdapterRegistry(ctx, filterStore, dexService, filterService, balanceStore)
		managers := provideManagers(ctx, poolStore, accountStore, balanceStore, transactionStore, poolService, filterService, priceService, adapters)

		workers := []worker.Worker{
			interest.New(provideConfig(), database, poolStore, poolService),
			pricesync.New(provideConfig(), database, propertyStore, priceStore, blockService, priceService),
			liquidator.New(provideConfig(), database, propertyStore, poolStore, accountStore, filterService, blockService, managers),
		}

		g, ctx := errgroup.WithContext(ctx)
		for _, w := range workers {
			w := w
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Infoln("workers exit")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
