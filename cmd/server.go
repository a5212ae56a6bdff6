package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gearbox/handler/hc"
	"gearbox/handler/rest"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run gearbox api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()

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

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			mux.Mount("/hc", hc.Handle(system.Version))
		}

		{
			mux.Mount("/api", rest.Handle(rest.Deps{
				DB:               database,
				System:           system,
				PoolStore:        poolStore,
				AccountStore:     accountStore,
				BalanceStore:     balanceStore,
				FilterStore:      filterStore,
				TransactionStore: transactionStore,
				PoolService:      poolService,
				FilterService:    filterService,
				DexService:       dexService,
				Managers:         managers,
			}))
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		err := server.ListenAndServe()
		if err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
