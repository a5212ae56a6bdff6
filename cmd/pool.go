package cmd

import (
	"strings"

	"gearbox/core"
	"gearbox/internal/gearbox"
	"gearbox/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "pool cmd group",
}

var createPoolCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"cp"},
	Short:   "create a liquidity pool",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		poolStore := providePoolStore(database)

		assetID, _ := cmd.Flags().GetString("asset")
		symbol, _ := cmd.Flags().GetString("symbol")
		if assetID == "" || symbol == "" {
			cmd.PrintErrln("asset and symbol are required")
			return
		}

		flag := func(name string) decimal.Decimal {
			v, _ := cmd.Flags().GetString(name)
			return number.Decimal(v)
		}

		maxLeverage, _ := cmd.Flags().GetString("max-leverage")

		pool := core.Pool{
			AssetID:              assetID,
			Symbol:               strings.ToUpper(symbol),
			BorrowIndex:          decimal.New(1, 0),
			BaseRate:             flag("base-rate"),
			Multiplier:           flag("multiplier"),
			JumpMultiplier:       flag("jump-multiplier"),
			Kink:                 flag("kink"),
			ReserveFactor:        flag("reserve-factor"),
			LiquidationIncentive: flag("liquidation-incentive"),
			MaxLeverageFactor:    cast.ToInt64(maxLeverage) * gearbox.LeverageDecimals,
		}

		err := database.Tx(func(tx *db.DB) error {
			return poolStore.Save(ctx, tx, &pool)
		})
		if err != nil {
			cmd.PrintErrln("create pool error:", err)
			return
		}

		cmd.Println("pool created:", pool.AssetID, pool.Symbol)
	},
}

var listPoolsCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"lp"},
	Short:   "list pools",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		pools, err := providePoolStore(database).All(ctx)
		if err != nil {
			cmd.PrintErrln("list pools error:", err)
			return
		}

		for _, pool := range pools {
			cmd.Println(pool.Symbol, pool.AssetID,
				"liquidity:", pool.TotalLiquidity,
				"borrowed:", pool.TotalBorrowed,
				"index:", pool.BorrowIndex)
		}
	},
}

func init() {
	createPoolCmd.Flags().String("asset", "", "pool asset id")
	createPoolCmd.Flags().String("symbol", "", "pool asset symbol")
	createPoolCmd.Flags().String("base-rate", "0.025", "base borrow rate per year")
	createPoolCmd.Flags().String("multiplier", "0.2", "rate multiplier per year")
	createPoolCmd.Flags().String("jump-multiplier", "2", "jump multiplier past the kink")
	createPoolCmd.Flags().String("kink", "0.8", "utilization kink")
	createPoolCmd.Flags().String("reserve-factor", "0.1", "share of interest kept as reserves")
	createPoolCmd.Flags().String("liquidation-incentive", "0.05", "liquidator seize premium")
	createPoolCmd.Flags().String("max-leverage", "4", "max leverage, in whole turns")

	poolCmd.AddCommand(createPoolCmd)
	poolCmd.AddCommand(listPoolsCmd)
	rootCmd.AddCommand(poolCmd)
}
