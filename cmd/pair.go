package cmd

import (
	"gearbox/core"
	"gearbox/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "exchange pair cmd group",
}

var createPairCmd = &cobra.Command{
	Use:   "create",
	Short: "create an exchange pair",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		pairStore := providePairStore(database)

		base, _ := cmd.Flags().GetString("base")
		quote, _ := cmd.Flags().GetString("quote")
		if base == "" || quote == "" || base == quote {
			cmd.PrintErrln("base and quote must be two distinct assets")
			return
		}

		baseReserve, _ := cmd.Flags().GetString("base-reserve")
		quoteReserve, _ := cmd.Flags().GetString("quote-reserve")

		pair := core.Pair{
			BaseAssetID:  base,
			QuoteAssetID: quote,
			BaseReserve:  number.Decimal(baseReserve),
			QuoteReserve: number.Decimal(quoteReserve),
		}

		err := database.Tx(func(tx *db.DB) error {
			return pairStore.Save(ctx, tx, &pair)
		})
		if err != nil {
			cmd.PrintErrln("create pair error:", err)
			return
		}

		cmd.Println("pair created:", pair.BaseAssetID, "/", pair.QuoteAssetID)
	},
}

var listPairsCmd = &cobra.Command{
	Use:   "list",
	Short: "list pairs",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		pairs, err := providePairStore(database).All(ctx)
		if err != nil {
			cmd.PrintErrln("list pairs error:", err)
			return
		}

		for _, pair := range pairs {
			cmd.Println(pair.BaseAssetID, "/", pair.QuoteAssetID,
				"reserves:", pair.BaseReserve, pair.QuoteReserve)
		}
	},
}

func init() {
	createPairCmd.Flags().String("base", "", "base asset id")
	createPairCmd.Flags().String("quote", "", "quote asset id")
	createPairCmd.Flags().String("base-reserve", "0", "initial base reserve")
	createPairCmd.Flags().String("quote-reserve", "0", "initial quote reserve")

	pairCmd.AddCommand(createPairCmd)
	pairCmd.AddCommand(listPairsCmd)
	rootCmd.AddCommand(pairCmd)
}
