package cmd

import (
	"gearbox/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "wallet cmd group",
}

// the inbound leg of the ledger: operators credit user wallets here after
// funds arrive on the external rail
var depositCmd = &cobra.Command{
	Use:     "deposit",
	Aliases: []string{"dp"},
	Short:   "credit a user wallet",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		balanceStore := provideBalanceStore(database)

		user, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")
		amount, _ := cmd.Flags().GetString("amount")
		if user == "" || assetID == "" {
			cmd.PrintErrln("user and asset are required")
			return
		}

		value := number.Decimal(amount)
		if !value.IsPositive() {
			cmd.PrintErrln("amount must be positive")
			return
		}

		err := database.Tx(func(tx *db.DB) error {
			return balanceStore.Add(ctx, tx, user, assetID, value)
		})
		if err != nil {
			cmd.PrintErrln("deposit error:", err)
			return
		}

		cmd.Println("credited", value, assetID, "to", user)
	},
}

var withdrawCmd = &cobra.Command{
	Use:     "withdraw",
	Aliases: []string{"wd"},
	Short:   "debit a user wallet",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		balanceStore := provideBalanceStore(database)

		user, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")
		amount, _ := cmd.Flags().GetString("amount")
		if user == "" || assetID == "" {
			cmd.PrintErrln("user and asset are required")
			return
		}

		value := number.Decimal(amount)
		if !value.IsPositive() {
			cmd.PrintErrln("amount must be positive")
			return
		}

		err := database.Tx(func(tx *db.DB) error {
			return balanceStore.Add(ctx, tx, user, assetID, value.Neg())
		})
		if err != nil {
			cmd.PrintErrln("withdraw error:", err)
			return
		}

		cmd.Println("debited", value, assetID, "from", user)
	},
}

var showWalletCmd = &cobra.Command{
	Use:   "show",
	Short: "show a user wallet",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		balanceStore := provideBalanceStore(database)

		user, _ := cmd.Flags().GetString("user")
		if user == "" {
			cmd.PrintErrln("user is required")
			return
		}

		balances, err := balanceStore.FindByHolder(ctx, database, user)
		if err != nil {
			cmd.PrintErrln("show wallet error:", err)
			return
		}

		for _, balance := range balances {
			cmd.Println(balance.AssetID, balance.Amount)
		}
	},
}

func init() {
	depositCmd.Flags().String("user", "", "wallet holder id")
	depositCmd.Flags().String("asset", "", "asset id")
	depositCmd.Flags().String("amount", "0", "amount to credit")

	withdrawCmd.Flags().String("user", "", "wallet holder id")
	withdrawCmd.Flags().String("asset", "", "asset id")
	withdrawCmd.Flags().String("amount", "0", "amount to debit")

	showWalletCmd.Flags().String("user", "", "wallet holder id")

	walletCmd.AddCommand(depositCmd)
	walletCmd.AddCommand(withdrawCmd)
	walletCmd.AddCommand(showWalletCmd)
	rootCmd.AddCommand(walletCmd)
}
