package cmd

import (
	"strings"

	"gearbox/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var allowListCmd = &cobra.Command{
	Use:     "allowlist",
	Aliases: []string{"al"},
	Short:   "allowlist cmd group",
}

var addTokenCmd = &cobra.Command{
	Use:   "add-token",
	Short: "allow accounts to hold a token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		filterStore := provideFilterStore(database)

		assetID, _ := cmd.Flags().GetString("asset")
		symbol, _ := cmd.Flags().GetString("symbol")
		if assetID == "" {
			cmd.PrintErrln("asset is required")
			return
		}

		token := core.AllowedToken{
			AssetID: assetID,
			Symbol:  strings.ToUpper(symbol),
		}

		err := database.Tx(func(tx *db.DB) error {
			return filterStore.SaveToken(ctx, tx, &token)
		})
		if err != nil {
			cmd.PrintErrln("add token error:", err)
			return
		}

		cmd.Println("token allowed:", token.AssetID)
	},
}

var removeTokenCmd = &cobra.Command{
	Use:   "remove-token",
	Short: "remove a token from the allow list",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		filterStore := provideFilterStore(database)

		assetID, _ := cmd.Flags().GetString("asset")
		if assetID == "" {
			cmd.PrintErrln("asset is required")
			return
		}

		err := database.Tx(func(tx *db.DB) error {
			return filterStore.DeleteToken(ctx, tx, assetID)
		})
		if err != nil {
			cmd.PrintErrln("remove token error:", err)
			return
		}

		cmd.Println("token removed:", assetID)
	},
}

var addContractCmd = &cobra.Command{
	Use:   "add-contract",
	Short: "authorize a target contract and bind its adapter",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		filterStore := provideFilterStore(database)

		target, _ := cmd.Flags().GetString("target")
		adapterID, _ := cmd.Flags().GetString("adapter")
		if target == "" || adapterID == "" {
			cmd.PrintErrln("target and adapter are required")
			return
		}

		entry := core.AllowedContract{
			TargetID:  target,
			AdapterID: adapterID,
		}

		err := database.Tx(func(tx *db.DB) error {
			return filterStore.SaveContract(ctx, tx, &entry)
		})
		if err != nil {
			cmd.PrintErrln("add contract error:", err)
			return
		}

		cmd.Println("contract allowed:", entry.TargetID, "->", entry.AdapterID)
	},
}

var removeContractCmd = &cobra.Command{
	Use:   "remove-contract",
	Short: "remove a target contract from the allow list",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		filterStore := provideFilterStore(database)

		target, _ := cmd.Flags().GetString("target")
		if target == "" {
			cmd.PrintErrln("target is required")
			return
		}

		err := database.Tx(func(tx *db.DB) error {
			return filterStore.DeleteContract(ctx, tx, target)
		})
		if err != nil {
			cmd.PrintErrln("remove contract error:", err)
			return
		}

		cmd.Println("contract removed:", target)
	},
}

var showAllowListCmd = &cobra.Command{
	Use:   "show",
	Short: "show the allow list",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		filterStore := provideFilterStore(database)

		contracts, err := filterStore.AllContracts(ctx)
		if err != nil {
			cmd.PrintErrln("list contracts error:", err)
			return
		}
		for _, contract := range contracts {
			cmd.Println("contract:", contract.TargetID, "->", contract.AdapterID)
		}

		tokens, err := filterStore.AllTokens(ctx)
		if err != nil {
			cmd.PrintErrln("list tokens error:", err)
			return
		}
		for _, token := range tokens {
			cmd.Println("token:", token.AssetID, token.Symbol)
		}
	},
}

func init() {
	addTokenCmd.Flags().String("asset", "", "token asset id")
	addTokenCmd.Flags().String("symbol", "", "token symbol")
	removeTokenCmd.Flags().String("asset", "", "token asset id")
	addContractCmd.Flags().String("target", "", "target contract id")
	addContractCmd.Flags().String("adapter", "", "adapter id")
	removeContractCmd.Flags().String("target", "", "target contract id")

	allowListCmd.AddCommand(addTokenCmd)
	allowListCmd.AddCommand(removeTokenCmd)
	allowListCmd.AddCommand(addContractCmd)
	allowListCmd.AddCommand(removeContractCmd)
	allowListCmd.AddCommand(showAllowListCmd)
	rootCmd.AddCommand(allowListCmd)
}
