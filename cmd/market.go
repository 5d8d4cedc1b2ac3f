package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "manage the simulated lending market",
}

var marketInitCmd = &cobra.Command{
	Use:   "init",
	Short: "seed the market with the configured liquidity",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		marketSrv := provideMarketService(database, provideMarketStore(database), provideBlockService())
		market, err := marketSrv.Init(cmd.Context())
		if err != nil {
			return err
		}

		printJSON(cmd, market)
		return nil
	},
}

var marketAccrueCmd = &cobra.Command{
	Use:   "accrue",
	Short: "accrue market interest up to the current block",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		marketSrv := provideMarketService(database, provideMarketStore(database), provideBlockService())
		market, err := marketSrv.AccrueInterest(cmd.Context(), time.Now())
		if err != nil {
			return err
		}

		printJSON(cmd, market)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)
	marketCmd.AddCommand(marketInitCmd, marketAccrueCmd)
}
