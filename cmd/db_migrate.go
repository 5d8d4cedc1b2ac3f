package cmd

import (
	"github.com/fox-one/pkg/store/db"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// command for migrating database
var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "create or update the pool, deposit, journal, transfer and market tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			return err
		}

		logrus.Infof("database %s migrated", cfg.DB.Dialect)

		if open, _ := cmd.Flags().GetBool("open"); open {
			_, poolSrv := preparePool(cmd.Context(), database)
			pool, err := poolSrv.Pool(cmd.Context())
			if err != nil {
				return err
			}

			printJSON(cmd, pool)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("open", false, "seed the market and open the pool after migrating")
}
