package cmd

import (
	"context"

	"yieldpool/worker"
	"yieldpool/worker/accrual"
	"yieldpool/worker/auditor"
	"yieldpool/worker/cashier"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "yield pool job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		marketService, poolService := preparePool(ctx, database)

		cashierCfg := cfg.Cashier
		if batch, _ := cmd.Flags().GetInt("cashier.batch"); batch > 0 {
			cashierCfg.Batch = batch
		}
		if capacity, _ := cmd.Flags().GetInt64("cashier.capacity"); capacity > 0 {
			cashierCfg.Capacity = capacity
		}

		location := cfg.App.Location
		jobs := []worker.IJob{
			cashier.New(location, provideTransferStore(database), provideWalletService(provideMainWallet()), cashierCfg),
			accrual.New(location, marketService),
			auditor.New(location, poolService, providePropertyStore(database)),
		}

		for _, j := range jobs {
			if err := j.Start(); err != nil {
				log.WithError(err).Fatal("start job")
			}
		}

		ctx, quit := context.WithCancel(ctx)
		signal.WithContextFunc(ctx, quit)
		<-ctx.Done()

		for _, j := range jobs {
			if err := j.Stop(); err != nil {
				log.WithError(err).Error("stop job")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)

	// worker.cashier.Config
	workerCmd.Flags().Int("cashier.batch", 0, "custom batch for worker cashier")
	workerCmd.Flags().Int64("cashier.capacity", 0, "custom capacity for worker cashier")
}
