package cmd

import (
	"encoding/json"
	"fmt"

	"yieldpool/core"
	"yieldpool/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "operate the yield pool",
}

// amounts on the command line are in whole tokens
func amountFlag(cmd *cobra.Command) (decimal.Decimal, error) {
	amount, _ := cmd.Flags().GetString("amount")
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", amount)
	}

	return number.ToUnits(d, cfg.Pool.Precision), nil
}

func printJSON(cmd *cobra.Command, v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		panic(err)
	}

	cmd.Println(string(data))
}

type poolAction func(cmd *cobra.Command, poolSrv core.IPoolService, user string, amount decimal.Decimal) (*core.Transaction, error)

func newActionCmd(use, short string, action poolAction) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			user, _ := cmd.Flags().GetString("user")
			amount, err := amountFlag(cmd)
			if err != nil {
				return err
			}

			database := provideDatabase()
			defer database.Close()

			_, poolSrv := preparePool(ctx, database)
			tx, err := action(cmd, poolSrv, user, amount)
			if err != nil {
				return err
			}

			printJSON(cmd, tx)
			return nil
		},
	}

	c.Flags().StringP("user", "u", "", "caller identity")
	c.Flags().StringP("amount", "q", "", "amount in whole tokens")
	return c
}

var poolBalanceCmd = &cobra.Command{
	Use:   "balance <user>",
	Short: "show the principal of a depositor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		_, poolSrv := preparePool(cmd.Context(), database)
		balance, err := poolSrv.BalanceOf(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		cmd.Println(number.FromUnits(balance, cfg.Pool.Precision))
		return nil
	},
}

var poolExcessCmd = &cobra.Command{
	Use:   "excess",
	Short: "show the interest the beneficiary may withdraw",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		_, poolSrv := preparePool(cmd.Context(), database)
		excess, err := poolSrv.Excess(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Println(number.FromUnits(excess, cfg.Pool.Precision))
		return nil
	},
}

var poolInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "show the pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		_, poolSrv := preparePool(cmd.Context(), database)
		pool, err := poolSrv.Pool(cmd.Context())
		if err != nil {
			return err
		}

		printJSON(cmd, pool)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(poolCmd)

	poolCmd.AddCommand(newActionCmd("deposit", "deposit principal", func(cmd *cobra.Command, poolSrv core.IPoolService, user string, amount decimal.Decimal) (*core.Transaction, error) {
		return poolSrv.Deposit(cmd.Context(), user, amount)
	}))

	poolCmd.AddCommand(newActionCmd("withdraw", "withdraw principal", func(cmd *cobra.Command, poolSrv core.IPoolService, user string, amount decimal.Decimal) (*core.Transaction, error) {
		return poolSrv.Withdraw(cmd.Context(), user, amount)
	}))

	poolCmd.AddCommand(newActionCmd("donate", "donate to the beneficiary", func(cmd *cobra.Command, poolSrv core.IPoolService, user string, amount decimal.Decimal) (*core.Transaction, error) {
		return poolSrv.Donate(cmd.Context(), user, amount)
	}))

	withdrawInterestCmd := newActionCmd("withdraw-interest", "beneficiary withdraws accrued interest", func(cmd *cobra.Command, poolSrv core.IPoolService, user string, amount decimal.Decimal) (*core.Transaction, error) {
		recipient, _ := cmd.Flags().GetString("recipient")
		return poolSrv.WithdrawInterest(cmd.Context(), user, recipient, amount)
	})
	withdrawInterestCmd.Flags().String("recipient", "", "receiver of the interest, default is the caller")
	poolCmd.AddCommand(withdrawInterestCmd)

	poolCmd.AddCommand(poolBalanceCmd, poolExcessCmd, poolInfoCmd)
}
