package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Unstake an amount, or everything with --all",
	Long: `Withdraws part of the stake, or with --all the whole stake together with
every reward accrued up to the moment the transaction is evaluated.`,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		sender, err := a.sender(cmd)
		if err != nil {
			return err
		}
		pool, _ := cmd.Flags().GetUint64("pool")
		all, _ := cmd.Flags().GetBool("all")

		amount := decimal.Zero
		if !all {
			if amount, err = decimalFlag(cmd, "amount"); err != nil {
				return err
			}
		}

		res, err := a.staking.Withdraw(cmd.Context(), sender, pool, amount, all)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(withdrawCmd)
	withdrawCmd.Flags().Uint64("pool", 0, "pool ID")
	withdrawCmd.Flags().String("amount", "", "amount in whole units")
	withdrawCmd.Flags().Bool("all", false, "withdraw the whole stake and all rewards")
	withdrawCmd.MarkFlagsMutuallyExclusive("amount", "all")
	_ = withdrawCmd.MarkFlagRequired("pool")
}
