package cmd

import (
	"github.com/spf13/cobra"
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Stake an amount of the pool's staking asset",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		sender, err := a.sender(cmd)
		if err != nil {
			return err
		}
		pool, _ := cmd.Flags().GetUint64("pool")
		amount, err := decimalFlag(cmd, "amount")
		if err != nil {
			return err
		}

		res, err := a.staking.Deposit(cmd.Context(), sender, pool, amount)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(depositCmd)
	depositCmd.Flags().Uint64("pool", 0, "pool ID")
	depositCmd.Flags().String("amount", "", "amount in whole units, e.g. 1.5")
	_ = depositCmd.MarkFlagRequired("pool")
}
