package cmd

import (
	"github.com/spf13/cobra"
)

var initPoolCmd = &cobra.Command{
	Use:   "init-pool",
	Short: "Fund a deployed pool and set its fixed rate",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		sender, err := a.sender(cmd)
		if err != nil {
			return err
		}
		pool, _ := cmd.Flags().GetUint64("pool")
		rate, err := decimalFlag(cmd, "rate")
		if err != nil {
			return err
		}

		res, err := a.staking.InitPool(cmd.Context(), sender, pool, rate)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initPoolCmd)
	initPoolCmd.Flags().Uint64("pool", 0, "pool ID")
	initPoolCmd.Flags().String("rate", "", "fixed annual rate in percent, e.g. 5.25")
	_ = initPoolCmd.MarkFlagRequired("pool")
}
