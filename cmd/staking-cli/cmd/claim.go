package cmd

import (
	"github.com/spf13/cobra"
)

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim the rewards accrued in a pool",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		sender, err := a.sender(cmd)
		if err != nil {
			return err
		}
		pool, _ := cmd.Flags().GetUint64("pool")

		res, err := a.staking.Claim(cmd.Context(), sender, pool)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(claimCmd)
	claimCmd.Flags().Uint64("pool", 0, "pool ID")
	_ = claimCmd.MarkFlagRequired("pool")
}
