package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the Algo balance of the acting account",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		addr, err := a.sender(cmd)
		if err != nil {
			return err
		}
		balance, err := a.staking.Balance(cmd.Context(), addr)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s Algo\n", addr, balance)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
