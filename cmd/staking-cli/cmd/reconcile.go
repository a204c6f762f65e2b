package cmd

import (
	"errors"
	"fmt"

	"staking-client/internal/service/orchestrator"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <txid>",
	Short: "Check once whether a timed out transaction has confirmed",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		res, err := a.orch.Reconcile(cmd.Context(), args[0])
		if errors.Is(err, orchestrator.ErrStillPending) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is still pending\n", args[0])
			return nil
		}
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), res)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
