package cmd

import (
	"fmt"

	"staking-client/internal/service/session"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <address>",
	Short: "Select the account to act as",
	Long:  `Stores the account for later commands. Only accounts held by the signer can be selected.`,
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		if err := a.signer.Connect(ctx); err != nil {
			return fmt.Errorf("connecting to signer: %w", err)
		}
		if err := session.Select(ctx, a.session, a.signer, args[0]); err != nil {
			return err
		}

		balance, err := a.staking.Balance(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Selected %s (%s Algo)\n", args[0], balance)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
