package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the accounts offered by the signer",
	Long:  `Connects to the signer and lists its accounts. The selected account is marked with *.`,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		if err := a.signer.Connect(ctx); err != nil {
			return fmt.Errorf("connecting to signer: %w", err)
		}
		accounts, err := a.signer.Accounts(ctx)
		if err != nil {
			return err
		}
		selected, err := a.session.Get(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(accounts) == 0 {
			fmt.Fprintln(out, "The signer has no accounts for this ledger.")
			return nil
		}
		for _, acc := range accounts {
			marker := " "
			if acc.Address == selected {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s\n", marker, acc.Address)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}
