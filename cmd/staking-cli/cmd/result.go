package cmd

import (
	"fmt"
	"io"

	"staking-client/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func printResult(out io.Writer, res *model.ConfirmationResult) {
	fmt.Fprintf(out, "Confirmed %s in round %d", res.TxID, res.ConfirmedRound)
	if res.Rounds > 0 {
		fmt.Fprintf(out, " after %d round(s)", res.Rounds)
	}
	fmt.Fprintln(out)
}

// decimalFlag reads a flag holding a decimal number such as "1.5".
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("--%s is required", name)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}
