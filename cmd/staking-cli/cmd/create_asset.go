package cmd

import (
	"fmt"

	"staking-client/internal/handler/request"

	"github.com/spf13/cobra"
)

var createAssetCmd = &cobra.Command{
	Use:   "create-asset",
	Short: "Create a fungible asset usable as staking or reward asset",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		sender, err := a.sender(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		unit, _ := cmd.Flags().GetString("unit")
		total, _ := cmd.Flags().GetUint64("total")
		decimals, _ := cmd.Flags().GetUint32("decimals")

		res, err := a.staking.CreateAsset(cmd.Context(), request.CreateAssetRequest{
			Sender:   sender,
			Name:     name,
			UnitName: unit,
			Total:    total,
			Decimals: decimals,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		printResult(out, res)
		fmt.Fprintf(out, "Asset ID: %d\n", res.AssetIndex)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(createAssetCmd)
	createAssetCmd.Flags().String("name", "", "asset name")
	createAssetCmd.Flags().String("unit", "", "unit name, e.g. RWD")
	createAssetCmd.Flags().Uint64("total", 0, "total supply in base units")
	createAssetCmd.Flags().Uint32("decimals", 6, "number of decimals")
}
