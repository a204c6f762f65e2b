package cmd

import (
	"fmt"
	"io"
	"time"

	"staking-client/internal/service/pool"

	"github.com/spf13/cobra"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Show a pool and the acting account's position in it",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		account, err := a.sender(cmd)
		if err != nil {
			return err
		}
		id, _ := cmd.Flags().GetUint64("pool")

		d, err := a.pools.Detail(cmd.Context(), id, account)
		if err != nil {
			return err
		}
		printPoolDetail(cmd.OutOrStdout(), d, time.Now())
		return nil
	}),
}

func printPoolDetail(out io.Writer, d *pool.Detail, now time.Time) {
	fmt.Fprintf(out, "Pool %d\n", d.ID)
	fmt.Fprintf(out, "  Stake:   %s (asset %d)\n", d.StakingAsset.Unit, d.StakingAsset.ID)
	fmt.Fprintf(out, "  Reward:  %s (asset %d)\n", d.RewardAsset.Unit, d.RewardAsset.ID)
	fmt.Fprintf(out, "  Rate:    %s%%\n", d.Rate)
	fmt.Fprintf(out, "  Window:  %s to %s\n", d.Begin.Format(time.RFC3339), d.End.Format(time.RFC3339))
	fmt.Fprintf(out, "  Status:  %s\n", d.Status(now))
	fmt.Fprintf(out, "  Total:   %s %s\n", d.TotalStaked, d.StakingAsset.Unit)

	if !d.Position.OptedIn {
		fmt.Fprintln(out, "Not opted in.")
		return
	}
	fmt.Fprintf(out, "Staked:    %s %s\n", d.Position.Staked, d.StakingAsset.Unit)
	fmt.Fprintf(out, "Rewards:   %s %s", d.Position.Rewards, d.RewardAsset.Unit)
	if !d.Position.LastUpdated.IsZero() {
		fmt.Fprintf(out, " as of %s", d.Position.LastUpdated.Format(time.RFC3339))
	}
	fmt.Fprintln(out)
	if d.Position.Estimated != nil {
		fmt.Fprintf(out, "Estimated: %s\n", d.Position.Estimated)
	}
}

func init() {
	rootCmd.AddCommand(poolCmd)
	poolCmd.Flags().Uint64("pool", 0, "pool ID")
	_ = poolCmd.MarkFlagRequired("pool")
}
