package cmd

import (
	"fmt"
	"time"

	"staking-client/internal/handler/request"

	"github.com/spf13/cobra"
)

var createPoolCmd = &cobra.Command{
	Use:   "create-pool",
	Short: "Deploy a staking pool and initialise it",
	Long: `Deploys the pool contract, waits for it to confirm, then funds it with the
reward asset and sets the fixed annual rate in a second transaction group.`,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		sender, err := a.sender(cmd)
		if err != nil {
			return err
		}
		stakingAsset, _ := cmd.Flags().GetUint64("staking-asset")
		rewardAsset, _ := cmd.Flags().GetUint64("reward-asset")
		begin, err := timeFlag(cmd, "begin")
		if err != nil {
			return err
		}
		end, err := timeFlag(cmd, "end")
		if err != nil {
			return err
		}
		rate, err := decimalFlag(cmd, "rate")
		if err != nil {
			return err
		}

		created, err := a.staking.CreatePool(cmd.Context(), request.CreatePoolRequest{
			Sender:       sender,
			StakingAsset: stakingAsset,
			RewardAsset:  rewardAsset,
			Begin:        begin,
			End:          end,
		}, rate)
		out := cmd.OutOrStdout()
		if created != nil {
			printResult(out, created.Create)
			fmt.Fprintf(out, "Pool ID: %d\n", created.PoolID)
		}
		if err != nil {
			if created != nil {
				fmt.Fprintf(out, "Finish with: staking-cli init-pool --pool %d --rate %s\n", created.PoolID, rate)
			}
			return err
		}
		printResult(out, created.Init)
		return nil
	}),
}

func timeFlag(cmd *cobra.Command, name string) (time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: want RFC 3339, e.g. 2026-01-02T15:04:05Z: %w", name, err)
	}
	return t, nil
}

func init() {
	rootCmd.AddCommand(createPoolCmd)
	createPoolCmd.Flags().Uint64("staking-asset", 0, "asset ID users stake")
	createPoolCmd.Flags().Uint64("reward-asset", 0, "asset ID paid as reward")
	createPoolCmd.Flags().String("begin", "", "start of the staking period (RFC 3339)")
	createPoolCmd.Flags().String("end", "", "end of the staking period (RFC 3339)")
	createPoolCmd.Flags().String("rate", "", "fixed annual rate in percent, e.g. 5.25")
}
