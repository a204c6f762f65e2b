package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"staking-client/internal/service/pool"
	"staking-client/pkg/config"

	"github.com/spf13/cobra"
)

var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "List the staking pools created by the deployer account",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		creator, _ := cmd.Flags().GetString("creator")
		if creator == "" {
			creator = config.Global.Ledger.Deployer
		}
		if creator == "" {
			return errors.New("no deployer configured: pass --creator or set ledger.deployer")
		}

		pools, err := a.pools.List(cmd.Context(), creator)
		if err != nil {
			return err
		}
		printPools(cmd.OutOrStdout(), pools, time.Now())
		return nil
	}),
}

func printPools(out io.Writer, pools []pool.Summary, now time.Time) {
	if len(pools) == 0 {
		fmt.Fprintln(out, "No pools.")
		return
	}
	for _, p := range pools {
		fmt.Fprintf(out, "%d\tstake %s, earn %s at %s%%\t%s\n",
			p.ID, p.StakingAsset.Unit, p.RewardAsset.Unit, p.Rate, p.Status(now))
	}
}

func init() {
	rootCmd.AddCommand(poolsCmd)
	poolsCmd.Flags().String("creator", "", "account that deployed the pools (default: ledger.deployer)")
}
