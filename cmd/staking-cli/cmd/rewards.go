package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"staking-client/internal/model"
	"staking-client/internal/service/accrual"
	"staking-client/pkg/config"
	"staking-client/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Show a live estimate of the rewards accrued in a pool",
	Long: `Loads the account's last reward snapshot and extrapolates it every tick
until the pool ends or the command is interrupted. When a pool that was seen
live ends, the snapshot is reloaded once to show the settled value.`,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		account, err := a.sender(cmd)
		if err != nil {
			return err
		}
		pool, _ := cmd.Flags().GetUint64("pool")
		kind, _ := cmd.Flags().GetString("source")
		once, _ := cmd.Flags().GetBool("once")

		src, err := a.snapshotSource(kind)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		snap, err := src.Snapshot(ctx, pool, account)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if once {
			u, ok := accrual.TickWithDecimals(*snap, time.Now(), accrualDecimals(snap))
			if !ok {
				fmt.Fprintln(out, "No rewards accruing yet.")
				return nil
			}
			fmt.Fprintln(out, u)
			return nil
		}

		line := newLineRenderer(out)
		engine := a.newEngine(snap, line)
		engine.Start(ctx)

		select {
		case <-ctx.Done():
		case <-engine.Done():
		}
		engine.Stop()
		line.finish()

		select {
		case <-engine.Refresh():
		default:
			return nil
		}

		settled, err := src.Snapshot(ctx, pool, account)
		if err != nil {
			return fmt.Errorf("reloading snapshot after pool end: %w", err)
		}
		if u, ok := accrual.TickWithDecimals(*settled, time.Now(), accrualDecimals(settled)); ok {
			fmt.Fprintf(out, "Pool ended. Settled rewards: %s\n", u)
		}
		return nil
	}),
}

// accrualDecimals is the configured display precision. A mismatch with the
// reward asset is logged but not corrected.
func accrualDecimals(s *model.PoolRewardSnapshot) int32 {
	d := config.Global.Accrual.Decimals
	if d <= 0 {
		d = accrual.DefaultDecimals
	}
	if s.RewardDecimals != 0 && s.RewardDecimals != d {
		logger.Warn("reward asset decimals differ from the configured accrual decimals",
			zap.Uint64("pool_id", s.PoolID),
			zap.Int32("asset_decimals", s.RewardDecimals),
			zap.Int32("configured", d),
		)
	}
	return d
}

func (a *app) newEngine(snap *model.PoolRewardSnapshot, r accrual.Renderer) *accrual.Engine {
	return accrual.NewEngine(*snap, accrual.Config{
		Decimals: accrualDecimals(snap),
		Interval: config.Global.Accrual.TickInterval,
		Metrics:  a.metrics,
	}, r)
}

// lineRenderer redraws a single line on a terminal and prints one line per
// update otherwise.
type lineRenderer struct {
	out         io.Writer
	interactive bool
	drawn       bool
}

func newLineRenderer(out io.Writer) *lineRenderer {
	f, ok := out.(*os.File)
	return &lineRenderer{out: out, interactive: ok && term.IsTerminal(int(f.Fd()))}
}

func (l *lineRenderer) Render(u accrual.Update) {
	if l.interactive {
		fmt.Fprintf(l.out, "\r\033[KRewards: %s (%s)", u, u.Regime)
		l.drawn = true
		return
	}
	fmt.Fprintf(l.out, "Rewards: %s (%s)\n", u, u.Regime)
}

func (l *lineRenderer) finish() {
	if l.drawn {
		fmt.Fprintln(l.out)
		l.drawn = false
	}
}

func init() {
	rootCmd.AddCommand(rewardsCmd)
	rewardsCmd.Flags().Uint64("pool", 0, "pool ID")
	rewardsCmd.Flags().String("source", "ledger", "where to read the snapshot: ledger or page")
	rewardsCmd.Flags().Bool("once", false, "print the current estimate and exit")
	_ = rewardsCmd.MarkFlagRequired("pool")
}
