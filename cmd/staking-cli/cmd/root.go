package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"staking-client/internal/service/orchestrator"
	"staking-client/pkg/config"
	"staking-client/pkg/errno"
	"staking-client/pkg/logger"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd is the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "staking-cli",
	Short: "Stake assets into time-bounded reward pools",
	Long: `staking-cli builds staking transactions through the pool backend,
has them signed by an external wallet, submits them and waits for the
ledger to confirm them. It also shows a live estimate of the rewards
accrued in a pool.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		logger.Init(config.Global.App.Env, config.Global.App.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./config.yaml)")
	rootCmd.PersistentFlags().StringP("account", "a", "", "account to act as (default: the selected account)")
}

// describe turns lifecycle errors into something a user can act on.
func describe(err error) string {
	var timeout *orchestrator.ConfirmationTimeoutError
	switch {
	case errors.As(err, &timeout):
		return fmt.Sprintf("Transaction %s was not confirmed by round %d. It may still confirm; check with: staking-cli reconcile %s",
			timeout.TxID, timeout.LastRound, timeout.TxID)
	case errors.Is(err, errno.ErrSigningDeclined):
		return "Signing declined, nothing was submitted."
	case errors.Is(err, errno.ErrIntentInFlight):
		return "The same action is already waiting for confirmation."
	case errors.Is(err, errno.ErrNoAccount):
		return "No account selected. Run: staking-cli accounts, then staking-cli select <address>"
	}
	code, msg := errno.Decode(err)
	if code == errno.InternalServerError.Code {
		return "Error: " + msg
	}
	return fmt.Sprintf("Error %d: %s", code, msg)
}
