package cmd

import (
	"staking-client/internal/handler"
	"staking-client/internal/server"
	"staking-client/pkg/config"
	"staking-client/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live reward estimate, health and metrics over HTTP",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		account, err := a.sender(cmd)
		if err != nil {
			return err
		}
		pool, _ := cmd.Flags().GetUint64("pool")
		kind, _ := cmd.Flags().GetString("source")

		src, err := a.snapshotSource(kind)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		snap, err := src.Snapshot(ctx, pool, account)
		if err != nil {
			return err
		}

		engine := a.newEngine(snap, nil)
		engine.Start(ctx)
		defer engine.Stop()

		go func() {
			select {
			case <-engine.Refresh():
				logger.Info("pool ended, the served estimate is final until restart",
					zap.Uint64("pool_id", pool))
			case <-ctx.Done():
			}
		}()

		if config.Global.App.Env == "production" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := server.NewHTTPRouter(a.registry, server.Handlers{
			Health:  handler.NewHealthHandler(a.ledger),
			Rewards: handler.NewRewardsHandler(pool, engine),
			Pools:   handler.NewPoolHandler(a.pools),
		})
		return server.New(server.Config{
			HttpPort:        config.Global.App.HttpPort,
			ShutdownTimeout: config.Global.App.ShutdownTimeout,
		}, router).Run(ctx)
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Uint64("pool", 0, "pool ID")
	serveCmd.Flags().String("source", "ledger", "where to read the snapshot: ledger or page")
	_ = serveCmd.MarkFlagRequired("pool")
}
