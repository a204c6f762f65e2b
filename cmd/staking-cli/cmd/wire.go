package cmd

import (
	"context"
	"fmt"
	"os"

	"staking-client/internal/service/backend"
	"staking-client/internal/service/ledger"
	"staking-client/internal/service/orchestrator"
	"staking-client/internal/service/pool"
	"staking-client/internal/service/session"
	"staking-client/internal/service/signer"
	"staking-client/internal/service/snapshot"
	"staking-client/internal/service/staking"
	"staking-client/pkg/cache"
	"staking-client/pkg/config"
	"staking-client/pkg/database"
	"staking-client/pkg/monitor"
	"staking-client/pkg/utils/lock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// app holds the collaborators shared by the commands.
type app struct {
	registry *prometheus.Registry
	metrics  *monitor.BusinessMetrics
	redis    *redis.Client
	ledger   *ledger.CachedLedger
	backend  *backend.Client
	signer   signer.Signer
	session  session.Store
	orch     *orchestrator.Orchestrator
	staking  *staking.Service
	pools    *pool.Service
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.Global
	a := &app{registry: prometheus.NewRegistry()}
	a.metrics = monitor.NewBusinessMetrics(a.registry)

	var (
		assetCache cache.Cache = cache.NewMemoryCache(cfg.Cache.AssetTTL, 2*cfg.Cache.AssetTTL)
		locker     lock.Locker = lock.NewLocalLock()
	)
	if cfg.Redis.Enabled {
		rdb, err := database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		assetCache = cache.NewMultiLevelCache(assetCache, cache.NewRedisCache(rdb, "staking:cache:"))
		locker = lock.NewRedisLock(rdb)
	}

	algod := ledger.NewAlgodClient(cfg.Ledger.AlgodURL, cfg.Ledger.Token, cfg.Ledger.Timeout)
	a.ledger = ledger.NewCachedLedger(algod, assetCache, cfg.Cache.AssetTTL)
	a.backend = backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	var s signer.Signer = signer.NewHTTPSigner(cfg.Signer.URL, cfg.Ledger.Name, cfg.Signer.Timeout)
	if cfg.Signer.Approve {
		s = signer.NewTerminalApprovalSigner(s)
	}
	a.signer = s

	switch cfg.Session.Store {
	case "redis":
		a.session = session.NewRedisStore(a.redis, "staking:session:", cfg.Session.TTL)
	default:
		a.session = session.NewFileStore(cfg.Session.Path)
	}

	a.orch = orchestrator.New(orchestrator.Config{
		ConfirmationRounds: cfg.Orchestrator.ConfirmationRounds,
		LockTTL:            cfg.Orchestrator.LockTTL,
		Locker:             locker,
		Indicator:          newTermIndicator(os.Stderr),
		Metrics:            a.metrics,
	}, a.backend, a.signer, a.ledger)
	a.staking = staking.NewService(a.orch, a.ledger)
	a.pools = pool.NewService(a.ledger)
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

// sender resolves the acting account: the --account flag, or the stored
// selection once the signer confirms it still holds it.
func (a *app) sender(cmd *cobra.Command) (string, error) {
	ctx := cmd.Context()
	if err := a.signer.Connect(ctx); err != nil {
		return "", fmt.Errorf("connecting to signer: %w", err)
	}

	addr, _ := cmd.Flags().GetString("account")
	if addr == "" {
		var err error
		if addr, err = session.Current(ctx, a.session, a.signer); err != nil {
			return "", err
		}
	}
	a.backend.SetAccount(addr)
	return addr, nil
}

func (a *app) snapshotSource(kind string) (snapshot.Source, error) {
	switch kind {
	case "ledger":
		return snapshot.NewLedgerSource(a.ledger), nil
	case "page":
		return snapshot.NewPageSource(config.Global.Backend.BaseURL, config.Global.Backend.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown snapshot source %q (want ledger or page)", kind)
	}
}

// withApp builds the app for one command run and closes it afterwards.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, args, a)
	}
}
