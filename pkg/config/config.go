package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Backend      BackendConfig      `mapstructure:"backend"`
	Ledger       LedgerConfig       `mapstructure:"ledger"`
	Signer       SignerConfig       `mapstructure:"signer"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	Accrual      AccrualConfig      `mapstructure:"accrual"`
	Session      SessionConfig      `mapstructure:"session"`
	Cache        CacheConfig        `mapstructure:"cache"`
}

type AppConfig struct {
	Env             string        `mapstructure:"env"`
	LogLevel        string        `mapstructure:"log_level"`
	HttpPort        string        `mapstructure:"http_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// BackendConfig points at the service that builds unsigned transactions.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // intent requests and page reads; /submit is unbounded
}

type LedgerConfig struct {
	Name     string        `mapstructure:"name"` // e.g. SandNet, TestNet
	AlgodURL string        `mapstructure:"algod_url"`
	Token    string        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Deployer string        `mapstructure:"deployer"` // account whose created pools are listed
}

type SignerConfig struct {
	URL     string        `mapstructure:"url"`
	Approve bool          `mapstructure:"approve"` // ask on the terminal before every signature
	Timeout time.Duration `mapstructure:"timeout"` // connect and account listing only, never signing
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type OrchestratorConfig struct {
	ConfirmationRounds uint64        `mapstructure:"confirmation_rounds"`
	LockTTL            time.Duration `mapstructure:"lock_ttl"`
}

type AccrualConfig struct {
	Decimals     int32         `mapstructure:"decimals"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

type SessionConfig struct {
	Store string        `mapstructure:"store"` // "file" or "redis"
	Path  string        `mapstructure:"path"`
	TTL   time.Duration `mapstructure:"ttl"`
}

type CacheConfig struct {
	AssetTTL time.Duration `mapstructure:"asset_ttl"`
}

var Global Config

// Init loads configuration from cfgFile (or config.yaml in the usual places),
// STAKING_* environment variables and defaults into Global.
func Init(cfgFile string) error {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("STAKING")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	Global = cfg
	return nil
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("config: backend.base_url is required")
	}
	if c.Ledger.AlgodURL == "" {
		return errors.New("config: ledger.algod_url is required")
	}
	if c.Orchestrator.ConfirmationRounds == 0 {
		return errors.New("config: orchestrator.confirmation_rounds must be positive")
	}
	if c.Accrual.TickInterval <= 0 {
		return errors.New("config: accrual.tick_interval must be positive")
	}
	switch c.Session.Store {
	case "file", "redis":
	default:
		return fmt.Errorf("config: unknown session.store %q", c.Session.Store)
	}
	if c.Session.Store == "redis" && !c.Redis.Enabled {
		return errors.New("config: session.store redis requires redis.enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.http_port", "8080")
	v.SetDefault("app.shutdown_timeout", 5*time.Second)

	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", 30*time.Second)

	v.SetDefault("ledger.name", "SandNet")
	v.SetDefault("ledger.algod_url", "http://localhost:4001")
	v.SetDefault("ledger.token", strings.Repeat("a", 64))
	v.SetDefault("ledger.timeout", 30*time.Second)

	v.SetDefault("signer.url", "http://localhost:4100")
	v.SetDefault("signer.approve", true)
	v.SetDefault("signer.timeout", 30*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("orchestrator.confirmation_rounds", 5)
	v.SetDefault("orchestrator.lock_ttl", 5*time.Minute)

	v.SetDefault("accrual.decimals", 6)
	v.SetDefault("accrual.tick_interval", time.Second)

	v.SetDefault("session.store", "file")
	v.SetDefault("session.path", ".staking-session")
	v.SetDefault("session.ttl", time.Duration(0))

	v.SetDefault("cache.asset_ttl", 10*time.Minute)
}
