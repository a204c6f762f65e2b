package database

import (
	"context"
	"fmt"

	"staking-client/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis connects to Redis and pings it once.
func ConnectRedis(ctx context.Context, addr string, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis %s: %w", addr, err)
	}

	logger.Info("Redis connected", zap.String("addr", addr), zap.Int("db", db))
	return rdb, nil
}
