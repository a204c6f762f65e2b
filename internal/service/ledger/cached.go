package ledger

import (
	"context"
	"fmt"
	"time"

	"staking-client/internal/model"
	"staking-client/pkg/cache"
	"staking-client/pkg/logger"

	"go.uber.org/zap"
)

// CachedLedger memoizes asset parameters, which are immutable once created.
// All other calls go straight to the wrapped Ledger.
type CachedLedger struct {
	Ledger
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedLedger(l Ledger, c cache.Cache, ttl time.Duration) *CachedLedger {
	return &CachedLedger{Ledger: l, cache: c, ttl: ttl}
}

func (c *CachedLedger) AssetInformation(ctx context.Context, assetID uint64) (*model.AssetInfo, error) {
	key := fmt.Sprintf("asset:%d", assetID)

	var info model.AssetInfo
	if err := c.cache.Get(ctx, key, &info); err == nil {
		return &info, nil
	}

	fresh, err := c.Ledger.AssetInformation(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, fresh, c.ttl); err != nil {
		logger.Warn("caching asset info failed", zap.Uint64("asset", assetID), zap.Error(err))
	}
	return fresh, nil
}
