package cache

import (
	"context"
	"time"
)

// MultiLevelCache layers a local cache (L1) over a shared one (L2).
type MultiLevelCache struct {
	local  Cache
	remote Cache
}

func NewMultiLevelCache(local, remote Cache) *MultiLevelCache {
	return &MultiLevelCache{
		local:  local,
		remote: remote,
	}
}

func (m *MultiLevelCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	// L1 lives half as long so it never outlasts L2
	_ = m.local.Set(ctx, key, value, ttl/2)
	return m.remote.Set(ctx, key, value, ttl)
}

func (m *MultiLevelCache) Get(ctx context.Context, key string, target interface{}) error {
	// 1. L1
	if err := m.local.Get(ctx, key, target); err == nil {
		return nil
	}

	// 2. L2, refilling L1 on hit
	if err := m.remote.Get(ctx, key, target); err != nil {
		return err
	}
	_ = m.local.Set(ctx, key, target, time.Minute)
	return nil
}

func (m *MultiLevelCache) Delete(ctx context.Context, key string) error {
	_ = m.local.Delete(ctx, key)
	return m.remote.Delete(ctx, key)
}
