package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type MemoryCache struct {
	c *gocache.Cache
}

func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		c: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	// Values are kept as JSON so Get behaves like the Redis cache and callers
	// never share mutable state with the cache.
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.c.Set(key, b, ttl)
	return nil
}

func (m *MemoryCache) Get(ctx context.Context, key string, target interface{}) error {
	val, found := m.c.Get(key)
	if !found {
		return ErrMiss
	}
	return json.Unmarshal(val.([]byte), target)
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
