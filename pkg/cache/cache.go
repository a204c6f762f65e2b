package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache miss")

// Cache is a generic value cache
type Cache interface {
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get loads key and unmarshals it into target
	Get(ctx context.Context, key string, target interface{}) error
	// Delete removes key
	Delete(ctx context.Context, key string) error
}
