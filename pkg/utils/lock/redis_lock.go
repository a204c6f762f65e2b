package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock is a SETNX based Locker shared between processes.
type RedisLock struct {
	client *redis.Client

	mu     sync.Mutex
	tokens map[string]string
}

func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{
		client: client,
		tokens: make(map[string]string),
	}
}

func (l *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	token, err := newToken()
	if err != nil {
		return false, err
	}

	// SET lock:key token NX PX ttl
	ok, err := l.client.SetNX(ctx, "lock:"+key, token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	if ok {
		l.mu.Lock()
		l.tokens[key] = token
		l.mu.Unlock()
	}
	return ok, nil
}

func (l *RedisLock) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	token, ok := l.tokens[key]
	delete(l.tokens, key)
	l.mu.Unlock()
	if !ok {
		return nil
	}

	if err := releaseScript.Run(ctx, l.client, []string{"lock:" + key}, token).Err(); err != nil {
		return fmt.Errorf("redis release %s: %w", key, err)
	}
	return nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
