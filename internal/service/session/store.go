package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cookieName = "account"

// Store keeps the account selected by the user between runs.
// Get returns "" when nothing is selected.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, address string) error
	Clear(ctx context.Context) error
}

// FileStore keeps the selection in a file using the cookie format
// account=<address>.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}

	line := strings.TrimSpace(string(data))
	if line == "" {
		return "", nil
	}
	cookies, err := http.ParseCookie(line)
	if err != nil {
		return "", fmt.Errorf("parsing session %s: %w", s.path, err)
	}
	for _, c := range cookies {
		if c.Name == cookieName {
			return c.Value, nil
		}
	}
	return "", nil
}

func (s *FileStore) Set(_ context.Context, address string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating session dir: %w", err)
		}
	}
	c := &http.Cookie{Name: cookieName, Value: address}
	if err := os.WriteFile(s.path, []byte(c.String()+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// RedisStore shares the selection between processes. A zero ttl keeps it
// until cleared.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, key: prefix + cookieName, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context) (string, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, address string) error {
	return s.client.Set(ctx, s.key, address, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
