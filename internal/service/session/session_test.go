package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"staking-client/internal/service/signer"
	"staking-client/pkg/errno"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accounts struct {
	list []signer.Account
	err  error
}

func (a accounts) Accounts(context.Context) ([]signer.Account, error) { return a.list, a.err }

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session")
	s := NewFileStore(path)

	addr, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, addr)

	require.NoError(t, s.Set(ctx, "ALICEADDR"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "account=ALICEADDR\n", string(data))

	addr, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ALICEADDR", addr)

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	addr, _ = s.Get(ctx)
	assert.Empty(t, addr)
}

func TestFileStoreReadsCookieLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("theme=dark; account=BOBADDR\n"), 0o600))

	addr, err := NewFileStore(path).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BOBADDR", addr)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := NewRedisStore(client, "staking:session:", time.Hour)
	addr, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, addr)

	require.NoError(t, s.Set(ctx, "ALICEADDR"))
	got, err := mr.Get("staking:session:account")
	require.NoError(t, err)
	assert.Equal(t, "ALICEADDR", got)
	assert.Equal(t, time.Hour, mr.TTL("staking:session:account"))

	addr, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ALICEADDR", addr)

	require.NoError(t, s.Clear(ctx))
	assert.False(t, mr.Exists("staking:session:account"))
}

func TestCurrent(t *testing.T) {
	ctx := context.Background()
	wallet := accounts{list: []signer.Account{{Address: "ALICEADDR"}, {Address: "BOBADDR"}}}

	tests := []struct {
		name    string
		stored  string
		signer  AccountLister
		want    string
		wantErr error
	}{
		{"valid", "BOBADDR", wallet, "BOBADDR", nil},
		{"nothing stored", "", wallet, "", errno.ErrNoAccount},
		{"stale selection", "CAROLADDR", wallet, "", errno.ErrUnknownAccount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewFileStore(filepath.Join(t.TempDir(), "session"))
			if tt.stored != "" {
				require.NoError(t, store.Set(ctx, tt.stored))
			}

			addr, err := Current(ctx, store, tt.signer)
			assert.Equal(t, tt.want, addr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	store := NewFileStore(filepath.Join(t.TempDir(), "session"))
	require.NoError(t, store.Set(ctx, "ALICEADDR"))
	_, err := Current(ctx, store, accounts{err: errors.New("signer locked")})
	assert.ErrorContains(t, err, "signer locked")
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	wallet := accounts{list: []signer.Account{{Address: "ALICEADDR"}}}
	store := NewFileStore(filepath.Join(t.TempDir(), "session"))

	err := Select(ctx, store, wallet, "MALLORY")
	assert.ErrorIs(t, err, errno.ErrUnknownAccount)
	addr, _ := store.Get(ctx)
	assert.Empty(t, addr, "unknown accounts are never stored")

	require.NoError(t, Select(ctx, store, wallet, "ALICEADDR"))
	addr, _ = store.Get(ctx)
	assert.Equal(t, "ALICEADDR", addr)
}
