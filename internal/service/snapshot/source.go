package snapshot

import (
	"context"

	"staking-client/internal/model"
)

// Source loads the reward position of an account in a pool.
type Source interface {
	Snapshot(ctx context.Context, poolID uint64, account string) (*model.PoolRewardSnapshot, error)
}
