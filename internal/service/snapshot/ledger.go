package snapshot

import (
	"context"
	"fmt"

	"staking-client/internal/model"
	"staking-client/internal/service/ledger"
	"staking-client/pkg/errno"
	"staking-client/pkg/logger"

	"go.uber.org/zap"
)

// LedgerSource builds the snapshot straight from the pool contract's global
// state and the account's local state. Pass a *ledger.CachedLedger to avoid
// refetching the reward asset on every call.
type LedgerSource struct {
	ledger ledger.Ledger
}

func NewLedgerSource(l ledger.Ledger) *LedgerSource {
	return &LedgerSource{ledger: l}
}

func (s *LedgerSource) Snapshot(ctx context.Context, poolID uint64, account string) (*model.PoolRewardSnapshot, error) {
	app, err := s.ledger.ApplicationInformation(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("loading pool %d: %w", poolID, err)
	}
	global, err := model.DecodeState(app.Params.GlobalState)
	if err != nil {
		return nil, err
	}

	snap := &model.PoolRewardSnapshot{PoolID: poolID}
	var missing []string
	need := func(key string) uint64 {
		v, ok := global.Uint(key)
		if !ok {
			missing = append(missing, key)
		}
		return v
	}
	rewardAsset := need(model.StateRewardAsset)
	snap.BeginTimestamp = int64(need(model.StateBeginTime))
	snap.EndTimestamp = int64(need(model.StateEndTime))
	snap.FixedRateBasisPoints = need(model.StateFixedRate)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: pool %d lacks %v", errno.ErrSnapshotMissing, poolID, missing)
	}

	acct, err := s.ledger.AccountInformation(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", account, err)
	}
	// not opted in: nothing staked, nothing rewarded
	if kvs, ok := acct.LocalState(poolID); ok {
		local, err := model.DecodeState(kvs)
		if err != nil {
			return nil, err
		}
		snap.AmountStakedRaw, _ = local.Uint(model.StateAmountStaked)
		snap.AmountRewardedRaw, _ = local.Uint(model.StateAmountReward)
		lu, _ := local.Uint(model.StateLastUpdated)
		snap.LastUpdatedTimestamp = int64(lu)
	}

	asset, err := s.ledger.AssetInformation(ctx, rewardAsset)
	if err != nil {
		return nil, fmt.Errorf("loading reward asset %d: %w", rewardAsset, err)
	}
	snap.RewardUnit = asset.Params.UnitName
	snap.RewardDecimals = asset.Params.Decimals

	logger.Debug("snapshot loaded from ledger",
		zap.Uint64("pool_id", poolID),
		zap.String("account", account),
		zap.Uint64("staked", snap.AmountStakedRaw),
		zap.Uint64("rewarded", snap.AmountRewardedRaw),
	)
	return snap, nil
}
