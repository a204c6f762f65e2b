package pool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staking-client/internal/model"
	"staking-client/internal/service/accrual"
	"staking-client/internal/service/ledger"
	"staking-client/pkg/errno"
	"staking-client/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Phase is where a pool stands in its staking window.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Ended
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	default:
		return "ended"
	}
}

type Asset struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Decimals int32  `json:"decimals"`
}

// Amount converts a raw amount of the asset to whole units.
func (a Asset) Amount(raw uint64) decimal.Decimal {
	return decimal.NewFromUint64(raw).Shift(-a.Decimals)
}

// Summary is the public state of a pool contract.
type Summary struct {
	ID           uint64          `json:"id"`
	StakingAsset Asset           `json:"staking_asset"`
	RewardAsset  Asset           `json:"reward_asset"`
	BasisPoints  uint64          `json:"basis_points"`
	Rate         decimal.Decimal `json:"rate"` // percent
	Begin        time.Time       `json:"begin"`
	End          time.Time       `json:"end"`
	TotalStaked  decimal.Decimal `json:"total_staked"`
}

// Phase uses the same boundaries as reward accrual: a pool is over at its
// end second.
func (s Summary) Phase(now time.Time) Phase {
	switch {
	case now.Before(s.Begin):
		return NotStarted
	case now.Before(s.End):
		return Running
	default:
		return Ended
	}
}

// Status is the one-line state shown in listings: the start time when not
// started, the seconds remaining while running, otherwise "Ended".
func (s Summary) Status(now time.Time) string {
	switch s.Phase(now) {
	case NotStarted:
		return "starts " + s.Begin.UTC().Format(time.RFC3339)
	case Running:
		return fmt.Sprintf("%d seconds remaining", s.End.Unix()-now.Unix())
	default:
		return "Ended"
	}
}

// Position is an account's stake in a pool as last settled on the ledger.
type Position struct {
	OptedIn     bool            `json:"opted_in"`
	Staked      decimal.Decimal `json:"staked"`
	Rewards     decimal.Decimal `json:"rewards"`
	LastUpdated time.Time       `json:"last_updated"`

	// Estimated extrapolates Rewards to the time the position was read.
	Estimated *accrual.Update `json:"-"`
}

// Detail is a pool with the caller's position in it.
type Detail struct {
	Summary
	Position Position `json:"position"`
}

// Service reads pools from the ledger. Pass a *ledger.CachedLedger so asset
// parameters are fetched once.
type Service struct {
	ledger ledger.Ledger
	clock  func() time.Time
}

func NewService(l ledger.Ledger) *Service {
	return &Service{ledger: l, clock: time.Now}
}

// Pool loads the summary of poolID.
func (s *Service) Pool(ctx context.Context, poolID uint64) (*Summary, error) {
	app, err := s.ledger.ApplicationInformation(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("loading pool %d: %w", poolID, err)
	}
	return s.summarize(ctx, app)
}

// List returns the pools created by creator, skipping applications that are
// not staking pools.
func (s *Service) List(ctx context.Context, creator string) ([]Summary, error) {
	acct, err := s.ledger.AccountInformation(ctx, creator)
	if err != nil {
		return nil, fmt.Errorf("loading creator %s: %w", creator, err)
	}

	pools := make([]Summary, 0, len(acct.CreatedApps))
	for i := range acct.CreatedApps {
		sum, err := s.summarize(ctx, &acct.CreatedApps[i])
		if errors.Is(err, errno.ErrSnapshotMissing) {
			logger.Debug("skipping non-pool application", zap.Uint64("app_id", acct.CreatedApps[i].ID), zap.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		pools = append(pools, *sum)
	}
	return pools, nil
}

// Detail loads poolID together with account's position in it.
func (s *Service) Detail(ctx context.Context, poolID uint64, account string) (*Detail, error) {
	sum, err := s.Pool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	acct, err := s.ledger.AccountInformation(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", account, err)
	}

	d := &Detail{Summary: *sum, Position: Position{Staked: decimal.Zero, Rewards: decimal.Zero}}
	kvs, ok := acct.LocalState(poolID)
	if !ok {
		return d, nil
	}
	local, err := model.DecodeState(kvs)
	if err != nil {
		return nil, err
	}
	staked, _ := local.Uint(model.StateAmountStaked)
	rewarded, _ := local.Uint(model.StateAmountReward)
	lu, _ := local.Uint(model.StateLastUpdated)

	d.Position = Position{
		OptedIn: true,
		Staked:  sum.StakingAsset.Amount(staked),
		Rewards: sum.RewardAsset.Amount(rewarded),
	}
	if lu > 0 {
		d.Position.LastUpdated = time.Unix(int64(lu), 0).UTC()
	}

	snap := model.PoolRewardSnapshot{
		PoolID:               poolID,
		AmountStakedRaw:      staked,
		AmountRewardedRaw:    rewarded,
		BeginTimestamp:       sum.Begin.Unix(),
		EndTimestamp:         sum.End.Unix(),
		LastUpdatedTimestamp: int64(lu),
		FixedRateBasisPoints: sum.BasisPoints,
		RewardUnit:           sum.RewardAsset.Unit,
		RewardDecimals:       sum.RewardAsset.Decimals,
	}
	decimals := sum.RewardAsset.Decimals
	if decimals <= 0 {
		decimals = accrual.DefaultDecimals
	}
	if u, ok := accrual.TickWithDecimals(snap, s.clock(), decimals); ok {
		d.Position.Estimated = &u
	}
	return d, nil
}

func (s *Service) summarize(ctx context.Context, app *model.ApplicationInfo) (*Summary, error) {
	global, err := model.DecodeState(app.Params.GlobalState)
	if err != nil {
		return nil, err
	}

	var missing []string
	need := func(key string) uint64 {
		v, ok := global.Uint(key)
		if !ok {
			missing = append(missing, key)
		}
		return v
	}
	stakingID := need(model.StateStakedAsset)
	rewardID := need(model.StateRewardAsset)
	begin := need(model.StateBeginTime)
	end := need(model.StateEndTime)
	bp := need(model.StateFixedRate)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: application %d lacks %v", errno.ErrSnapshotMissing, app.ID, missing)
	}
	// absent until the first deposit
	total, _ := global.Uint(model.StateTotalStaked)

	stakingAsset, err := s.asset(ctx, stakingID)
	if err != nil {
		return nil, err
	}
	rewardAsset, err := s.asset(ctx, rewardID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		ID:           app.ID,
		StakingAsset: stakingAsset,
		RewardAsset:  rewardAsset,
		BasisPoints:  bp,
		Rate:         decimal.NewFromUint64(bp).Shift(-2),
		Begin:        time.Unix(int64(begin), 0).UTC(),
		End:          time.Unix(int64(end), 0).UTC(),
		TotalStaked:  stakingAsset.Amount(total),
	}, nil
}

func (s *Service) asset(ctx context.Context, id uint64) (Asset, error) {
	info, err := s.ledger.AssetInformation(ctx, id)
	if err != nil {
		return Asset{}, fmt.Errorf("loading asset %d: %w", id, err)
	}
	return Asset{
		ID:       id,
		Name:     info.Params.Name,
		Unit:     info.Params.UnitName,
		Decimals: info.Params.Decimals,
	}, nil
}
