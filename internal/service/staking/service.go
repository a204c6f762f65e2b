package staking

import (
	"context"
	"fmt"

	"staking-client/internal/handler/request"
	"staking-client/internal/model"
	"staking-client/internal/service/ledger"
	"staking-client/pkg/errno"
	"staking-client/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// microAlgos per Algo
const algoDecimals = 6

// Executor runs one intent to confirmation.
type Executor interface {
	ExecuteIntent(ctx context.Context, intent model.Intent) (*model.ConfirmationResult, error)
}

// Service turns user actions into intents and human amounts into raw
// ledger amounts.
type Service struct {
	exec   Executor
	ledger ledger.Ledger
}

func NewService(exec Executor, l ledger.Ledger) *Service {
	return &Service{exec: exec, ledger: l}
}

// PoolCreated holds both steps of a pool deployment. Init is nil when the
// deployment confirmed but initialisation failed.
type PoolCreated struct {
	PoolID uint64
	Create *model.ConfirmationResult
	Init   *model.ConfirmationResult
}

func (s *Service) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (*model.ConfirmationResult, error) {
	return s.exec.ExecuteIntent(ctx, model.Intent{
		Kind:    model.IntentCreateAsset,
		Sender:  req.Sender,
		Payload: req,
	})
}

// CreatePool deploys a pool and, once the deployment is confirmed,
// initialises it with fixedRate percent.
func (s *Service) CreatePool(ctx context.Context, req request.CreatePoolRequest, fixedRate decimal.Decimal) (*PoolCreated, error) {
	if _, err := basisPoints(fixedRate); err != nil {
		return nil, err
	}

	res, err := s.exec.ExecuteIntent(ctx, model.Intent{
		Kind:    model.IntentCreatePool,
		Sender:  req.Sender,
		Payload: req,
	})
	if err != nil {
		return nil, err
	}
	if res.ApplicationIndex == 0 {
		return nil, fmt.Errorf("pool deployment %s confirmed without an application index", res.TxID)
	}
	created := &PoolCreated{PoolID: res.ApplicationIndex, Create: res}
	logger.Info("pool deployed", zap.Uint64("pool_id", created.PoolID), zap.String("txid", res.TxID))

	created.Init, err = s.InitPool(ctx, req.Sender, created.PoolID, fixedRate)
	if err != nil {
		return created, fmt.Errorf("initialising pool %d: %w", created.PoolID, err)
	}
	return created, nil
}

// InitPool funds pool with the minimum balance and the reward supply, and
// sets its fixed rate. fixedRate is a percent with at most two decimals.
func (s *Service) InitPool(ctx context.Context, sender string, poolID uint64, fixedRate decimal.Decimal) (*model.ConfirmationResult, error) {
	bp, err := basisPoints(fixedRate)
	if err != nil {
		return nil, err
	}
	logger.Debug("initialising pool", zap.Uint64("pool_id", poolID), zap.Uint64("basis_points", bp))
	return s.exec.ExecuteIntent(ctx, model.Intent{
		Kind:   model.IntentInitPool,
		PoolID: poolID,
		Sender: sender,
		Payload: request.InitPoolRequest{
			Sender:    sender,
			FixedRate: fixedRate.InexactFloat64(),
			PoolID:    poolID,
		},
	})
}

// Deposit stakes amount, in whole units of the pool's staking asset.
func (s *Service) Deposit(ctx context.Context, sender string, poolID uint64, amount decimal.Decimal) (*model.ConfirmationResult, error) {
	raw, err := s.stakingAmount(ctx, poolID, amount)
	if err != nil {
		return nil, err
	}
	return s.exec.ExecuteIntent(ctx, model.Intent{
		Kind:    model.IntentDeposit,
		PoolID:  poolID,
		Sender:  sender,
		Payload: request.DepositRequest{Sender: sender, Amount: raw},
	})
}

// Withdraw unstakes amount, or everything staked and rewarded when all is
// set (amount is then ignored).
func (s *Service) Withdraw(ctx context.Context, sender string, poolID uint64, amount decimal.Decimal, all bool) (*model.ConfirmationResult, error) {
	req := request.WithdrawRequest{Sender: sender, All: all}
	if !all {
		raw, err := s.stakingAmount(ctx, poolID, amount)
		if err != nil {
			return nil, err
		}
		req.Amount = raw
	}
	return s.exec.ExecuteIntent(ctx, model.Intent{
		Kind:    model.IntentWithdraw,
		PoolID:  poolID,
		Sender:  sender,
		Payload: req,
	})
}

func (s *Service) Claim(ctx context.Context, sender string, poolID uint64) (*model.ConfirmationResult, error) {
	return s.exec.ExecuteIntent(ctx, model.Intent{
		Kind:    model.IntentClaim,
		PoolID:  poolID,
		Sender:  sender,
		Payload: request.ClaimRequest{Sender: sender},
	})
}

// Balance returns the Algo balance of address.
func (s *Service) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	acct, err := s.ledger.AccountInformation(ctx, address)
	if err != nil {
		return decimal.Zero, fmt.Errorf("loading account %s: %w", address, err)
	}
	return decimal.NewFromUint64(acct.Amount).Shift(-algoDecimals), nil
}

func (s *Service) stakingAmount(ctx context.Context, poolID uint64, amount decimal.Decimal) (uint64, error) {
	app, err := s.ledger.ApplicationInformation(ctx, poolID)
	if err != nil {
		return 0, fmt.Errorf("loading pool %d: %w", poolID, err)
	}
	state, err := model.DecodeState(app.Params.GlobalState)
	if err != nil {
		return 0, err
	}
	assetID, ok := state.Uint(model.StateStakedAsset)
	if !ok {
		return 0, fmt.Errorf("%w: pool %d has no staking asset", errno.ErrInvalidIntent, poolID)
	}
	asset, err := s.ledger.AssetInformation(ctx, assetID)
	if err != nil {
		return 0, fmt.Errorf("loading asset %d: %w", assetID, err)
	}
	return ToRaw(amount, asset.Params.Decimals)
}

// ToRaw converts a whole-unit amount into base units of an asset with the
// given decimals. Amounts finer than one base unit are rejected.
func ToRaw(amount decimal.Decimal, decimals int32) (uint64, error) {
	if !amount.IsPositive() {
		return 0, fmt.Errorf("%w: amount must be positive", errno.ErrInvalidIntent)
	}
	raw := amount.Shift(decimals)
	if !raw.IsInteger() {
		return 0, fmt.Errorf("%w: %s has more than %d decimals", errno.ErrInvalidIntent, amount, decimals)
	}
	n := raw.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s is out of range", errno.ErrInvalidIntent, amount)
	}
	return n.Uint64(), nil
}

// basisPoints validates a percent rate and converts it the way the backend
// does (percent * 100).
func basisPoints(rate decimal.Decimal) (uint64, error) {
	bp := rate.Shift(2)
	if !rate.IsPositive() || bp.GreaterThan(decimal.NewFromInt(10000)) {
		return 0, fmt.Errorf("%w: fixed rate %s%% must be in (0, 100]", errno.ErrInvalidIntent, rate)
	}
	if !bp.IsInteger() {
		return 0, fmt.Errorf("%w: fixed rate %s%% is finer than a basis point", errno.ErrInvalidIntent, rate)
	}
	return uint64(bp.IntPart()), nil
}
