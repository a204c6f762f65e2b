package staking

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"staking-client/internal/handler/request"
	"staking-client/internal/model"
	"staking-client/internal/service/ledger"
	"staking-client/pkg/errno"
	"staking-client/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	intents []model.Intent
	results map[model.IntentKind]*model.ConfirmationResult
	errs    map[model.IntentKind]error
}

func (f *fakeExecutor) ExecuteIntent(_ context.Context, intent model.Intent) (*model.ConfirmationResult, error) {
	f.intents = append(f.intents, intent)
	if err := f.errs[intent.Kind]; err != nil {
		return nil, err
	}
	if res := f.results[intent.Kind]; res != nil {
		return res, nil
	}
	return &model.ConfirmationResult{TxID: "TX-" + string(intent.Kind), ConfirmedRound: 10}, nil
}

type poolLedger struct {
	ledger.Ledger
	decimals int32
}

func (p poolLedger) ApplicationInformation(_ context.Context, id uint64) (*model.ApplicationInfo, error) {
	if id != 42 {
		return nil, errors.New("application does not exist")
	}
	key := base64.StdEncoding.EncodeToString([]byte(model.StateStakedAsset))
	return &model.ApplicationInfo{ID: id, Params: model.ApplicationParams{GlobalState: []model.TealKeyValue{
		{Key: key, Value: model.TealValue{Type: 2, Uint: 10}},
	}}}, nil
}

func (p poolLedger) AssetInformation(_ context.Context, id uint64) (*model.AssetInfo, error) {
	return &model.AssetInfo{Index: id, Params: model.AssetParams{Decimals: p.decimals, UnitName: "STK"}}, nil
}

func (p poolLedger) AccountInformation(_ context.Context, addr string) (*model.AccountInfo, error) {
	return &model.AccountInfo{Address: addr, Amount: 12_345_678}, nil
}

func newService() (*Service, *fakeExecutor) {
	exec := &fakeExecutor{
		results: map[model.IntentKind]*model.ConfirmationResult{},
		errs:    map[model.IntentKind]error{},
	}
	return NewService(exec, poolLedger{decimals: 6}), exec
}

func TestDeposit(t *testing.T) {
	svc, exec := newService()

	res, err := svc.Deposit(context.Background(), "ALICE", 42, decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.Equal(t, "TX-deposit", res.TxID)

	require.Len(t, exec.intents, 1)
	intent := exec.intents[0]
	assert.Equal(t, "/42/deposit", intent.Endpoint())
	assert.Equal(t, request.DepositRequest{Sender: "ALICE", Amount: 1_500_000}, intent.Payload)
}

func TestDepositRejectsBadAmounts(t *testing.T) {
	svc, exec := newService()
	ctx := context.Background()

	for _, amount := range []string{"0", "-1", "0.0000001"} {
		_, err := svc.Deposit(ctx, "ALICE", 42, decimal.RequireFromString(amount))
		assert.ErrorIs(t, err, errno.ErrInvalidIntent, amount)
	}
	_, err := svc.Deposit(ctx, "ALICE", 7, decimal.NewFromInt(1))
	assert.ErrorContains(t, err, "loading pool 7")
	assert.Empty(t, exec.intents)
}

func TestWithdraw(t *testing.T) {
	svc, exec := newService()
	ctx := context.Background()

	_, err := svc.Withdraw(ctx, "ALICE", 42, decimal.RequireFromString("2"), false)
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, "ALICE", 42, decimal.Zero, true)
	require.NoError(t, err)

	require.Len(t, exec.intents, 2)
	assert.Equal(t, request.WithdrawRequest{Sender: "ALICE", Amount: 2_000_000}, exec.intents[0].Payload)
	assert.Equal(t, request.WithdrawRequest{Sender: "ALICE", All: true}, exec.intents[1].Payload)

	body, err := json.Marshal(exec.intents[1].Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sender":"ALICE","all":true}`, string(body))
}

func TestClaim(t *testing.T) {
	svc, exec := newService()
	_, err := svc.Claim(context.Background(), "ALICE", 42)
	require.NoError(t, err)
	assert.Equal(t, "/42/claim", exec.intents[0].Endpoint())
	assert.Equal(t, "intent:claim:42:ALICE", exec.intents[0].LockKey())
}

func TestCreatePoolChainsInit(t *testing.T) {
	svc, exec := newService()
	exec.results[model.IntentCreatePool] = &model.ConfirmationResult{TxID: "DEPLOY", ApplicationIndex: 77}

	begin := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := request.CreatePoolRequest{Sender: "ALICE", StakingAsset: 10, RewardAsset: 11, Begin: begin, End: begin.AddDate(1, 0, 0)}

	created, err := svc.CreatePool(context.Background(), req, decimal.RequireFromString("5.25"))
	require.NoError(t, err)
	assert.Equal(t, uint64(77), created.PoolID)
	assert.Equal(t, "DEPLOY", created.Create.TxID)
	require.NotNil(t, created.Init)

	require.Len(t, exec.intents, 2)
	assert.Equal(t, "/create_pool", exec.intents[0].Endpoint())
	assert.Equal(t, "/init_pool", exec.intents[1].Endpoint())
	assert.Equal(t, request.InitPoolRequest{Sender: "ALICE", FixedRate: 5.25, PoolID: 77}, exec.intents[1].Payload)

	body, err := json.Marshal(exec.intents[0].Payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sender":"ALICE","staking":"10","reward":"11","begin":"2026-01-01T00:00:00Z","end":"2027-01-01T00:00:00Z"}`, string(body))
}

func TestCreatePoolFailures(t *testing.T) {
	begin := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := request.CreatePoolRequest{Sender: "ALICE", StakingAsset: 10, RewardAsset: 11, Begin: begin, End: begin.Add(time.Hour)}
	ctx := context.Background()

	t.Run("rate finer than a basis point", func(t *testing.T) {
		svc, exec := newService()
		_, err := svc.CreatePool(ctx, req, decimal.RequireFromString("5.255"))
		assert.ErrorIs(t, err, errno.ErrInvalidIntent)
		assert.Empty(t, exec.intents)
	})

	t.Run("no application index", func(t *testing.T) {
		svc, exec := newService()
		_, err := svc.CreatePool(ctx, req, decimal.NewFromInt(5))
		assert.Error(t, err)
		assert.Len(t, exec.intents, 1, "init is not attempted")
	})

	t.Run("init declined", func(t *testing.T) {
		svc, exec := newService()
		exec.results[model.IntentCreatePool] = &model.ConfirmationResult{ApplicationIndex: 77}
		exec.errs[model.IntentInitPool] = errno.ErrSigningDeclined

		created, err := svc.CreatePool(ctx, req, decimal.NewFromInt(5))
		assert.ErrorIs(t, err, errno.ErrSigningDeclined)
		require.NotNil(t, created)
		assert.Equal(t, uint64(77), created.PoolID)
		assert.Nil(t, created.Init)
	})
}

func TestBalance(t *testing.T) {
	svc, _ := newService()
	bal, err := svc.Balance(context.Background(), "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "12.345678", bal.String())
}

func TestToRaw(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int32
		want     uint64
		wantErr  bool
	}{
		{"1", 0, 1, false},
		{"1.5", 6, 1_500_000, false},
		{"0.000001", 6, 1, false},
		{"0.0000001", 6, 0, true},
		{"18446744073709551616", 0, 0, true},
		{"0", 6, 0, true},
	}
	for _, tt := range tests {
		got, err := ToRaw(decimal.RequireFromString(tt.amount), tt.decimals)
		if tt.wantErr {
			assert.ErrorIs(t, err, errno.ErrInvalidIntent, tt.amount)
			continue
		}
		require.NoError(t, err, tt.amount)
		assert.Equal(t, tt.want, got, tt.amount)
	}
}

func TestRequestValidation(t *testing.T) {
	begin := time.Now()
	tests := []struct {
		name    string
		req     interface{}
		wantMsg string
	}{
		{"withdraw without amount", request.WithdrawRequest{Sender: "ALICE"}, "amount"},
		{"pool ends before it begins", request.CreatePoolRequest{Sender: "A", StakingAsset: 1, RewardAsset: 2, Begin: begin, End: begin.Add(-time.Hour)}, "end"},
		{"rate above 100", request.InitPoolRequest{Sender: "A", FixedRate: 101, PoolID: 1}, "fixed-rate"},
		{"asset without unit", request.CreateAssetRequest{Sender: "A", Name: "Reward", Total: 1}, "unit_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Struct(tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	assert.NoError(t, validator.Struct(request.WithdrawRequest{Sender: "ALICE", All: true}))
	assert.NoError(t, validator.Struct(request.DepositRequest{Sender: "ALICE", Amount: 1}))
}
