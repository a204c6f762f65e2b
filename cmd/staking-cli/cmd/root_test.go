package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"staking-client/internal/model"
	"staking-client/internal/service/accrual"
	"staking-client/internal/service/orchestrator"
	"staking-client/internal/service/pool"
	"staking-client/pkg/errno"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "timeout suggests reconcile",
			err: fmt.Errorf("deposit: %w", &orchestrator.ConfirmationTimeoutError{
				TxID: "TX1", StartRound: 100, LastRound: 105,
			}),
			want: "Transaction TX1 was not confirmed by round 105. It may still confirm; check with: staking-cli reconcile TX1",
		},
		{
			name: "declined",
			err:  fmt.Errorf("%w: user rejected", errno.ErrSigningDeclined),
			want: "Signing declined, nothing was submitted.",
		},
		{
			name: "in flight",
			err:  errno.ErrIntentInFlight,
			want: "The same action is already waiting for confirmation.",
		},
		{
			name: "no account",
			err:  errno.ErrNoAccount,
			want: "No account selected. Run: staking-cli accounts, then staking-cli select <address>",
		},
		{
			name: "coded",
			err:  fmt.Errorf("%w: 502", errno.ErrSubmission),
			want: fmt.Sprintf("Error %d: transaction submission failed: 502", errno.ErrSubmission.Code),
		},
		{
			name: "plain",
			err:  errors.New("boom"),
			want: "Error: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err))
		})
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, &model.ConfirmationResult{TxID: "TX1", ConfirmedRound: 1002, Rounds: 2})
	assert.Equal(t, "Confirmed TX1 in round 1002 after 2 round(s)\n", buf.String())

	buf.Reset()
	printResult(&buf, &model.ConfirmationResult{TxID: "TX2", ConfirmedRound: 7})
	assert.Equal(t, "Confirmed TX2 in round 7\n", buf.String())
}

func TestLineRendererNonInteractive(t *testing.T) {
	var buf bytes.Buffer
	r := newLineRenderer(&buf)
	r.Render(accrual.Update{Display: decimal.RequireFromString("1.5"), Decimals: 6, Unit: "RWD", Regime: accrual.Live})
	r.finish()
	assert.Equal(t, "Rewards: 1.500000 RWD (live)\n", buf.String())
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"accounts", "select", "balance", "create-asset", "create-pool", "init-pool",
		"deposit", "withdraw", "claim", "reconcile", "rewards", "serve", "pools", "pool",
	} {
		assert.True(t, names[want], want)
	}
}

func samplePool() pool.Summary {
	return pool.Summary{
		ID:           42,
		StakingAsset: pool.Asset{ID: 10, Unit: "STK", Decimals: 6},
		RewardAsset:  pool.Asset{ID: 11, Unit: "RWD", Decimals: 6},
		BasisPoints:  525,
		Rate:         decimal.RequireFromString("5.25"),
		Begin:        time.Unix(1_700_000_000, 0).UTC(),
		End:          time.Unix(1_700_003_600, 0).UTC(),
		TotalStaked:  decimal.RequireFromString("9"),
	}
}

func TestPrintPools(t *testing.T) {
	var buf bytes.Buffer
	printPools(&buf, []pool.Summary{samplePool()}, time.Unix(1_700_000_600, 0))
	assert.Equal(t, "42\tstake STK, earn RWD at 5.25%\t3000 seconds remaining\n", buf.String())

	buf.Reset()
	printPools(&buf, nil, time.Now())
	assert.Equal(t, "No pools.\n", buf.String())
}

func TestPrintPoolDetail(t *testing.T) {
	estimate := accrual.Update{Display: decimal.RequireFromString("1.25"), Decimals: 6, Unit: "RWD", Regime: accrual.Live}
	d := &pool.Detail{
		Summary: samplePool(),
		Position: pool.Position{
			OptedIn:     true,
			Staked:      decimal.RequireFromString("100"),
			Rewards:     decimal.RequireFromString("1"),
			LastUpdated: time.Unix(1_700_000_000, 0).UTC(),
			Estimated:   &estimate,
		},
	}
	var buf bytes.Buffer
	printPoolDetail(&buf, d, time.Unix(1_700_003_600, 0))
	out := buf.String()
	assert.Contains(t, out, "Pool 42\n")
	assert.Contains(t, out, "Rate:    5.25%")
	assert.Contains(t, out, "Status:  Ended")
	assert.Contains(t, out, "Staked:    100 STK")
	assert.Contains(t, out, "Rewards:   1 RWD as of 2023-11-14T22:13:20Z")
	assert.Contains(t, out, "Estimated: 1.250000 RWD")

	buf.Reset()
	d.Position = pool.Position{}
	printPoolDetail(&buf, d, time.Unix(1_699_999_000, 0))
	assert.Contains(t, buf.String(), "Status:  starts 2023-11-14T22:13:20Z")
	assert.Contains(t, buf.String(), "Not opted in.")
}
