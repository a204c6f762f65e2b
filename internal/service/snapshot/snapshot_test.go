package snapshot

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"staking-client/internal/model"
	"staking-client/pkg/errno"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poolPage = `<!DOCTYPE html>
<html><body>
<div class="pool">
  <p>Staked: <a id="amount_staked" value="1500000">1.5 STK</a></p>
  <p>Rewards: <a id="current_rewards" value="250000">0.25 <b>RWD</b></a></p>
  <input type="hidden" id="begin_timestamp" value="1700000000">
  <input type="hidden" id="end_timestamp" value="1731557600">
  <input type="hidden" id="last_updated" value=" 1700000500 ">
  <span id="fixed_rate" value="500">5.0%</span>
</div>
</body></html>`

func TestParsePage(t *testing.T) {
	snap, err := ParsePage(strings.NewReader(poolPage))
	require.NoError(t, err)
	assert.Equal(t, model.PoolRewardSnapshot{
		AmountStakedRaw:      1_500_000,
		AmountRewardedRaw:    250_000,
		BeginTimestamp:       1_700_000_000,
		EndTimestamp:         1_731_557_600,
		LastUpdatedTimestamp: 1_700_000_500,
		FixedRateBasisPoints: 500,
		RewardUnit:           "RWD",
	}, *snap)
}

func TestParsePageMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		page    string
		wantErr bool
		missing string
	}{
		{"no last update", strings.Replace(poolPage, `value=" 1700000500 "`, `value=""`, 1), false, ""},
		{"no fixed rate", strings.Replace(poolPage, `id="fixed_rate" value="500"`, `id="fixed_rate"`, 1), true, "fixed_rate"},
		{"garbage staked", strings.Replace(poolPage, `value="1500000"`, `value="1.5"`, 1), true, "amount_staked"},
		{"empty page", "<html></html>", true, "begin_timestamp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := ParsePage(strings.NewReader(tt.page))
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Zero(t, snap.LastUpdatedTimestamp)
				return
			}
			assert.ErrorIs(t, err, errno.ErrSnapshotMissing)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestPageSource(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/pool/:id", func(c *gin.Context) {
		account, err := c.Cookie("account")
		if err != nil || account != "ALICE" || c.Param("id") != "42" {
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(poolPage))
	})
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "index") })
	srv := httptest.NewServer(r)
	defer srv.Close()

	src := NewPageSource(srv.URL, 5*time.Second)
	snap, err := src.Snapshot(context.Background(), 42, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), snap.PoolID)
	assert.Equal(t, uint64(1_500_000), snap.AmountStakedRaw)

	// without the right cookie the backend redirects to the index page
	_, err = src.Snapshot(context.Background(), 42, "MALLORY")
	assert.ErrorIs(t, err, errno.ErrSnapshotMissing)
}

type stubLedger struct {
	app    *model.ApplicationInfo
	acct   *model.AccountInfo
	asset  *model.AssetInfo
	appErr error
}

func (s *stubLedger) Status(context.Context) (*model.NodeStatus, error) { return nil, nil }

func (s *stubLedger) PendingTransaction(context.Context, string) (*model.PendingTransaction, error) {
	return nil, nil
}

func (s *stubLedger) WaitForBlockAfter(context.Context, uint64) (*model.NodeStatus, error) {
	return nil, nil
}

func (s *stubLedger) AccountInformation(context.Context, string) (*model.AccountInfo, error) {
	return s.acct, nil
}

func (s *stubLedger) AssetInformation(context.Context, uint64) (*model.AssetInfo, error) {
	return s.asset, nil
}

func (s *stubLedger) ApplicationInformation(context.Context, uint64) (*model.ApplicationInfo, error) {
	return s.app, s.appErr
}

func kv(key string, v uint64) model.TealKeyValue {
	return model.TealKeyValue{
		Key:   base64.StdEncoding.EncodeToString([]byte(key)),
		Value: model.TealValue{Type: 2, Uint: v},
	}
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		app: &model.ApplicationInfo{ID: 42, Params: model.ApplicationParams{GlobalState: []model.TealKeyValue{
			kv("SA", 10), kv("RA", 11), kv("TS", 9_000_000), kv("BT", 1_700_000_000), kv("ET", 1_731_557_600), kv("FR", 500),
		}}},
		acct: &model.AccountInfo{Address: "ALICE", AppsLocalState: []model.ApplicationLocalState{
			{ID: 7},
			{ID: 42, KeyValue: []model.TealKeyValue{kv("AS", 1_500_000), kv("AR", 250_000), kv("LU", 1_700_000_500)}},
		}},
		asset: &model.AssetInfo{Index: 11, Params: model.AssetParams{UnitName: "RWD", Decimals: 6}},
	}
}

func TestLedgerSource(t *testing.T) {
	src := NewLedgerSource(newStubLedger())
	snap, err := src.Snapshot(context.Background(), 42, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, model.PoolRewardSnapshot{
		PoolID:               42,
		AmountStakedRaw:      1_500_000,
		AmountRewardedRaw:    250_000,
		BeginTimestamp:       1_700_000_000,
		EndTimestamp:         1_731_557_600,
		LastUpdatedTimestamp: 1_700_000_500,
		FixedRateBasisPoints: 500,
		RewardUnit:           "RWD",
		RewardDecimals:       6,
	}, *snap)
}

func TestLedgerSourceNotOptedIn(t *testing.T) {
	l := newStubLedger()
	l.acct.AppsLocalState = nil

	snap, err := NewLedgerSource(l).Snapshot(context.Background(), 42, "ALICE")
	require.NoError(t, err)
	assert.Zero(t, snap.AmountStakedRaw)
	assert.Zero(t, snap.LastUpdatedTimestamp)
}

func TestLedgerSourceErrors(t *testing.T) {
	l := newStubLedger()
	l.app.Params.GlobalState = l.app.Params.GlobalState[:3]
	_, err := NewLedgerSource(l).Snapshot(context.Background(), 42, "ALICE")
	assert.ErrorIs(t, err, errno.ErrSnapshotMissing)

	l = newStubLedger()
	l.appErr = errors.New("application does not exist")
	_, err = NewLedgerSource(l).Snapshot(context.Background(), 42, "ALICE")
	assert.ErrorContains(t, err, "loading pool 42")
}
