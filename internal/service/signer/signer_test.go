package signer

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"staking-client/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wallet struct {
	connected bool
	reject    bool
	short     bool
	delay     time.Duration
}

func (w *wallet) server(t *testing.T) *HTTPSigner {
	return w.serverWithTimeout(t, 5*time.Second)
}

func (w *wallet) serverWithTimeout(t *testing.T, timeout time.Duration) *HTTPSigner {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/connect", func(c *gin.Context) {
		w.connected = true
		c.Status(http.StatusNoContent)
	})
	r.GET("/v1/accounts", func(c *gin.Context) {
		if c.Query("ledger") != "SandNet" {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, []Account{{Address: "ALICE"}, {Address: "BOB"}})
	})
	r.POST("/v1/sign", func(c *gin.Context) {
		time.Sleep(w.delay)
		if w.reject {
			c.String(http.StatusForbidden, "user declined")
			return
		}
		var req signRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		out := model.SignedTransactionSet{}
		for i, txn := range req.Txns {
			if w.short && i > 0 {
				break
			}
			out = append(out, model.SignedTransaction{TxID: "ID-" + txn.Txn, Blob: "SIG-" + txn.Txn})
		}
		c.JSON(http.StatusOK, out)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewHTTPSigner(srv.URL, "SandNet", timeout)
}

func TestHTTPSigner(t *testing.T) {
	ctx := context.Background()
	w := &wallet{}
	s := w.server(t)

	require.NoError(t, s.Connect(ctx))
	assert.True(t, w.connected)

	accounts, err := s.Accounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Account{{Address: "ALICE"}, {Address: "BOB"}}, accounts)

	signed, err := s.SignTxn(ctx, model.UnsignedTransactionSet{{Txn: "A"}, {Txn: "B"}})
	require.NoError(t, err)
	assert.Equal(t, model.SignedTransactionSet{{TxID: "ID-A", Blob: "SIG-A"}, {TxID: "ID-B", Blob: "SIG-B"}}, signed)
}

func TestHTTPSignerRejection(t *testing.T) {
	w := &wallet{reject: true}
	s := w.server(t)

	signed, err := s.SignTxn(context.Background(), model.UnsignedTransactionSet{{Txn: "A"}})
	assert.True(t, errors.Is(err, ErrRejected))
	assert.Nil(t, signed)
}

func TestHTTPSignerDiscardsPartialSets(t *testing.T) {
	w := &wallet{short: true}
	s := w.server(t)

	signed, err := s.SignTxn(context.Background(), model.UnsignedTransactionSet{{Txn: "A"}, {Txn: "B"}})
	assert.Error(t, err)
	assert.Nil(t, signed)
}

func TestHTTPSignerWaitsForSlowApproval(t *testing.T) {
	w := &wallet{delay: 300 * time.Millisecond}
	s := w.serverWithTimeout(t, 100*time.Millisecond)

	require.NoError(t, s.Connect(context.Background()))
	signed, err := s.SignTxn(context.Background(), model.UnsignedTransactionSet{{Txn: "A"}})
	require.NoError(t, err)
	assert.Equal(t, model.SignedTransactionSet{{TxID: "ID-A", Blob: "SIG-A"}}, signed)
}

func TestHTTPSignerSignHonoursContext(t *testing.T) {
	w := &wallet{delay: 300 * time.Millisecond}
	s := w.server(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.SignTxn(ctx, model.UnsignedTransactionSet{{Txn: "A"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type countingSigner struct {
	calls int
}

func (c *countingSigner) Connect(context.Context) error { return nil }

func (c *countingSigner) Accounts(context.Context) ([]Account, error) { return nil, nil }

func (c *countingSigner) SignTxn(_ context.Context, txns model.UnsignedTransactionSet) (model.SignedTransactionSet, error) {
	c.calls++
	out := make(model.SignedTransactionSet, len(txns))
	for i := range txns {
		out[i] = model.SignedTransaction{TxID: "X", Blob: "Y"}
	}
	return out, nil
}

func newApproval(inner Signer, input string, interactive bool) (*ApprovalSigner, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &ApprovalSigner{
		Signer:      inner,
		in:          strings.NewReader(input),
		out:         out,
		interactive: func() bool { return interactive },
	}, out
}

func TestApprovalSigner(t *testing.T) {
	set := model.UnsignedTransactionSet{{Txn: strings.Repeat("Q", 80)}}

	tests := []struct {
		name        string
		input       string
		interactive bool
		wantCalls   int
		wantErr     bool
	}{
		{"yes", "y\n", true, 1, false},
		{"yes without newline", "YES", true, 1, false},
		{"no", "n\n", true, 0, true},
		{"empty answer defaults to no", "\n", true, 0, true},
		{"no terminal", "y\n", false, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &countingSigner{}
			a, out := newApproval(inner, tt.input, tt.interactive)

			signed, err := a.SignTxn(context.Background(), set)
			assert.Equal(t, tt.wantCalls, inner.calls)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRejected)
				assert.Nil(t, signed)
				return
			}
			require.NoError(t, err)
			assert.Len(t, signed, 1)
			assert.Contains(t, out.String(), "Sign 1 transaction(s)?")
			assert.Contains(t, out.String(), "...", "long descriptors are abbreviated")
		})
	}
}
