package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"staking-client/internal/model"
)

// HTTPSigner drives a wallet daemon over HTTP. The daemon owns the keys and
// its own approval UI.
type HTTPSigner struct {
	baseURL string
	ledger  string
	http    *http.Client
	timeout time.Duration
}

// NewHTTPSigner returns a signer for the daemon at baseURL. timeout bounds
// Connect and Accounts; SignTxn waits for the user's approval for as long
// as ctx allows.
func NewHTTPSigner(baseURL, ledger string, timeout time.Duration) *HTTPSigner {
	return &HTTPSigner{
		baseURL: strings.TrimRight(baseURL, "/"),
		ledger:  ledger,
		http:    &http.Client{},
		timeout: timeout,
	}
}

func (s *HTTPSigner) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *HTTPSigner) Connect(ctx context.Context) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.do(ctx, http.MethodPost, "/v1/connect", map[string]string{"ledger": s.ledger}, nil)
}

func (s *HTTPSigner) Accounts(ctx context.Context) ([]Account, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	var accounts []Account
	if err := s.do(ctx, http.MethodGet, "/v1/accounts?ledger="+url.QueryEscape(s.ledger), nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

type signRequest struct {
	Ledger string                       `json:"ledger"`
	Txns   model.UnsignedTransactionSet `json:"txns"`
}

func (s *HTTPSigner) SignTxn(ctx context.Context, txns model.UnsignedTransactionSet) (model.SignedTransactionSet, error) {
	var signed model.SignedTransactionSet
	if err := s.do(ctx, http.MethodPost, "/v1/sign", signRequest{Ledger: s.ledger, Txns: txns}, &signed); err != nil {
		return nil, err
	}
	if len(signed) != len(txns) {
		return nil, fmt.Errorf("signer returned %d signatures for %d transactions", len(signed), len(txns))
	}
	for i, stx := range signed {
		if stx.TxID == "" || stx.Blob == "" {
			return nil, fmt.Errorf("signer returned an incomplete signature at index %d", i)
		}
	}
	return signed, nil
}

func (s *HTTPSigner) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("signer %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("signer %s: reading response: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrRejected, strings.TrimSpace(string(data)))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("signer %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("signer %s: decoding response: %w", path, err)
	}
	return nil
}
