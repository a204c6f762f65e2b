package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"staking-client/internal/model"
	"staking-client/pkg/errno"
	"staking-client/pkg/logger"

	"go.uber.org/zap"
)

const submitPath = "/submit"

// Client talks to the backend that builds unsigned transactions and
// broadcasts signed ones.
type Client struct {
	baseURL        string
	http           *http.Client
	requestTimeout time.Duration
	account        string
}

// NewClient returns a backend client. requestTimeout bounds the intent
// requests only; Submit is bounded by its ctx alone.
func NewClient(baseURL string, requestTimeout time.Duration) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{},
		requestTimeout: requestTimeout,
	}
}

// SetAccount makes every request carry the account cookie, as the pages
// served by the backend expect.
func (c *Client) SetAccount(address string) {
	c.account = address
}

// RequestTransactions posts payload to endpoint and returns the unsigned
// transaction set. Any non-success answer is reported as errno.ErrRequest.
func (c *Client) RequestTransactions(ctx context.Context, endpoint string, payload interface{}) (model.UnsignedTransactionSet, error) {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}
	status, body, err := c.postJSON(ctx, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errno.ErrRequest, endpoint, err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: %s returned %d: %s", errno.ErrRequest, endpoint, status, snippet(body))
	}

	var set model.UnsignedTransactionSet
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("%w: %s: decoding transactions: %v", errno.ErrRequest, endpoint, err)
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errno.ErrRequest, endpoint, err)
	}

	logger.Debug("unsigned transactions received", zap.String("endpoint", endpoint), zap.Int("count", len(set)))
	return set, nil
}

// Submit broadcasts signed through the backend and returns the id of the
// first transaction in the set.
func (c *Client) Submit(ctx context.Context, signed model.SignedTransactionSet) (string, error) {
	status, body, err := c.postJSON(ctx, submitPath, signed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errno.ErrSubmission, err)
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("%w: backend returned %d: %s", errno.ErrSubmission, status, snippet(body))
	}

	var resp model.SubmitResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", errno.ErrSubmission, err)
	}
	if !resp.Success {
		return "", fmt.Errorf("%w: %s", errno.ErrSubmission, resp.Message)
	}
	return signed.TxID(), nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.account != "" {
		req.AddCookie(&http.Cookie{Name: "account", Value: c.account})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
