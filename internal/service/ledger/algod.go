package ledger

import (
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

const tokenHeader = "X-Algo-API-Token"

// APIError is a non-2xx answer from the node.
type APIError struct {
	Status  int
	Path    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("algod %s: %d %s", e.Path, e.Status, e.Message)
}

// AlgodClient queries an algod REST endpoint.
type AlgodClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewAlgodClient(baseURL, token string, timeout time.Duration) *AlgodClient {
	return &AlgodClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient replaces the transport, mostly for tests.
func (c *AlgodClient) WithHTTPClient(hc *http.Client) *AlgodClient {
	c.http = hc
	return c
}

func (c *AlgodClient) Status(ctx context.Context) (*model.NodeStatus, error) {
	var status model.NodeStatus
	if err := c.get(ctx, "/v2/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *AlgodClient) PendingTransaction(ctx context.Context, txid string) (*model.PendingTransaction, error) {
	var pending model.PendingTransaction
	if err := c.get(ctx, "/v2/transactions/pending/"+url.PathEscape(txid), &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

func (c *AlgodClient) WaitForBlockAfter(ctx context.Context, round uint64) (*model.NodeStatus, error) {
	var status model.NodeStatus
	if err := c.get(ctx, fmt.Sprintf("/v2/status/wait-for-block-after/%d", round), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *AlgodClient) AccountInformation(ctx context.Context, address string) (*model.AccountInfo, error) {
	var info model.AccountInfo
	if err := c.get(ctx, "/v2/accounts/"+url.PathEscape(address), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *AlgodClient) AssetInformation(ctx context.Context, assetID uint64) (*model.AssetInfo, error) {
	var info model.AssetInfo
	if err := c.get(ctx, fmt.Sprintf("/v2/assets/%d", assetID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *AlgodClient) ApplicationInformation(ctx context.Context, appID uint64) (*model.ApplicationInfo, error) {
	var info model.ApplicationInfo
	if err := c.get(ctx, fmt.Sprintf("/v2/applications/%d", appID), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *AlgodClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request %s: %w", path, err)
	}
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("algod %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("reading algod %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Path: path}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding algod %s: %w", path, err)
	}
	return nil
}
