package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"staking-client/internal/model"
	"staking-client/pkg/errno"

	"golang.org/x/net/html"
)

// Element ids of the server-rendered pool page.
const (
	idAmountStaked   = "amount_staked"
	idCurrentRewards = "current_rewards"
	idBeginTimestamp = "begin_timestamp"
	idEndTimestamp   = "end_timestamp"
	idLastUpdated    = "last_updated"
	idFixedRate      = "fixed_rate"
)

// PageSource reads the snapshot embedded as value attributes in the pool
// page rendered by the backend. The selected account travels in the
// account cookie, as for a browser.
type PageSource struct {
	baseURL string
	http    *http.Client
}

func NewPageSource(baseURL string, timeout time.Duration) *PageSource {
	return &PageSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (p *PageSource) Snapshot(ctx context.Context, poolID uint64, account string) (*model.PoolRewardSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/pool/%d", p.baseURL, poolID), nil)
	if err != nil {
		return nil, err
	}
	req.AddCookie(&http.Cookie{Name: "account", Value: account})

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching pool page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching pool page: status %d", resp.StatusCode)
	}

	snap, err := ParsePage(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	snap.PoolID = poolID
	return snap, nil
}

// ParsePage extracts a snapshot from a pool page. A missing last_updated
// value means the account never interacted with the pool.
func ParsePage(r io.Reader) (*model.PoolRewardSnapshot, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing pool page: %w", err)
	}

	elems := make(map[string]*html.Node)
	collect(doc, elems)

	var (
		snap model.PoolRewardSnapshot
		errs []string
	)
	uintField := func(id string, dst *uint64, required bool) {
		v, ok := valueOf(elems[id])
		if !ok {
			if required {
				errs = append(errs, id)
			}
			return
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, id)
			return
		}
		*dst = n
	}
	intField := func(id string, dst *int64, required bool) {
		var n uint64
		uintField(id, &n, required)
		*dst = int64(n)
	}

	uintField(idAmountStaked, &snap.AmountStakedRaw, true)
	uintField(idCurrentRewards, &snap.AmountRewardedRaw, true)
	intField(idBeginTimestamp, &snap.BeginTimestamp, true)
	intField(idEndTimestamp, &snap.EndTimestamp, true)
	intField(idLastUpdated, &snap.LastUpdatedTimestamp, false)
	uintField(idFixedRate, &snap.FixedRateBasisPoints, true)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", errno.ErrSnapshotMissing, strings.Join(errs, ", "))
	}

	if n := elems[idCurrentRewards]; n != nil {
		if words := strings.Fields(text(n)); len(words) > 0 {
			snap.RewardUnit = words[len(words)-1]
		}
	}
	return &snap, nil
}

func collect(n *html.Node, into map[string]*html.Node) {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" {
				if _, dup := into[a.Val]; !dup {
					into[a.Val] = n
				}
				break
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, into)
	}
}

func valueOf(n *html.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == "value" {
			v := strings.TrimSpace(a.Val)
			return v, v != ""
		}
	}
	return "", false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
