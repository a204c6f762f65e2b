package accrual

import (
	"context"
	"sync"
	"time"

	"staking-client/internal/model"
	"staking-client/pkg/logger"
	"staking-client/pkg/monitor"

	"go.uber.org/zap"
)

// DefaultTickInterval is the wall clock cadence of the reward display.
const DefaultTickInterval = time.Second

// Renderer receives every accrual update.
type Renderer interface {
	Render(Update)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Update)

func (f RendererFunc) Render(u Update) { f(u) }

type Config struct {
	Decimals int32
	Interval time.Duration
	Metrics  *monitor.BusinessMetrics

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Engine periodically extrapolates the reward balance of one snapshot until
// the pool ends or Stop is called.
type Engine struct {
	snapshot model.PoolRewardSnapshot
	decimals int32
	interval time.Duration
	renderer Renderer
	metrics  *monitor.BusinessMetrics
	clock    func() time.Time

	mu      sync.Mutex
	latest  Update
	hasTick bool
	live    bool
	cancel  context.CancelFunc
	stopped bool

	done        chan struct{}
	refresh     chan struct{}
	refreshOnce sync.Once
	stopOnce    sync.Once
}

func NewEngine(snapshot model.PoolRewardSnapshot, cfg Config, r Renderer) *Engine {
	e := &Engine{
		snapshot: snapshot,
		decimals: cfg.Decimals,
		interval: cfg.Interval,
		renderer: r,
		metrics:  cfg.Metrics,
		clock:    cfg.Clock,
		done:     make(chan struct{}),
		refresh:  make(chan struct{}),
	}
	if e.decimals <= 0 {
		e.decimals = DefaultDecimals
	}
	if e.interval <= 0 {
		e.interval = DefaultTickInterval
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.renderer == nil {
		e.renderer = RendererFunc(func(Update) {})
	}
	return e
}

// Start runs the tick loop in a new goroutine. The first tick happens
// immediately. Calling Start more than once, or after Stop, does nothing.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil || e.stopped {
		return
	}
	ctx, e.cancel = context.WithCancel(ctx)
	go e.run(ctx)
}

// Stop cancels the tick loop and waits for it to exit. Safe to call any
// number of times.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		e.stopped = true
		cancel := e.cancel
		e.mu.Unlock()

		if cancel == nil {
			close(e.done)
			return
		}
		cancel()
		<-e.done
	})
}

// Done is closed once the tick loop has exited.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Refresh is closed when a pool seen live has ended: the snapshot is stale
// and should be reloaded from the server.
func (e *Engine) Refresh() <-chan struct{} { return e.refresh }

// Latest returns the last rendered update.
func (e *Engine) Latest() (Update, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.latest, e.hasTick
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	if e.Step(e.clock()) {
		return
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if e.Step(e.clock()) {
				return
			}
		}
	}
}

// Step performs a single tick at now and reports whether the loop should
// stop because the pool has ended.
func (e *Engine) Step(now time.Time) bool {
	u, ok := TickWithDecimals(e.snapshot, now, e.decimals)
	if !ok {
		e.countTick("noop")
		return now.Unix() >= e.snapshot.EndTimestamp
	}

	e.mu.Lock()
	wasLive := e.live
	if u.Regime == Live {
		e.live = true
	}
	e.latest = u
	e.hasTick = true
	e.mu.Unlock()

	e.renderer.Render(u)
	e.countTick(u.Regime.String())
	if e.metrics != nil {
		e.metrics.RewardsDisplayed.Set(u.Display.InexactFloat64())
	}

	if u.Regime != Ended {
		return false
	}
	if wasLive {
		e.refreshOnce.Do(func() {
			logger.Info("pool ended, snapshot is stale",
				zap.Uint64("pool_id", e.snapshot.PoolID),
				zap.String("rewards", u.String()),
			)
			close(e.refresh)
		})
	}
	return true
}

func (e *Engine) countTick(regime string) {
	if e.metrics != nil {
		e.metrics.AccrualTicksTotal.WithLabelValues(regime).Inc()
	}
}
