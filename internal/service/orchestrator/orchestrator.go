package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staking-client/internal/model"
	"staking-client/internal/service/signer"
	"staking-client/pkg/errno"
	"staking-client/pkg/logger"
	"staking-client/pkg/monitor"
	"staking-client/pkg/utils/lock"
	"staking-client/pkg/validator"

	"go.uber.org/zap"
)

// DefaultConfirmationRounds bounds how long a submitted transaction is
// waited for.
const DefaultConfirmationRounds = 5

// Backend builds unsigned transactions and broadcasts signed ones.
type Backend interface {
	RequestTransactions(ctx context.Context, endpoint string, payload interface{}) (model.UnsignedTransactionSet, error)
	Submit(ctx context.Context, signed model.SignedTransactionSet) (string, error)
}

// Ledger is the subset of the node API the confirmation loop needs.
type Ledger interface {
	Status(ctx context.Context) (*model.NodeStatus, error)
	PendingTransaction(ctx context.Context, txid string) (*model.PendingTransaction, error)
	WaitForBlockAfter(ctx context.Context, round uint64) (*model.NodeStatus, error)
}

// Indicator is the transient "waiting for confirmation" display.
// Hide may be called more than once.
type Indicator interface {
	Show()
	Hide()
}

type nopIndicator struct{}

func (nopIndicator) Show() {}
func (nopIndicator) Hide() {}

type Config struct {
	ConfirmationRounds uint64
	LockTTL            time.Duration
	Locker             lock.Locker
	Indicator          Indicator
	Metrics            *monitor.BusinessMetrics
}

// Orchestrator drives one intent from backend request to ledger confirmation.
type Orchestrator struct {
	backend   Backend
	signer    signer.Signer
	ledger    Ledger
	locker    lock.Locker
	indicator Indicator
	metrics   *monitor.BusinessMetrics
	rounds    uint64
	lockTTL   time.Duration
}

func New(cfg Config, backend Backend, s signer.Signer, l Ledger) *Orchestrator {
	o := &Orchestrator{
		backend:   backend,
		signer:    s,
		ledger:    l,
		locker:    cfg.Locker,
		indicator: cfg.Indicator,
		metrics:   cfg.Metrics,
		rounds:    cfg.ConfirmationRounds,
		lockTTL:   cfg.LockTTL,
	}
	if o.locker == nil {
		o.locker = lock.NewLocalLock()
	}
	if o.indicator == nil {
		o.indicator = nopIndicator{}
	}
	if o.rounds == 0 {
		o.rounds = DefaultConfirmationRounds
	}
	return o
}

// ExecuteIntent requests, signs, submits and confirms the transactions for
// intent. At most one execution per intent lock key runs at a time; a second
// caller gets errno.ErrIntentInFlight.
func (o *Orchestrator) ExecuteIntent(ctx context.Context, intent model.Intent) (*model.ConfirmationResult, error) {
	if err := validateIntent(intent); err != nil {
		return nil, err
	}

	key := intent.LockKey()
	acquired, err := o.locker.Acquire(ctx, key, o.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquiring intent lock: %w", err)
	}
	if !acquired {
		if o.metrics != nil {
			o.metrics.InFlightRejections.WithLabelValues(string(intent.Kind)).Inc()
		}
		return nil, fmt.Errorf("%w: %s", errno.ErrIntentInFlight, key)
	}
	defer func() {
		if err := o.locker.Release(context.WithoutCancel(ctx), key); err != nil {
			logger.Error("releasing intent lock failed", zap.String("key", key), zap.Error(err))
		}
	}()

	start := time.Now()
	res, err := o.execute(ctx, intent)
	o.observe(intent.Kind, start, err)
	return res, err
}

func (o *Orchestrator) execute(ctx context.Context, intent model.Intent) (*model.ConfirmationResult, error) {
	endpoint := intent.Endpoint()

	// 1. Unsigned transactions from the backend
	txns, err := o.backend.RequestTransactions(ctx, endpoint, intent.Payload)
	if err != nil {
		if !errors.Is(err, errno.ErrRequest) {
			err = fmt.Errorf("%w: %v", errno.ErrRequest, err)
		}
		logger.Warn("intent request failed", zap.String("kind", string(intent.Kind)), zap.Error(err))
		return nil, err
	}

	// 2. Signatures; a failed or partial signing discards the whole set
	signed, err := o.signer.SignTxn(ctx, txns)
	if err == nil && len(signed) != len(txns) {
		err = fmt.Errorf("signer returned %d of %d transactions", len(signed), len(txns))
	}
	if err != nil {
		logger.Info("signing declined", zap.String("kind", string(intent.Kind)), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", errno.ErrSigningDeclined, err)
	}

	// 3. Broadcast
	txid, err := o.backend.Submit(ctx, signed)
	if err != nil {
		if !errors.Is(err, errno.ErrSubmission) {
			err = fmt.Errorf("%w: %v", errno.ErrSubmission, err)
		}
		logger.Warn("submission failed", zap.String("kind", string(intent.Kind)), zap.Error(err))
		return nil, err
	}
	logger.Info("transactions submitted", zap.String("kind", string(intent.Kind)), zap.String("txid", txid), zap.Int("count", len(signed)))

	// 4. Confirmation
	return o.WaitForConfirmation(ctx, txid)
}

func validateIntent(intent model.Intent) error {
	if intent.Kind == "" {
		return fmt.Errorf("%w: missing kind", errno.ErrInvalidIntent)
	}
	if intent.Payload == nil {
		return nil
	}
	if err := validator.Struct(intent.Payload); err != nil {
		return fmt.Errorf("%w: %v", errno.ErrInvalidIntent, err)
	}
	return nil
}

func (o *Orchestrator) observe(kind model.IntentKind, start time.Time, err error) {
	if o.metrics == nil {
		return
	}
	o.metrics.IntentsTotal.WithLabelValues(string(kind), outcome(err)).Inc()
	o.metrics.IntentDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "confirmed"
	case errors.Is(err, errno.ErrRequest):
		return "request_failed"
	case errors.Is(err, errno.ErrSigningDeclined):
		return "signing_declined"
	case errors.Is(err, errno.ErrSubmission):
		return "submission_failed"
	case errors.Is(err, errno.ErrConfirmationTimeout):
		return "timeout"
	case errors.Is(err, errno.ErrTransactionRejected):
		return "rejected"
	default:
		return "error"
	}
}
