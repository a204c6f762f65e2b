package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"staking-client/internal/model"
	"staking-client/pkg/errno"
	"staking-client/pkg/logger"

	"go.uber.org/zap"
)

// ErrStillPending is returned by Reconcile for a transaction the ledger has
// not committed yet.
var ErrStillPending = errors.New("transaction still pending")

// ConfirmationTimeoutError reports a transaction that was not seen confirmed
// within the round window. It does not mean the transaction failed: it may
// still commit later, see Reconcile.
type ConfirmationTimeoutError struct {
	TxID       string
	StartRound uint64
	LastRound  uint64

	// LastPollErr is the most recent per-poll failure, if any.
	LastPollErr error
}

func (e *ConfirmationTimeoutError) Error() string {
	msg := fmt.Sprintf("transaction %s not confirmed between rounds %d and %d", e.TxID, e.StartRound, e.LastRound)
	if e.LastPollErr != nil {
		msg += ": last poll error: " + e.LastPollErr.Error()
	}
	return msg
}

func (e *ConfirmationTimeoutError) Unwrap() []error {
	if e.LastPollErr != nil {
		return []error{errno.ErrConfirmationTimeout, e.LastPollErr}
	}
	return []error{errno.ErrConfirmationTimeout}
}

// WaitForConfirmation polls the ledger for txid until it is committed or
// the configured number of rounds has passed since the round current at the
// first status query. Each round costs one pending query followed by one
// wait-for-next-round call.
func (o *Orchestrator) WaitForConfirmation(ctx context.Context, txid string) (*model.ConfirmationResult, error) {
	o.indicator.Show()
	defer o.indicator.Hide()

	status, err := o.ledger.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying ledger status: %w", err)
	}
	start := status.LastRound
	current := start
	deadline := start + o.rounds

	var lastPollErr error
	for current < deadline {
		pending, err := o.ledger.PendingTransaction(ctx, txid)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastPollErr = fmt.Errorf("%w: round %d: %v", errno.ErrPollIteration, current, err)
			o.indicator.Hide()
			if o.metrics != nil {
				o.metrics.PollErrorsTotal.Inc()
			}
			logger.Warn("confirmation poll failed", zap.String("txid", txid), zap.Uint64("round", current), zap.Error(err))
		case pending.PoolError != "":
			return nil, fmt.Errorf("%w: %s", errno.ErrTransactionRejected, pending.PoolError)
		case pending.Confirmed():
			res := &model.ConfirmationResult{
				TxID:             txid,
				ConfirmedRound:   pending.ConfirmedRound,
				ApplicationIndex: pending.ApplicationIndex,
				AssetIndex:       pending.AssetIndex,
				Rounds:           current - start,
			}
			if o.metrics != nil {
				o.metrics.ConfirmationRounds.Observe(float64(res.Rounds))
			}
			logger.Info("transaction confirmed",
				zap.String("txid", txid),
				zap.Uint64("confirmed_round", res.ConfirmedRound),
				zap.Uint64("rounds", res.Rounds),
			)
			return res, nil
		}

		if _, err := o.ledger.WaitForBlockAfter(ctx, current); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("waiting for next round failed", zap.Uint64("round", current), zap.Error(err))
		}
		current++
	}

	logger.Warn("confirmation timed out", zap.String("txid", txid), zap.Uint64("start_round", start), zap.Uint64("last_round", current))
	return nil, &ConfirmationTimeoutError{
		TxID:        txid,
		StartRound:  start,
		LastRound:   current,
		LastPollErr: lastPollErr,
	}
}

// Reconcile performs a single status check for a transaction that
// previously timed out.
func (o *Orchestrator) Reconcile(ctx context.Context, txid string) (*model.ConfirmationResult, error) {
	pending, err := o.ledger.PendingTransaction(ctx, txid)
	if err != nil {
		return nil, fmt.Errorf("querying transaction %s: %w", txid, err)
	}
	switch {
	case pending.PoolError != "":
		return nil, fmt.Errorf("%w: %s", errno.ErrTransactionRejected, pending.PoolError)
	case pending.Confirmed():
		return &model.ConfirmationResult{
			TxID:             txid,
			ConfirmedRound:   pending.ConfirmedRound,
			ApplicationIndex: pending.ApplicationIndex,
			AssetIndex:       pending.AssetIndex,
		}, nil
	default:
		return nil, fmt.Errorf("%s: %w", txid, ErrStillPending)
	}
}
