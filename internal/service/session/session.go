package session

import (
	"context"
	"fmt"
	"slices"

	"staking-client/internal/service/signer"
	"staking-client/pkg/errno"
	"staking-client/pkg/logger"

	"go.uber.org/zap"
)

// AccountLister is the part of signer.Signer used to validate a selection.
type AccountLister interface {
	Accounts(ctx context.Context) ([]signer.Account, error)
}

// Current returns the stored account if the signer still offers it.
// A stale selection is reported as errno.ErrUnknownAccount and left in
// place, so reconnecting the right wallet restores it.
func Current(ctx context.Context, store Store, s AccountLister) (string, error) {
	addr, err := store.Get(ctx)
	if err != nil {
		return "", err
	}
	if addr == "" {
		return "", errno.ErrNoAccount
	}

	ok, err := offered(ctx, s, addr)
	if err != nil {
		return "", err
	}
	if !ok {
		logger.Warn("stored account not available in signer", zap.String("account", addr))
		return "", fmt.Errorf("%w: %s", errno.ErrUnknownAccount, addr)
	}
	return addr, nil
}

// Select stores addr after checking that the signer holds it.
func Select(ctx context.Context, store Store, s AccountLister, addr string) error {
	ok, err := offered(ctx, s, addr)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", errno.ErrUnknownAccount, addr)
	}
	if err := store.Set(ctx, addr); err != nil {
		return err
	}
	logger.Info("account selected", zap.String("account", addr))
	return nil
}

func offered(ctx context.Context, s AccountLister, addr string) (bool, error) {
	accounts, err := s.Accounts(ctx)
	if err != nil {
		return false, fmt.Errorf("listing signer accounts: %w", err)
	}
	return slices.ContainsFunc(accounts, func(a signer.Account) bool {
		return a.Address == addr
	}), nil
}
