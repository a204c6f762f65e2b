package signer

import (
	"context"
	"errors"

	"staking-client/internal/model"
)

// ErrRejected is returned when the holder of the key refuses to sign.
var ErrRejected = errors.New("signature request rejected")

// Account is an address the signer can sign for.
type Account struct {
	Address string `json:"address"`
}

// Signer is the external wallet that holds the keys.
// Implementations either sign every transaction of a set or none of them.
type Signer interface {
	Connect(ctx context.Context) error
	Accounts(ctx context.Context) ([]Account, error)
	SignTxn(ctx context.Context, txns model.UnsignedTransactionSet) (model.SignedTransactionSet, error)
}
