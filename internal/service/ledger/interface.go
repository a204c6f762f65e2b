package ledger

import (
	"context"

	"staking-client/internal/model"
)

// Ledger is the read side of the blockchain node the client talks to.
// Every call may fail; callers decide whether a failure is fatal.
type Ledger interface {
	// Status returns the node's view of the latest round.
	Status(ctx context.Context) (*model.NodeStatus, error)

	// PendingTransaction returns the pool or confirmed state of txid.
	PendingTransaction(ctx context.Context, txid string) (*model.PendingTransaction, error)

	// WaitForBlockAfter blocks until the node has seen a round after round.
	WaitForBlockAfter(ctx context.Context, round uint64) (*model.NodeStatus, error)

	AccountInformation(ctx context.Context, address string) (*model.AccountInfo, error)
	AssetInformation(ctx context.Context, assetID uint64) (*model.AssetInfo, error)
	ApplicationInformation(ctx context.Context, appID uint64) (*model.ApplicationInfo, error)
}
