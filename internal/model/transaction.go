package model

import "errors"

// UnsignedTransaction is an opaque transaction descriptor built by the backend.
// Txn holds the base64 msgpack encoding; the client never inspects it.
type UnsignedTransaction struct {
	Txn string `json:"txn"`

	// Signers optionally restricts which accounts may sign (multisig or rekeyed flows).
	Signers []string `json:"signers,omitempty"`
}

// UnsignedTransactionSet is the ordered group returned for one user intent.
// Signing and submission must preserve its order.
type UnsignedTransactionSet []UnsignedTransaction

var ErrEmptyTransactionSet = errors.New("empty transaction set")

// Validate fails when the backend returned nothing to sign.
func (s UnsignedTransactionSet) Validate() error {
	if len(s) == 0 {
		return ErrEmptyTransactionSet
	}
	for _, t := range s {
		if t.Txn == "" {
			return errors.New("transaction descriptor without payload")
		}
	}
	return nil
}

// SignedTransaction is the signer's output for a single UnsignedTransaction.
type SignedTransaction struct {
	TxID string `json:"txID"`
	Blob string `json:"blob"` // base64 signed msgpack
}

// SignedTransactionSet mirrors the UnsignedTransactionSet it was produced from.
type SignedTransactionSet []SignedTransaction

// TxID is the identifier of the first transaction, used to track the whole group.
func (s SignedTransactionSet) TxID() string {
	if len(s) == 0 {
		return ""
	}
	return s[0].TxID
}

// SubmitResponse is the backend's answer to /submit.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PendingTransaction is the ledger view of /v2/transactions/pending/{txid}.
type PendingTransaction struct {
	ConfirmedRound   uint64 `json:"confirmed-round"`
	ApplicationIndex uint64 `json:"application-index"`
	AssetIndex       uint64 `json:"asset-index"`
	PoolError        string `json:"pool-error"`
}

// Confirmed reports whether the ledger has committed the transaction.
func (p PendingTransaction) Confirmed() bool {
	return p.ConfirmedRound > 0
}

// ConfirmationResult is produced once per submitted transaction id.
type ConfirmationResult struct {
	TxID             string `json:"tx_id"`
	ConfirmedRound   uint64 `json:"confirmed_round"`
	ApplicationIndex uint64 `json:"application_index,omitempty"`
	AssetIndex       uint64 `json:"asset_index,omitempty"`
	// Rounds is how many rounds were waited for before confirmation.
	Rounds uint64 `json:"rounds"`
}

// NodeStatus is the subset of /v2/status the client uses.
type NodeStatus struct {
	LastRound          uint64 `json:"last-round"`
	TimeSinceLastRound uint64 `json:"time-since-last-round"` // nanoseconds
	LastVersion        string `json:"last-version"`
}
