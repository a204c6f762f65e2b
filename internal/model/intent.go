package model

import "fmt"

// IntentKind is a user action that needs a ledger effect.
type IntentKind string

const (
	IntentCreateAsset IntentKind = "create_asset"
	IntentCreatePool  IntentKind = "create_pool"
	IntentInitPool    IntentKind = "init_pool"
	IntentDeposit     IntentKind = "deposit"
	IntentWithdraw    IntentKind = "withdraw"
	IntentClaim       IntentKind = "claim"
)

// Intent is one request to the backend for an unsigned transaction set.
type Intent struct {
	Kind    IntentKind
	PoolID  uint64 // zero for intents not bound to a pool
	Sender  string
	Payload any
}

// Endpoint is the backend path that builds transactions for the intent.
func (i Intent) Endpoint() string {
	switch i.Kind {
	case IntentDeposit, IntentWithdraw, IntentClaim:
		return fmt.Sprintf("/%d/%s", i.PoolID, i.Kind)
	default:
		return "/" + string(i.Kind)
	}
}

// LockKey identifies the intent for single-flight purposes: one in-flight
// transaction per pool, sender and action kind.
func (i Intent) LockKey() string {
	return fmt.Sprintf("intent:%s:%d:%s", i.Kind, i.PoolID, i.Sender)
}
