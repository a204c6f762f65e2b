package model

import (
	"encoding/base64"
	"fmt"
)

// TealValue is a ledger state value; Type 1 is bytes, 2 is uint.
type TealValue struct {
	Type  uint64 `json:"type"`
	Bytes string `json:"bytes"`
	Uint  uint64 `json:"uint"`
}

// TealKeyValue is one entry of application global or local state.
// Key is base64 encoded.
type TealKeyValue struct {
	Key   string    `json:"key"`
	Value TealValue `json:"value"`
}

// TealState is a decoded view of a key-value list, keyed by plain-text key.
type TealState map[string]TealValue

// DecodeState decodes the base64 keys of kvs.
func DecodeState(kvs []TealKeyValue) (TealState, error) {
	state := make(TealState, len(kvs))
	for _, kv := range kvs {
		key, err := base64.StdEncoding.DecodeString(kv.Key)
		if err != nil {
			return nil, fmt.Errorf("decoding state key %q: %w", kv.Key, err)
		}
		state[string(key)] = kv.Value
	}
	return state, nil
}

// Uint returns the uint value stored under key, and whether it exists.
func (s TealState) Uint(key string) (uint64, bool) {
	v, ok := s[key]
	if !ok {
		return 0, false
	}
	return v.Uint, true
}

type ApplicationLocalState struct {
	ID       uint64         `json:"id"`
	KeyValue []TealKeyValue `json:"key-value"`
}

type AssetHolding struct {
	AssetID uint64 `json:"asset-id"`
	Amount  uint64 `json:"amount"`
}

// AccountInfo is the subset of /v2/accounts/{addr} the client reads.
type AccountInfo struct {
	Address        string                  `json:"address"`
	Amount         uint64                  `json:"amount"` // microAlgos
	Assets         []AssetHolding          `json:"assets"`
	AppsLocalState []ApplicationLocalState `json:"apps-local-state"`
	CreatedApps    []ApplicationInfo       `json:"created-apps"`
}

// LocalState returns the local state the account holds for appID.
func (a AccountInfo) LocalState(appID uint64) ([]TealKeyValue, bool) {
	for _, ls := range a.AppsLocalState {
		if ls.ID == appID {
			return ls.KeyValue, true
		}
	}
	return nil, false
}

type AssetParams struct {
	Creator  string `json:"creator"`
	Decimals int32  `json:"decimals"`
	Name     string `json:"name"`
	UnitName string `json:"unit-name"`
	Total    uint64 `json:"total"`
}

// AssetInfo is /v2/assets/{id}. Asset parameters never change after creation.
type AssetInfo struct {
	Index  uint64      `json:"index"`
	Params AssetParams `json:"params"`
}

type ApplicationParams struct {
	Creator     string         `json:"creator"`
	GlobalState []TealKeyValue `json:"global-state"`
}

// ApplicationInfo is /v2/applications/{id}.
type ApplicationInfo struct {
	ID     uint64            `json:"id"`
	Params ApplicationParams `json:"params"`
}

// Pool contract state keys.
const (
	StateStakedAsset  = "SA"
	StateRewardAsset  = "RA"
	StateTotalStaked  = "TS"
	StateBeginTime    = "BT"
	StateEndTime      = "ET"
	StateFixedRate    = "FR"
	StateAmountStaked = "AS"
	StateAmountReward = "AR"
	StateLastUpdated  = "LU"
)

// PoolRewardSnapshot is the last known reward position of an account in a pool.
// It is read once and never mutated.
type PoolRewardSnapshot struct {
	PoolID               uint64 `json:"pool_id"`
	AmountStakedRaw      uint64 `json:"amount_staked_raw"`
	AmountRewardedRaw    uint64 `json:"amount_rewarded_raw"`
	BeginTimestamp       int64  `json:"begin_timestamp"`
	EndTimestamp         int64  `json:"end_timestamp"`
	LastUpdatedTimestamp int64  `json:"last_updated_timestamp"`
	FixedRateBasisPoints uint64 `json:"fixed_rate_basis_points"`
	RewardUnit           string `json:"reward_unit"`

	// RewardDecimals of the reward asset, zero when unknown.
	RewardDecimals int32 `json:"reward_decimals,omitempty"`
}
