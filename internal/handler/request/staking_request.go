package request

import "time"

type CreateAssetRequest struct {
	Sender   string `json:"sender" validate:"required"`
	Name     string `json:"name" validate:"required,max=32"`
	UnitName string `json:"unit_name" validate:"required,max=8"`
	Total    uint64 `json:"total" validate:"gt=0"`
	Decimals uint32 `json:"decimals" validate:"lte=19"`
}

// CreatePoolRequest deploys the pool contract. Asset ids travel as strings.
type CreatePoolRequest struct {
	Sender       string    `json:"sender" validate:"required"`
	StakingAsset uint64    `json:"staking,string" validate:"required"`
	RewardAsset  uint64    `json:"reward,string" validate:"required"`
	Begin        time.Time `json:"begin" validate:"required"`
	End          time.Time `json:"end" validate:"required,gtfield=Begin"`
}

// InitPoolRequest funds a deployed pool and sets its fixed rate, a percent.
type InitPoolRequest struct {
	Sender    string  `json:"sender" validate:"required"`
	FixedRate float64 `json:"fixed-rate" validate:"gt=0,lte=100"`
	PoolID    uint64  `json:"pool_id" validate:"required"`
}

type DepositRequest struct {
	Sender string `json:"sender" validate:"required"`
	Amount uint64 `json:"amount" validate:"gt=0"`
}

// WithdrawRequest takes Amount of the staked asset, or everything
// (stake and rewards) when All is set.
type WithdrawRequest struct {
	Sender string `json:"sender" validate:"required"`
	Amount uint64 `json:"amount,omitempty" validate:"required_unless=All true"`
	All    bool   `json:"all"`
}

type ClaimRequest struct {
	Sender string `json:"sender" validate:"required"`
}
