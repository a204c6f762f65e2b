package accrual

import (
	"time"

	"staking-client/internal/model"

	"github.com/shopspring/decimal"
)

const (
	DefaultDecimals = 6

	// SecondsPerYear is a Julian year (365.25 days).
	SecondsPerYear = 31557600

	basisPoints = 10000
)

// Regime tells whether the pool was still accruing at tick time.
type Regime int

const (
	Live Regime = iota
	Ended
)

func (r Regime) String() string {
	if r == Ended {
		return "ended"
	}
	return "live"
}

// Update is the result of one accrual tick.
type Update struct {
	// Rewards is the extrapolated reward balance in whole units.
	Rewards decimal.Decimal
	// Display is Rewards rounded half-up at Decimals places.
	Display  decimal.Decimal
	Decimals int32
	Unit     string
	Regime   Regime
	At       time.Time
}

func (u Update) String() string {
	s := u.Display.StringFixed(u.Decimals)
	if u.Unit == "" {
		return s
	}
	return s + " " + u.Unit
}

// Tick extrapolates the reward balance of s at now using DefaultDecimals.
// It returns false when nothing accrues: the pool has not begun or the
// account has nothing staked.
func Tick(s model.PoolRewardSnapshot, now time.Time) (Update, bool) {
	return TickWithDecimals(s, now, DefaultDecimals)
}

// TickWithDecimals is Tick for assets with a different number of decimals.
// Accrual runs from the later of begin and last update. If the last update
// is ahead of now (local clock behind the ledger's), the elapsed time is
// taken as zero, so the result never drops below the settled rewards.
func TickWithDecimals(s model.PoolRewardSnapshot, now time.Time, decimals int32) (Update, bool) {
	ts := now.Unix()
	if ts < s.BeginTimestamp || s.AmountStakedRaw == 0 {
		return Update{}, false
	}

	regime, end := Live, ts
	if ts >= s.EndTimestamp {
		regime, end = Ended, s.EndTimestamp
	}

	from := s.BeginTimestamp
	if s.LastUpdatedTimestamp > from {
		from = s.LastUpdatedTimestamp
	}
	duration := end - from
	if duration < 0 {
		duration = 0
	}

	rewards := accrued(s, duration, decimals)
	return Update{
		Rewards:  rewards,
		Display:  rewards.Round(decimals),
		Decimals: decimals,
		Unit:     s.RewardUnit,
		Regime:   regime,
		At:       now,
	}, true
}

// PerSecondRate is the reward, in whole units, earned per second by the
// staked amount of s.
func PerSecondRate(s model.PoolRewardSnapshot, decimals int32) decimal.Decimal {
	return decimal.NewFromUint64(s.AmountStakedRaw).
		Mul(decimal.NewFromUint64(s.FixedRateBasisPoints)).
		Div(denominator(decimals))
}

// accrued computes rewarded/dp + (staked/dp)*bp/10000/year*duration with a
// single division so no intermediate rounding creeps in.
func accrued(s model.PoolRewardSnapshot, duration int64, decimals int32) decimal.Decimal {
	denom := denominator(decimals)
	base := decimal.NewFromUint64(s.AmountRewardedRaw).Mul(decimal.NewFromInt(basisPoints * SecondsPerYear))
	growth := decimal.NewFromUint64(s.AmountStakedRaw).
		Mul(decimal.NewFromUint64(s.FixedRateBasisPoints)).
		Mul(decimal.NewFromInt(duration))
	return base.Add(growth).Div(denom)
}

func denominator(decimals int32) decimal.Decimal {
	return decimal.New(1, decimals).Mul(decimal.NewFromInt(basisPoints * SecondsPerYear))
}
