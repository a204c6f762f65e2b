package handler

import (
	"fmt"
	"time"

	"staking-client/internal/handler/response"
	"staking-client/internal/service/accrual"
	"staking-client/pkg/errno"

	"github.com/gin-gonic/gin"
)

// RewardsSource exposes the most recent accrual update.
type RewardsSource interface {
	Latest() (accrual.Update, bool)
}

type RewardsHandler struct {
	poolID uint64
	source RewardsSource
}

func NewRewardsHandler(poolID uint64, source RewardsSource) *RewardsHandler {
	return &RewardsHandler{poolID: poolID, source: source}
}

type rewardsResponse struct {
	PoolID  uint64    `json:"pool_id"`
	Rewards string    `json:"rewards"`
	Unit    string    `json:"unit"`
	Regime  string    `json:"regime"`
	At      time.Time `json:"at"`
}

// GetRewards godoc
// @Summary Live reward estimate
// @Description The estimate currently displayed for the tracked pool. It is not a claimable amount.
// @Tags rewards
// @Produce json
// @Success 200 {object} response.Response{data=rewardsResponse}
// @Failure 404 {object} response.Response "no tick yet"
// @Router /api/v1/rewards [get]
func (h *RewardsHandler) GetRewards(c *gin.Context) {
	u, ok := h.source.Latest()
	if !ok {
		response.Error(c, fmt.Errorf("%w: no reward estimate for pool %d yet", errno.ErrNotFound, h.poolID))
		return
	}
	response.Success(c, rewardsResponse{
		PoolID:  h.poolID,
		Rewards: u.Display.StringFixed(u.Decimals),
		Unit:    u.Unit,
		Regime:  u.Regime.String(),
		At:      u.At.UTC(),
	})
}
