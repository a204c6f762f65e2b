package handler

import (
	"context"
	"fmt"
	"time"

	"staking-client/internal/handler/response"
	"staking-client/internal/service/pool"
	"staking-client/pkg/errno"

	"github.com/gin-gonic/gin"
)

// PoolReader loads pool summaries.
type PoolReader interface {
	Pool(ctx context.Context, poolID uint64) (*pool.Summary, error)
}

type PoolHandler struct {
	pools PoolReader
	clock func() time.Time
}

func NewPoolHandler(pools PoolReader) *PoolHandler {
	return &PoolHandler{pools: pools, clock: time.Now}
}

type poolURI struct {
	ID uint64 `uri:"id" binding:"required"`
}

type poolResponse struct {
	ID           uint64     `json:"id"`
	StakingAsset pool.Asset `json:"staking_asset"`
	RewardAsset  pool.Asset `json:"reward_asset"`
	Rate         string     `json:"rate"`
	BasisPoints  uint64     `json:"basis_points"`
	Begin        time.Time  `json:"begin"`
	End          time.Time  `json:"end"`
	TotalStaked  string     `json:"total_staked"`
	Phase        string     `json:"phase"`
	Status       string     `json:"status"`
}

// GetPool godoc
// @Summary Pool details
// @Description Rate, staking window, total staked and current phase of a pool
// @Tags pools
// @Produce json
// @Param id path int true "Pool ID"
// @Success 200 {object} response.Response{data=poolResponse}
// @Router /api/v1/pools/{id} [get]
func (h *PoolHandler) GetPool(c *gin.Context) {
	var uri poolURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, fmt.Errorf("%w: pool id %q", errno.ErrBind, c.Param("id")))
		return
	}

	sum, err := h.pools.Pool(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	now := h.clock()
	response.Success(c, poolResponse{
		ID:           sum.ID,
		StakingAsset: sum.StakingAsset,
		RewardAsset:  sum.RewardAsset,
		Rate:         sum.Rate.StringFixed(2),
		BasisPoints:  sum.BasisPoints,
		Begin:        sum.Begin,
		End:          sum.End,
		TotalStaked:  sum.TotalStaked.StringFixed(sum.StakingAsset.Decimals),
		Phase:        sum.Phase(now).String(),
		Status:       sum.Status(now),
	})
}

