package handler

import (
	"context"
	"time"

	"staking-client/internal/handler/response"
	"staking-client/internal/model"
	"staking-client/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NodeStatus is the ledger call the health check relies on.
type NodeStatus interface {
	Status(ctx context.Context) (*model.NodeStatus, error)
}

type HealthHandler struct {
	node    NodeStatus
	timeout time.Duration
}

func NewHealthHandler(node NodeStatus) *HealthHandler {
	return &HealthHandler{node: node, timeout: 3 * time.Second}
}

type healthStatus struct {
	Status      string `json:"status" example:"UP"`
	Service     string `json:"service" example:"staking-client"`
	LastRound   uint64 `json:"last_round,omitempty"`
	LedgerError string `json:"ledger_error,omitempty"`
}

// HealthCheck godoc
// @Summary Check system health
// @Description UP with the ledger's last round, or DEGRADED when the ledger node cannot be reached
// @Tags system
// @Produce json
// @Success 200 {object} response.Response{data=healthStatus}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	data := healthStatus{Status: "UP", Service: "staking-client"}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()
	status, err := h.node.Status(ctx)
	if err != nil {
		logger.Warn("health check: ledger unreachable", zap.Error(err))
		data.Status = "DEGRADED"
		data.LedgerError = err.Error()
	} else {
		data.LastRound = status.LastRound
	}
	response.Success(c, data)
}
