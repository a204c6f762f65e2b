package server

import (
	"staking-client/internal/handler"
	"staking-client/pkg/monitor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers are the dashboard endpoints.
type Handlers struct {
	Health  *handler.HealthHandler
	Rewards *handler.RewardsHandler
	Pools   *handler.PoolHandler
}

// NewHTTPRouter builds the dashboard engine. Metrics registered on reg are
// served from /metrics.
func NewHTTPRouter(reg *prometheus.Registry, h Handlers) *gin.Engine {
	httpMetrics := monitor.NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(gin.Recovery(), httpMetrics.Middleware())

	r.GET("/health", h.Health.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/rewards", h.Rewards.GetRewards)
		api.GET("/pools/:id", h.Pools.GetPool)
	}

	return r
}
