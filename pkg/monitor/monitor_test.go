package monitor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
}

func TestBusinessMetricsRegisterOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBusinessMetrics(reg)
	m.IntentsTotal.WithLabelValues("deposit", "confirmed").Inc()
	m.PollErrorsTotal.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.IntentsTotal.WithLabelValues("deposit", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PollErrorsTotal))
	assert.Panics(t, func() { NewBusinessMetrics(reg) }, "duplicate registration must fail loudly")
}
