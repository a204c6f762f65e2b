package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics tracks the intent lifecycle and the reward display.
type BusinessMetrics struct {
	IntentsTotal       *prometheus.CounterVec
	IntentDuration     *prometheus.HistogramVec
	ConfirmationRounds prometheus.Histogram
	PollErrorsTotal    prometheus.Counter
	InFlightRejections *prometheus.CounterVec
	RewardsDisplayed   prometheus.Gauge
	AccrualTicksTotal  *prometheus.CounterVec
}

// NewBusinessMetrics registers the metrics on reg.
func NewBusinessMetrics(reg prometheus.Registerer) *BusinessMetrics {
	f := promauto.With(reg)
	return &BusinessMetrics{
		IntentsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "staking_intents_total",
			Help: "Intents executed, by kind and outcome",
		}, []string{"kind", "outcome"}),
		IntentDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staking_intent_duration_seconds",
			Help:    "Wall time from backend request to confirmation",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60},
		}, []string{"kind"}),
		ConfirmationRounds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "staking_confirmation_rounds",
			Help:    "Rounds waited before a transaction confirmed",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		}),
		PollErrorsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "staking_poll_errors_total",
			Help: "Failed pending transaction queries",
		}),
		InFlightRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "staking_intent_in_flight_rejections_total",
			Help: "Intents refused because the same intent was already running",
		}, []string{"kind"}),
		RewardsDisplayed: f.NewGauge(prometheus.GaugeOpts{
			Name: "staking_rewards_displayed",
			Help: "Last extrapolated reward value shown to the user",
		}),
		AccrualTicksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "staking_accrual_ticks_total",
			Help: "Accrual ticks, by regime",
		}, []string{"regime"}),
	}
}
