package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "people_console_gateway_calls_total",
			Help: "Calls to the personnel API by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	gatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "people_console_gateway_call_duration_seconds",
			Help:    "Latency of personnel API calls by operation.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// ObserveGatewayCall records one personnel API round trip. Outcome is one of
// ok, validation_error or error.
func ObserveGatewayCall(operation, outcome string, elapsed time.Duration) {
	gatewayCalls.WithLabelValues(operation, outcome).Inc()
	gatewayDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
