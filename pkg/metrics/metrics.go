// Package metrics holds the process-wide Prometheus collectors and the small
// HTTP server that exposes them.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	botUpdates  *prometheus.CounterVec
	poolPending prometheus.Gauge
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		apiRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gestion",
			Name:      "api_requests_total",
			Help:      "Total number of requests sent to the personnel API.",
		}, []string{"resource", "op", "result"}),
		apiLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gestion",
			Name:      "api_request_duration_seconds",
			Help:      "Latency distribution for personnel API requests.",
			Buckets: []float64{
				0.005, 0.01, 0.025,
				0.05, 0.1, 0.25,
				0.5, 1, 2.5, 5, 10,
			},
		}, []string{"resource", "op"}),
		botUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gestion",
			Name:      "bot_updates_total",
			Help:      "Total number of Telegram updates handled.",
		}, []string{"kind"}),
		poolPending: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "gestion",
			Name:      "pool_pending_tasks",
			Help:      "Tasks submitted to the worker pool that have not finished.",
		}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

// ObserveAPI records one API call. result is "ok" or an error kind.
func ObserveAPI(resource, op, result string, elapsed time.Duration) {
	m := getMetrics()
	m.apiRequests.WithLabelValues(resource, op, result).Inc()
	m.apiLatency.WithLabelValues(resource, op).Observe(elapsed.Seconds())
}

func IncBotUpdate(kind string) {
	getMetrics().botUpdates.WithLabelValues(kind).Inc()
}

func AddPoolPending(delta float64) {
	getMetrics().poolPending.Add(delta)
}
