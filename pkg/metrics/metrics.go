package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	DispatchTotal    *prometheus.CounterVec
	DispatchSkipped  *prometheus.CounterVec
	DeliveryLatency  prometheus.Histogram
	DeliveryFailures *prometheus.CounterVec
	TypeCacheHits    prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		DispatchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dispatch_total",
			Help:      "Total number of notification dispatch attempts by terminal status",
		}, []string{"notification_type", "status"}),
		DispatchSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dispatch_skipped_total",
			Help:      "Total number of skipped dispatches by reason",
		}, []string{"reason"}),
		DeliveryLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "delivery_duration_seconds",
			Help:      "Time spent on the outbound email provider call",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		DeliveryFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "delivery_failures_total",
			Help:      "Total number of provider delivery failures",
		}, []string{"provider"}),
		TypeCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "type_cache_hits_total",
			Help:      "Total number of notification type registry cache hits",
		}),
	}
}
