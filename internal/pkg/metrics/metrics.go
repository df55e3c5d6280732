// internal/pkg/metrics/metrics.go
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "commerce",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commerce",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "commerce",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Orders successfully created",
		},
	)

	StockAdjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commerce",
			Subsystem: "inventory",
			Name:      "movements_total",
			Help:      "Inventory movements recorded, by type",
		},
		[]string{"movement_type"},
	)

	RecommendationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "commerce",
			Subsystem: "recommendations",
			Name:      "generated_total",
			Help:      "Recommendation runs, by branch",
		},
		[]string{"branch"},
	)

	PurchaseIntents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "commerce",
			Subsystem: "whatsapp",
			Name:      "purchase_intents_total",
			Help:      "Inbound messages classified as purchase intent",
		},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPDuration,
			HTTPRequests,
			OrdersCreated,
			StockAdjustments,
			RecommendationRuns,
			PurchaseIntents,
		)
	})
}
