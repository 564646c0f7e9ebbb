package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP request metrics, recorded by the router middleware.
var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktrade_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stocktrade_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Domain metrics.
var (
	PurchasesRecordedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stocktrade_purchases_recorded_total",
			Help: "Total number of purchases recorded",
		},
	)

	PurchaseItemsRecordedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stocktrade_purchase_items_recorded_total",
			Help: "Total number of purchase line items recorded",
		},
	)

	BlockedDeletesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktrade_blocked_deletes_total",
			Help: "Deletes refused because dependent products still reference the entity",
		},
		[]string{"entity"},
	)
)

// RecordPurchase increments the purchase counters after a successful intake.
func RecordPurchase(itemCount int) {
	PurchasesRecordedCounter.Inc()
	PurchaseItemsRecordedCounter.Add(float64(itemCount))
}

// RecordBlockedDelete increments the blocked-delete counter for an entity type.
func RecordBlockedDelete(entity string) {
	BlockedDeletesCounter.WithLabelValues(entity).Inc()
}
