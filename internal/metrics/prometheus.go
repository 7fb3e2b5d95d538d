package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route"},
	)

	// Feed metrics
	FeedFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainboard_feed_fallbacks_total",
			Help: "Total number of responses served from sample data",
		},
		[]string{"feed"},
	)

	// Warehouse metrics
	WarehouseQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainboard_warehouse_queries_total",
			Help: "Total number of warehouse queries",
		},
		[]string{"operation", "status"}, // status: success|error
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
	prometheus.MustRegister(FeedFallbacks)
	prometheus.MustRegister(WarehouseQueries)
}

// Handler returns the HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
