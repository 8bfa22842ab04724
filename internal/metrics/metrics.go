package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BillsFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bills_finalized_total",
			Help: "Bills finalized at the terminal, by payment method",
		},
		[]string{"method"},
	)

	OrdersIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_ingested_total",
			Help: "Storefront orders accepted into the reporting feed",
		},
	)

	ExportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_exports_total",
			Help: "Summary exports generated, by format",
		},
		[]string{"format"},
	)

	LiveSummaryClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_summary_clients",
			Help: "WebSocket clients subscribed to live summary updates",
		},
	)
)
