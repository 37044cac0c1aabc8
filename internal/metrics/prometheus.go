package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "medai_portal_request_duration_seconds",
			Help:    "Portal API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"path"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medai_portal_request_total",
			Help: "Total portal API requests issued",
		},
		[]string{"path", "status"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medai_cache_hits_total",
			Help: "Total local cache hits",
		},
		[]string{"key"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medai_cache_misses_total",
			Help: "Total local cache misses",
		},
		[]string{"key"},
	)

	ChatMessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medai_chat_messages_total",
			Help: "Chat turns sent, by outcome",
		},
		[]string{"outcome"},
	)

	AlertsDismissed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "medai_alerts_dismissed_total",
			Help: "Total alerts dismissed locally",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(RequestTotal)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(ChatMessagesSent)
	prometheus.MustRegister(AlertsDismissed)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
