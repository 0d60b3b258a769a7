package providers

import (
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RealtimeStats exposes gauge readings from the websocket hub without
// coupling the metrics provider to the realtime package.
type RealtimeStats interface {
	ConnectionCount() int
	RoomCount() int
}

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncPaymentsCreated(status string)
	ObserveStatsCompute(duration time.Duration)
	IncBroadcasts(event string)
	IncCacheHits()
	IncCacheMisses()
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	paymentsCreated *prometheus.CounterVec
	statsCompute    prometheus.Histogram
	broadcasts      *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPaymentsCreated(status string) {
	m.paymentsCreated.WithLabelValues(status).Inc()
}

func (m *MetricsProvider) ObserveStatsCompute(duration time.Duration) {
	m.statsCompute.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncBroadcasts(event string) {
	m.broadcasts.WithLabelValues(event).Inc()
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, realtime RealtimeStats) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payapp_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payapp_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		paymentsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payapp_payments_created_total",
			Help: "Total number of payments created",
		}, []string{"status"}),

		statsCompute: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payapp_stats_compute_duration_seconds",
			Help:    "Duration of stats snapshot computations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		broadcasts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payapp_broadcasts_total",
			Help: "Total number of realtime broadcasts by event",
		}, []string{"event"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payapp_cache_hits_total",
			Help: "Total number of token cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payapp_cache_misses_total",
			Help: "Total number of token cache misses",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "payapp_ws_connections",
		Help: "Current number of websocket connections",
	}, func() float64 {
		return float64(realtime.ConnectionCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "payapp_ws_rooms",
		Help: "Current number of websocket rooms with members",
	}, func() float64 {
		return float64(realtime.RoomCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncPaymentsCreated(_ string)                      {}
func (n *noopMetrics) ObserveStatsCompute(_ time.Duration)              {}
func (n *noopMetrics) IncBroadcasts(_ string)                           {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
