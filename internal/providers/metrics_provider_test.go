package providers

import (
	"testing"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

type stubRealtime struct {
	connections int
	rooms       int
}

func (s *stubRealtime) ConnectionCount() int { return s.connections }
func (s *stubRealtime) RoomCount() int       { return s.rooms }

func swapRegistry() func() {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	return func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &stubRealtime{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncPaymentsCreated("success")
	m.ObserveStatsCompute(time.Millisecond)
	m.IncBroadcasts("newPayment")
	m.IncCacheHits()
	m.IncCacheMisses()
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	defer swapRegistry()()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &stubRealtime{connections: 2, rooms: 1})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	defer swapRegistry()()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &stubRealtime{})

	// These should not panic
	m.IncRequestsTotal("/api/payments", 200)
	m.IncRequestsTotal("/api/payments", 503)
	m.ObserveRequestDuration("/api/payments", 5*time.Millisecond)
	m.IncPaymentsCreated("success")
	m.ObserveStatsCompute(10 * time.Millisecond)
	m.IncBroadcasts("statsUpdate")
	m.IncCacheHits()
	m.IncCacheMisses()
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
