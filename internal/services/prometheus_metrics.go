package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	tokenRefreshesTotal  *prometheus.CounterVec
	forcedLogoutsTotal   prometheus.Counter
	exportsTotal         *prometheus.CounterVec
	snapshotRebuilds     prometheus.Counter
	staleRefreshesTotal  prometheus.Counter
	rateLimiterWaitTime  prometheus.Histogram
	activeSessionsGauge  prometheus.Gauge
	authenticationEvents *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "Total number of backend API requests",
			},
			[]string{"endpoint", "method", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_duration_milliseconds",
				Help:    "Backend API request duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"endpoint"},
		),
		tokenRefreshesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "token_refreshes_total",
				Help: "Total number of access-token refresh attempts",
			},
			[]string{"status"},
		),
		forcedLogoutsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "forced_logouts_total",
				Help: "Total number of sessions ended by a failed refresh",
			},
		),
		exportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csv_exports_total",
				Help: "Total number of CSV exports",
			},
			[]string{"status"},
		),
		snapshotRebuilds: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "financial_snapshot_rebuilds_total",
				Help: "Total number of financial snapshot recomputations",
			},
		),
		staleRefreshesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "stale_refreshes_discarded_total",
				Help: "Total number of refresh responses discarded as stale",
			},
		),
		rateLimiterWaitTime: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rate_limiter_wait_milliseconds",
				Help:    "Time spent waiting on the client rate limiter",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		activeSessionsGauge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_sessions",
				Help: "Whether a session is currently established (0 or 1)",
			},
		),
		authenticationEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "api.request":
		m.requestsTotal.WithLabelValues(tags["endpoint"], tags["method"], tags["status"]).Inc()
	case "token.refresh":
		m.tokenRefreshesTotal.WithLabelValues(tags["status"]).Inc()
	case "session.forced_logout":
		m.forcedLogoutsTotal.Inc()
	case "export.csv":
		m.exportsTotal.WithLabelValues(tags["status"]).Inc()
	case "snapshot.rebuild":
		m.snapshotRebuilds.Inc()
	case "refresh.stale_discarded":
		m.staleRefreshesTotal.Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEvents.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "rate_limiter.wait":
		m.rateLimiterWaitTime.Observe(float64(duration.Milliseconds()))
	default:
		m.requestDuration.WithLabelValues(name).Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	if name == "session.active" {
		m.activeSessionsGauge.Set(value)
	}
}
