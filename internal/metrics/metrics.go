// Package metrics exposes Prometheus instrumentation for the request
// pipeline. The collector is optional; every method is nil-safe so the
// facade can run uninstrumented.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"nakula/pkg/core"
)

// Collector tracks request counts, durations, and envelope outcomes.
// Safe for concurrent use.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a collector on the default registerer.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewCollectorWithRegistry(registry prometheus.Registerer) *Collector {
	return &Collector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "nakula_requests_total",
				Help: "Total number of API calls by method and envelope outcome",
			},
			[]string{"method", "outcome"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nakula_request_duration_seconds",
				Help:    "Duration of API calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// RecordOutcome records one completed call and its envelope outcome.
func (c *Collector) RecordOutcome(method string, env core.Envelope, duration time.Duration) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(method, outcomeLabel(env)).Inc()
	c.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func outcomeLabel(env core.Envelope) string {
	switch {
	case env.OK:
		return "success"
	case env.ErrorID != "":
		return env.ErrorID
	case env.StatusCode != 0:
		return "http_" + strconv.Itoa(env.StatusCode)
	default:
		return "malformed_body"
	}
}
