// Package metrics implements the observability hooks with Prometheus
// collectors.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/observability"
)

const namespace = "ttm"

// Metrics holds the collectors. One value serves as pipeline, cache and
// server hooks.
type Metrics struct {
	layouts         *prometheus.CounterVec
	layoutDuration  *prometheus.HistogramVec
	layoutNodes     prometheus.Histogram
	diagnostics     prometheus.Counter
	decodes         *prometheus.CounterVec
	drags           *prometheus.CounterVec
	cacheOps        *prometheus.CounterVec
	cacheBytes      *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		layouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layouts_total",
			Help:      "Layout passes by unit mode and outcome.",
		}, []string{"unit", "status"}),
		layoutDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_duration_seconds",
			Help:      "Duration of layout passes.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"unit"}),
		layoutNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_nodes",
			Help:      "Positioned nodes per layout pass, divider anchors included.",
			Buckets:   []float64{10, 25, 50, 100, 200, 400},
		}),
		diagnostics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_diagnostics_total",
			Help:      "Records skipped or edges dropped by layout passes.",
		}),
		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decodes_total",
			Help:      "Payload decodes by outcome.",
		}, []string{"status"}),
		drags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drags_total",
			Help:      "Applied drags by outcome.",
		}, []string{"status"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"key_type"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.layouts, m.layoutDuration, m.layoutNodes, m.diagnostics, m.decodes,
		m.drags, m.cacheOps, m.cacheBytes, m.requests, m.requestDuration,
	)
	return m
}

// Install registers m as the global pipeline, cache and server hooks.
func (m *Metrics) Install() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetServerHooks(m)
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

func (m *Metrics) OnDecodeStart(context.Context, int) {}

func (m *Metrics) OnDecodeComplete(_ context.Context, _ int, _ time.Duration, err error) {
	m.decodes.WithLabelValues(status(err)).Inc()
}

func (m *Metrics) OnLayoutStart(context.Context, string, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, unit string, stats observability.LayoutStats, d time.Duration, err error) {
	m.layouts.WithLabelValues(unit, status(err)).Inc()
	if err != nil {
		return
	}
	m.layoutDuration.WithLabelValues(unit).Observe(d.Seconds())
	m.layoutNodes.Observe(float64(stats.Nodes))
	m.diagnostics.Add(float64(stats.Diagnostics))
}

func (m *Metrics) OnDrag(_ context.Context, err error) {
	m.drags.WithLabelValues(status(err)).Inc()
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// =============================================================================
// Server Hooks
// =============================================================================

func (m *Metrics) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.ServerHooks   = (*Metrics)(nil)
)
