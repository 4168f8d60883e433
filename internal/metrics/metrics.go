// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers HTTP and domain metrics on a registry.
type Collector struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	reactions    *prometheus.CounterVec
	ideasCreated prometheus.Counter
}

// NewCollector creates a Collector with its own registry and registers all
// metrics on it.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ideahub_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ideahub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ideahub_reactions_total",
			Help: "Recorded reactions by kind.",
		}, []string{"kind"}),
		ideasCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ideahub_ideas_created_total",
			Help: "Ideas created.",
		}),
	}

	c.registry.MustRegister(c.requests, c.duration, c.reactions, c.ideasCreated)
	return c
}

// RecordReaction counts one recorded reaction of the given kind.
func (c *Collector) RecordReaction(kind string) {
	c.reactions.WithLabelValues(kind).Inc()
}

// RecordIdeaCreated counts one created idea.
func (c *Collector) RecordIdeaCreated() {
	c.ideasCreated.Inc()
}

// Handler serves the collector's registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// HTTPMiddleware records request counts and latency per chi route pattern.
func (c *Collector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		c.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		c.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
