// Package metrics holds the Prometheus collectors shared by both services.
// Collectors are registered on the default registry through promauto and
// exposed by the /metrics route.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stagebook_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stagebook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// Response cache
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stagebook_cache_lookups_total",
			Help: "Response cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	CacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stagebook_cache_invalidations_total",
			Help: "Number of times cached responses were dropped after a mutation",
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stagebook_rate_limited_total",
			Help: "Requests rejected by the token bucket",
		},
	)

	// Domain events
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stagebook_events_published_total",
			Help: "Domain events handed to the broker by type and outcome",
		},
		[]string{"type", "result"},
	)
)

// RecordHTTPRequest records one served request.  route is the matched
// route pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CacheLookups.WithLabelValues("miss").Inc()
}

// RecordEventPublish counts a publish attempt of eventType.
func RecordEventPublish(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	EventsPublished.WithLabelValues(eventType, result).Inc()
}
