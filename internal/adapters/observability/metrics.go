package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ExtractionRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "intake", Name: "extraction_requests_total", Help: "Extraction provider calls."},
		[]string{"provider", "outcome"}, // outcome: ok|retry|failed
	)
	ExtractionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "intake", Name: "extraction_duration_seconds",
			Help:    "Extraction provider call duration seconds.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
		},
		[]string{"provider"},
	)
	MatchResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "intake", Name: "property_matches_total", Help: "Property match outcomes by method."},
		[]string{"method"},
	)
	RecordOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "intake", Name: "reservation_records_total", Help: "Validated reservation records by status."},
		[]string{"status"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "intake", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "intake", Name: "http_requests_total", Help: "Ops HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "intake", Name: "http_request_duration_seconds",
			Help:    "Ops HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(ExtractionRequests, ExtractionLatency, MatchResults, RecordOutcomes, CacheEvents, HTTPRequests, HTTPLatency)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveExtraction(provider, outcome string, dur time.Duration) {
	ExtractionRequests.WithLabelValues(provider, outcome).Inc()
	ExtractionLatency.WithLabelValues(provider).Observe(dur.Seconds())
}

func ObserveMatch(method string) {
	MatchResults.WithLabelValues(method).Inc()
}

func ObserveRecord(status string) {
	RecordOutcomes.WithLabelValues(status).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}
