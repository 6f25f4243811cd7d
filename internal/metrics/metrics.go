// Package metrics exposes the console's Prometheus collectors. The server
// mounts them on /metrics; the CLI simply never serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts calls against the restaurant API by method and
	// response class ("error" for transport failures).
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdesk_upstream_requests_total",
		Help: "Requests issued to the upstream restaurant API.",
	}, []string{"method", "code"})

	// PageRequests counts rendered console pages.
	PageRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdesk_page_requests_total",
		Help: "Console page requests by route and status.",
	}, []string{"route", "code"})

	// PageDuration tracks console render latency.
	PageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderdesk_page_duration_seconds",
		Help:    "Console page render latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// CacheHits counts query cache hits and misses per resource.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orderdesk_cache_results_total",
		Help: "Query cache lookups by resource and outcome.",
	}, []string{"resource", "outcome"})
)
