// Package metrics exposes the service's Prometheus collectors. Registration
// happens at import time; cmd/api serves them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RebuildsTotal counts season rebuilds by outcome (ok, error).
	RebuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warband_rebuilds_total",
		Help: "Season rebuilds by outcome.",
	}, []string{"outcome"})

	// RebuildDuration observes wall time of successful season rebuilds.
	RebuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "warband_rebuild_duration_seconds",
		Help:    "Wall time of season rebuilds.",
		Buckets: prometheus.DefBuckets,
	})

	// EventsProcessed counts event processing runs by category and outcome.
	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warband_events_processed_total",
		Help: "Event processing runs by category and outcome.",
	}, []string{"category", "outcome"})

	// QueueDepth tracks seasons waiting in the rebuild queue.
	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "warband_rebuild_queue_depth",
		Help: "Seasons waiting in the rebuild queue.",
	})

	// HTTPRequests counts API requests by route pattern and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warband_http_requests_total",
		Help: "HTTP requests by route pattern and status class.",
	}, []string{"route", "status"})
)
