// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion metrics.

	BeaconsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beacons_received_total",
			Help: "Total beacon submissions received, before any validation",
		},
	)

	BeaconsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacons_rejected_total",
			Help: "Beacons rejected with a 400 security-validation error",
		},
		[]string{"code"}, // PAYLOAD_TOO_LARGE, MALFORMED_JSON, ...
	)

	BeaconsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacons_dropped_total",
			Help: "Beacons silently accepted with no event emitted",
		},
		[]string{"reason"}, // local_traffic, private_ip, unknown_project, ...
	)

	EventsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_emitted_total",
			Help: "Normalized events handed to the delivery pipeline",
		},
		[]string{"kind"}, // pageview, engagement, bot, ...
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_processing_duration_seconds",
			Help:    "Beacon processing time from validated body to enqueue",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Delivery pipeline metrics.

	DeliveryQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "delivery_queue_depth",
			Help: "Events waiting in the delivery queue",
		},
	)

	DeliveryQueueFull = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_queue_full_total",
			Help: "Events dropped because the delivery queue was full",
		},
	)

	DeliveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_attempts_total",
			Help: "Warehouse append attempts by outcome",
		},
		[]string{"outcome"}, // success, retryable, permanent, rejected
	)

	DeliveryExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "delivery_exhausted_total",
			Help: "Events whose retry budget ran out, logged verbatim",
		},
	)

	DeliveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_duration_seconds",
			Help:    "End-to-end delivery time per event, including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// Circuit breaker metrics, shared by any named breaker.

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Query cache metrics.

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_hits_total",
			Help: "Query cache hits by kind",
		},
		[]string{"kind"}, // exact, covering
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "query_cache_misses_total",
			Help: "Query cache misses",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "query_cache_entries",
			Help: "Current number of cached query results",
		},
	)

	// HTTP metrics.

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "HTTP requests currently being served",
		},
	)
)
