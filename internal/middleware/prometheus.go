// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/veiltrics/veiltrics/internal/metrics"
)

// PrometheusMetrics records request latency and in-flight gauge per
// route. The route label is passed in rather than read from the URL so
// high-cardinality paths never leak into label values.
func PrometheusMetrics(route string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next(wrapper, r)

			metrics.HTTPRequestDuration.WithLabelValues(
				r.Method,
				route,
				strconv.Itoa(wrapper.statusCode),
			).Observe(time.Since(start).Seconds())
		}
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
