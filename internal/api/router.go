// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veiltrics/veiltrics/internal/middleware"
)

// ingestRateLimit is the per-IP beacon cap per minute. Legitimate
// pages send a handful of beacons per view.
const ingestRateLimit = 1000

// RouterOptions carries the transport-level knobs for Setup.
type RouterOptions struct {
	CORSOrigins []string

	// Public query endpoint abuse controls.
	PublicRateLimit  int
	PublicRateWindow time.Duration
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so our middleware works with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all routes.
func Setup(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Write path. The limit is permissive: it only has to stop a
	// single misbehaving client, not real traffic bursts. The handler
	// itself bounds the request body.
	r.With(
		httprate.LimitByIP(ingestRateLimit, time.Minute),
		chiMiddleware(middleware.PrometheusMetrics("/")),
	).Post("/", h.Beacon)

	// Read path: authenticated dashboard queries.
	r.Route("/v0/pipes", func(r chi.Router) {
		r.Use(chiMiddleware(middleware.PrometheusMetrics("/v0/pipes/{pipe}")))
		r.Use(chiMiddleware(middleware.Compression))
		r.Use(chiMiddleware(h.authenticate))
		r.Get("/{pipe}.json", h.QueryPipe)
	})

	// Read path: public stats pages, per-IP rate limited instead of
	// authenticated.
	r.Route("/v0/public/pipes", func(r chi.Router) {
		r.Use(httprate.LimitByIP(opts.PublicRateLimit, opts.PublicRateWindow))
		r.Use(chiMiddleware(middleware.PrometheusMetrics("/v0/public/pipes/{pipe}")))
		r.Use(chiMiddleware(middleware.Compression))
		r.Get("/{pipe}.json", h.PublicQueryPipe)
	})

	// Operational endpoints.
	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
