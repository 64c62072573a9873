// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package middleware provides HTTP middleware: request ID propagation,
// Prometheus instrumentation, and gzip compression for the read path.
//
// Middleware here uses the func(http.HandlerFunc) http.HandlerFunc
// shape; the api package adapts it onto chi's router.
package middleware
