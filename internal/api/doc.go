// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package api provides HTTP routing with the Chi router.
//
// Two surfaces share the router. The write path is a single POST /
// beacon endpoint that answers fast and never leaks processing detail
// to the client. The read path serves pre-aggregated warehouse pipes
// under /v0/pipes, JWT-authenticated for dashboards and rate-limited
// per IP for public stats pages.
package api
