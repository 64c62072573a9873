// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package models defines the shared data types that flow through the
// ingestion pipeline: the inbound Beacon, the outbound NormalizedEvent,
// project registry records, geo lookup results, and the API response
// envelope used by all HTTP endpoints.
package models
