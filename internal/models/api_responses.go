// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper for the read-path
// query endpoints.
//
// Status field values:
//   - "success": Request completed, see Data field
//   - "error": Request failed, see Error field
type APIResponse struct {
	Status     string           `json:"status"`
	Data       interface{}      `json:"data"`
	Columns    []ColumnMeta     `json:"columns,omitempty"`
	Meta       Metadata         `json:"meta"`
	Statistics *QueryStatistics `json:"statistics,omitempty"`
	Error      *APIError        `json:"error,omitempty"`
}

// ColumnMeta describes one result column of a warehouse pipe, passed
// through to dashboard clients so they can type-format rows without
// guessing.
type ColumnMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Metadata contains response metadata for observability and caching.
// Cached responses report QueryTimeMS of 0 and Cached true.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// QueryStatistics mirrors the warehouse pipe execution statistics so
// dashboard clients can surface query cost.
type QueryStatistics struct {
	Elapsed   float64 `json:"elapsed"`
	RowsRead  int64   `json:"rows_read"`
	BytesRead int64   `json:"bytes_read"`
}

// APIError carries a machine-readable error code plus a human-readable
// message. Common codes: VALIDATION_ERROR, AUTHENTICATION_ERROR,
// NOT_FOUND, RATE_LIMIT_EXCEEDED, UPSTREAM_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
