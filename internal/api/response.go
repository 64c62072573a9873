// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/veiltrics/veiltrics/internal/logging"
	"github.com/veiltrics/veiltrics/internal/models"
)

// Error codes for the read-path API.
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthorized    = "AUTHENTICATION_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeTooManyRequests = "RATE_LIMIT_EXCEEDED"
	ErrCodeUpstream        = "UPSTREAM_ERROR"
)

// respondJSON writes a success envelope.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, resp *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

// respondData wraps rows in the standard envelope.
func respondData(w http.ResponseWriter, r *http.Request, data interface{}, columns []models.ColumnMeta, stats *models.QueryStatistics, queryTime time.Duration, cached bool) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:  "success",
		Data:    data,
		Columns: columns,
		Meta: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryTime.Milliseconds(),
			Cached:      cached,
		},
		Statistics: stats,
	})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, &models.APIResponse{
		Status: "error",
		Meta: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}
