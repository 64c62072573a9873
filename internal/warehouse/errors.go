// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package warehouse

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// APIError is a non-2xx response from the warehouse.
type APIError struct {
	StatusCode int
	Body       string

	// RetryAfter is the wait the warehouse asked for, from the
	// Retry-After header or the error body. Zero when unspecified.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("warehouse responded %d: %s", e.StatusCode, body)
}

// Retryable reports whether the failure is transient. Rate limiting,
// service-unavailable, and gateway-timeout responses are worth another
// attempt; anything else (bad request, auth failure) fails fast.
func (e *APIError) Retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsRetryable classifies any delivery error. Network-level failures
// (no response at all) are always retryable.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return err != nil
}

// RetryAfter extracts the warehouse-requested wait from an error, or
// zero when the error carries none.
func RetryAfter(err error) time.Duration {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.RetryAfter
	}
	return 0
}

// newAPIError builds an APIError from a response, resolving the
// retry-after hint from the header first and the JSON error body as a
// fallback.
func newAPIError(statusCode int, header http.Header, body []byte) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		Body:       strings.TrimSpace(string(body)),
	}
	if d := parseRetryAfterHeader(header.Get("Retry-After")); d > 0 {
		e.RetryAfter = d
	} else if d := parseRetryAfterBody(body); d > 0 {
		e.RetryAfter = d
	}
	return e
}

func parseRetryAfterHeader(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func parseRetryAfterBody(body []byte) time.Duration {
	var payload struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0
	}
	if payload.RetryAfter <= 0 {
		return 0
	}
	return time.Duration(payload.RetryAfter * float64(time.Second))
}
