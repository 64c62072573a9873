// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package logging

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ForensicEvent records a rejected beacon for security investigation.
// This is the one place the raw, non-anonymized client IP is persisted:
// abuse forensics, not behavioral tracking. Everything attacker-controlled
// is sanitized against log injection before it is written.
type ForensicEvent struct {
	// Code is the rejection code (PAYLOAD_TOO_LARGE, MALFORMED_JSON, ...).
	Code string
	// Reason is the human-readable rejection detail.
	Reason string
	// RemoteIP is the raw client IP address.
	RemoteIP string
	// UserAgent is the client's user agent, truncated before logging.
	UserAgent string
	// Origin and Referer are the request's origin headers.
	Origin  string
	Referer string
	// PayloadPreview holds the leading bytes of the rejected body.
	PayloadPreview string
	// RequestID correlates the entry with the HTTP trace.
	RequestID string
}

// ForensicLogger writes security-validation rejections with full request
// context.
type ForensicLogger struct {
	logger zerolog.Logger
}

// NewForensicLogger creates a forensic logger on top of the global logger.
func NewForensicLogger() *ForensicLogger {
	return &ForensicLogger{
		logger: With().Str("component", "forensic").Logger(),
	}
}

// NewForensicLoggerWithLogger creates a forensic logger with a custom
// zerolog logger, used by tests to capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewForensicLoggerWithLogger(logger zerolog.Logger) *ForensicLogger {
	return &ForensicLogger{
		logger: logger.With().Str("component", "forensic").Logger(),
	}
}

// LogRejection writes one rejection entry.
func (l *ForensicLogger) LogRejection(event *ForensicEvent) {
	e := l.logger.Warn().
		Str("code", event.Code).
		Str("reason", SanitizeLogValue(event.Reason)).
		Str("ip", SanitizeLogValue(event.RemoteIP))

	if event.UserAgent != "" {
		e = e.Str("user_agent", SanitizeLogValue(truncate(event.UserAgent, 200)))
	}
	if event.Origin != "" {
		e = e.Str("origin", SanitizeLogValue(truncate(event.Origin, 200)))
	}
	if event.Referer != "" {
		e = e.Str("referer", SanitizeLogValue(truncate(event.Referer, 200)))
	}
	if event.PayloadPreview != "" {
		e = e.Str("payload_preview", SanitizeLogValue(truncate(event.PayloadPreview, 256)))
	}
	if event.RequestID != "" {
		e = e.Str("request_id", event.RequestID)
	}

	e.Msg("beacon rejected")
}

// SanitizeLogValue replaces control characters with escaped hex so
// attacker-controlled strings cannot forge or corrupt log entries.
func SanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
