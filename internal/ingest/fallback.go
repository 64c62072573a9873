// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package ingest

import (
	"context"

	"github.com/veiltrics/veiltrics/internal/logging"
)

// tryWithFallback runs an infrastructure call and converts any failure
// into the fallback value. This is the fail-open policy in one place:
// classification infrastructure is never allowed to fail a request,
// and every swallowed error is logged with the operation name.
func tryWithFallback[T any](ctx context.Context, op string, fallback T, fn func() (T, error)) T {
	v, err := fn()
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("operation", op).
			Msg("classification call failed, using fallback")
		return fallback
	}
	return v
}
