// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package delivery

import (
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retry policy for warehouse appends.
const (
	// MaxAttempts is the total attempt budget per event, first try
	// included.
	MaxAttempts = 5

	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 30 * time.Second
)

// newBackoff builds the exponential delay source for one event's
// delivery. Randomization is disabled here: the 10-30% jitter is
// applied on top in nextWait, after the retry-after override, so the
// override itself is never jittered downward.
func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = maxBackoff
	b.MaxElapsedTime = 0 // attempt count is the budget, not wall time
	b.Reset()
	return b
}

// nextWait computes the delay before the next attempt: the exponential
// base, raised to any warehouse-requested retry-after, plus 10-30%
// random jitter, capped.
func nextWait(b *backoff.ExponentialBackOff, retryAfter time.Duration) time.Duration {
	wait := b.NextBackOff()
	if retryAfter > wait {
		wait = retryAfter
	}
	wait += time.Duration(float64(wait) * (0.1 + 0.2*rand.Float64()))
	if wait > maxBackoff {
		wait = maxBackoff
	}
	return wait
}
