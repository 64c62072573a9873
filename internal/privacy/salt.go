// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package privacy

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Salt validation failures. A request that cannot obtain a valid salt is
// dropped; it is never hashed with a bad salt.
var (
	ErrSaltEmpty      = errors.New("daily salt is empty")
	ErrSaltTooShort   = errors.New("daily salt is below minimum length")
	ErrSaltLowEntropy = errors.New("daily salt is a single repeated character")
)

// MinSaltLength is the minimum accepted salt length. The rotation job
// writes 64-character salts; anything shorter indicates corruption.
const MinSaltLength = 16

// DefaultSaltTTL bounds how long a fetched salt is reused before the
// store is consulted again. The salt itself rotates roughly daily; the
// one-hour cache keeps rotation lag bounded without hitting the store
// on every beacon.
const DefaultSaltTTL = time.Hour

// SaltSource loads the current daily salt from the shared config store.
type SaltSource interface {
	FetchSalt(ctx context.Context) (string, error)
}

// SaltSourceFunc adapts a function to the SaltSource interface.
type SaltSourceFunc func(ctx context.Context) (string, error)

// FetchSalt implements SaltSource.
func (f SaltSourceFunc) FetchSalt(ctx context.Context) (string, error) {
	return f(ctx)
}

// SaltCache owns the in-process copy of the rotating daily salt.
// It re-validates the salt on every cold load and tolerates concurrent
// redundant reloads: fetching is idempotent and cheap, so no exclusivity
// is required beyond keeping the cached pair consistent.
type SaltCache struct {
	source SaltSource
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	value    string
	loadedAt time.Time
}

// NewSaltCache creates a salt cache over the given source with
// DefaultSaltTTL.
func NewSaltCache(source SaltSource) *SaltCache {
	return NewSaltCacheWithClock(source, DefaultSaltTTL, time.Now)
}

// NewSaltCacheWithClock creates a salt cache with an injected TTL and
// clock, enabling deterministic tests.
func NewSaltCacheWithClock(source SaltSource, ttl time.Duration, now func() time.Time) *SaltCache {
	return &SaltCache{
		source: source,
		ttl:    ttl,
		now:    now,
	}
}

// Get returns the current daily salt, loading it from the source when
// the cached copy is absent or older than the TTL.
func (c *SaltCache) Get(ctx context.Context) (string, error) {
	c.mu.RLock()
	value, loadedAt := c.value, c.loadedAt
	c.mu.RUnlock()

	if value != "" && c.now().Sub(loadedAt) < c.ttl {
		return value, nil
	}

	salt, err := c.source.FetchSalt(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch daily salt: %w", err)
	}
	if err := ValidateSalt(salt); err != nil {
		return "", err
	}

	c.mu.Lock()
	c.value = salt
	c.loadedAt = c.now()
	c.mu.Unlock()

	return salt, nil
}

// Invalidate drops the cached salt, forcing the next Get to reload.
func (c *SaltCache) Invalidate() {
	c.mu.Lock()
	c.value = ""
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}

// ValidateSalt checks a freshly loaded salt against corruption.
func ValidateSalt(salt string) error {
	if salt == "" {
		return ErrSaltEmpty
	}
	if len(salt) < MinSaltLength {
		return ErrSaltTooShort
	}
	first := salt[0]
	uniform := true
	for i := 1; i < len(salt); i++ {
		if salt[i] != first {
			uniform = false
			break
		}
	}
	if uniform {
		return ErrSaltLowEntropy
	}
	return nil
}
