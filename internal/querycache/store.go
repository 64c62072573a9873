// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package querycache

import (
	"sync"
	"time"

	"github.com/veiltrics/veiltrics/internal/metrics"
	"github.com/veiltrics/veiltrics/internal/warehouse"
)

// DefaultTTL is how long cached pipe results stay valid.
const DefaultTTL = 5 * time.Minute

// Hit classifies a lookup outcome.
type Hit int

const (
	Miss Hit = iota
	HitExact
	HitCovering
)

// Result is a cached (or sliced) pipe payload.
type Result struct {
	Rows []map[string]any
	Meta []warehouse.ColumnMeta

	// Window is the requested range for exact hits and the stored
	// superset's range for covering hits.
	Window Window
}

type entry struct {
	rows      []map[string]any
	meta      []warehouse.ColumnMeta
	window    Window
	expiresAt time.Time
}

// Store is the in-memory query cache.
type Store struct {
	mu       sync.RWMutex
	exact    map[string]entry
	covering map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

// New creates a store with the given TTL and starts its background
// cleanup loop.
func New(ttl time.Duration) *Store {
	s := newStore(ttl)
	go s.cleanupLoop()
	return s
}

// newStore creates a store without the cleanup goroutine. Tests use it
// directly with a fake clock.
func newStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		exact:    make(map[string]entry),
		covering: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Lookup resolves a query from cache. Exact hits return the stored
// payload as-is; covering hits slice the stored superset down to the
// requested window.
func (s *Store) Lookup(project, pipe string, filters map[string]string, w Window) (*Result, Hit) {
	now := s.now()

	s.mu.RLock()
	ex, exOK := s.exact[exactKey(project, pipe, filters, w)]
	cov, covOK := s.covering[filterKey(project, pipe, filters)]
	s.mu.RUnlock()

	if exOK && now.Before(ex.expiresAt) {
		metrics.CacheHits.WithLabelValues("exact").Inc()
		return &Result{Rows: ex.rows, Meta: ex.meta, Window: ex.window}, HitExact
	}

	if covOK && now.Before(cov.expiresAt) && cov.window.Covers(w) {
		rows := cov.rows
		if !w.IsZero() {
			rows = sliceRows(rows, w)
		}
		metrics.CacheHits.WithLabelValues("covering").Inc()
		return &Result{Rows: rows, Meta: cov.meta, Window: cov.window}, HitCovering
	}

	metrics.CacheMisses.Inc()
	return nil, Miss
}

// Put stores a fresh pipe result under both keyings. Best-effort by
// construction: it cannot fail, and a racing Put simply last-writes.
func (s *Store) Put(project, pipe string, filters map[string]string, w Window, rows []map[string]any, meta []warehouse.ColumnMeta) {
	e := entry{
		rows:      rows,
		meta:      meta,
		window:    w,
		expiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.exact[exactKey(project, pipe, filters, w)] = e
	s.covering[filterKey(project, pipe, filters)] = e
	metrics.CacheEntries.Set(float64(len(s.exact) + len(s.covering)))
	s.mu.Unlock()
}

// Len returns the number of live entries across both keyings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exact) + len(s.covering)
}

func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.cleanup()
	}
}

func (s *Store) cleanup() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.exact {
		if now.After(e.expiresAt) {
			delete(s.exact, k)
		}
	}
	for k, e := range s.covering {
		if now.After(e.expiresAt) {
			delete(s.covering, k)
		}
	}
	metrics.CacheEntries.Set(float64(len(s.exact) + len(s.covering)))
}
