// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package geo

import (
	"net/netip"
	"sort"
	"sync"
)

// Store is the offline IP-range to country database. Ranges are kept as
// sorted CIDR prefixes per address family and answered by binary search,
// so lookups are O(log n) over a few million rows with no allocation.
type Store struct {
	mu   sync.RWMutex
	v4   []rangeEntry
	v6   []rangeEntry
	stat Stats
}

// rangeEntry is one CIDR block mapped to a country.
type rangeEntry struct {
	prefix  netip.Prefix
	country string
}

// Stats describes the loaded database.
type Stats struct {
	IPv4Ranges int
	IPv6Ranges int
	Countries  int
}

// NewStore creates an empty geo range store.
func NewStore() *Store {
	return &Store{}
}

// Add inserts one CIDR block. Call Finalize after the last Add and
// before the first Lookup.
func (s *Store) Add(prefix netip.Prefix, countryCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := rangeEntry{prefix: prefix.Masked(), country: countryCode}
	if prefix.Addr().Is4() {
		s.v4 = append(s.v4, entry)
	} else {
		s.v6 = append(s.v6, entry)
	}
}

// Finalize sorts the range tables and computes stats. It must be called
// once after loading; Lookup results are undefined before that.
func (s *Store) Finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	less := func(entries []rangeEntry) func(i, j int) bool {
		return func(i, j int) bool {
			return entries[i].prefix.Addr().Less(entries[j].prefix.Addr())
		}
	}
	sort.Slice(s.v4, less(s.v4))
	sort.Slice(s.v6, less(s.v6))

	countries := make(map[string]struct{})
	for _, e := range s.v4 {
		countries[e.country] = struct{}{}
	}
	for _, e := range s.v6 {
		countries[e.country] = struct{}{}
	}
	s.stat = Stats{
		IPv4Ranges: len(s.v4),
		IPv6Ranges: len(s.v6),
		Countries:  len(countries),
	}
}

// Lookup resolves an IP string to a country code. Returns empty string
// when the IP is malformed or no range covers it.
func (s *Store) Lookup(ipStr string) string {
	addr, err := netip.ParseAddr(ipStr)
	if err != nil {
		return ""
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.v6
	if addr.Is4() {
		entries = s.v4
	}
	if len(entries) == 0 {
		return ""
	}

	// First entry whose network address is strictly greater than addr;
	// the candidate covering range, if any, is the one before it.
	idx := sort.Search(len(entries), func(i int) bool {
		return addr.Less(entries[i].prefix.Addr())
	})
	if idx == 0 {
		return ""
	}
	if e := entries[idx-1]; e.prefix.Contains(addr) {
		return e.country
	}
	return ""
}

// Stats returns database statistics. Valid after Finalize.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stat
}

// Len returns the total number of loaded ranges.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.v4) + len(s.v6)
}
