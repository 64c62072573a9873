// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package querycache

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// filterKey builds the covering-cache key: project, pipe, and the
// filters hashed in sorted order. Dates are deliberately excluded so
// entries with different windows collide onto the same key and the
// freshest superset answers sub-range requests.
func filterKey(project, pipe string, filters map[string]string) string {
	return fmt.Sprintf("%s:%s:%x", project, pipe, hashFilters(filters))
}

// exactKey builds the exact-cache key: the covering key plus the
// requested window.
func exactKey(project, pipe string, filters map[string]string, w Window) string {
	return fmt.Sprintf("%s:%s:%s", filterKey(project, pipe, filters), w.Start, w.End)
}

func hashFilters(filters map[string]string) []byte {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		if filters[k] == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(filters[k])
		b.WriteByte('&')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return sum[:16]
}
