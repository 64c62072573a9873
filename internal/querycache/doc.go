// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package querycache caches warehouse pipe results in memory with TTL
// expiration.
//
// Two keyings coexist. The exact cache hashes filters and the date
// range together and answers repeat identical queries. The covering
// cache hashes filters only: a stored 30-day aggregate can answer a
// 7-day request by slicing the stored rows down to the requested
// window. Writes are best-effort and never fail a request.
package querycache
