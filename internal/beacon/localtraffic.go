// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package beacon

import (
	"net/netip"
	"strings"

	"github.com/veiltrics/veiltrics/internal/models"
)

// localHosts are page hosts produced by local testing, previews, and
// opening the instrumented page from disk. Beacons from these never
// represent real visits.
var localHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"[::1]":     true,
	"::1":       true,
	"0.0.0.0":   true,
	"":          true, // file:// pages report an empty host
}

// LocalTraffic reports whether a validated beacon is local testing
// traffic that should be silently accepted with no event emitted.
// The returned reason is for the operator log only.
func LocalTraffic(b *models.Beacon) (bool, string) {
	host := strings.ToLower(b.PageHost)
	if strings.HasPrefix(host, "[") {
		if end := strings.Index(host, "]"); end >= 0 {
			host = host[:end+1]
		}
	} else if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	if localHosts[host] {
		return true, "local page host"
	}
	if strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".test") {
		return true, "local page host"
	}
	if strings.HasPrefix(strings.ToLower(b.Referrer), "file://") {
		return true, "file referrer"
	}
	return false, ""
}

// PrivateClientIP reports whether the request's source address is
// non-routable (loopback, RFC 1918, link-local, unique-local). Such
// traffic is internal monitoring or misrouted testing, never a visitor.
func PrivateClientIP(ip string) bool {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsUnspecified()
}
