// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package privacy

import (
	"strconv"
	"strings"
)

// DefaultAnonymizeParts is the number of trailing IPv4 octets or IPv6
// groups zeroed by default.
const DefaultAnonymizeParts = 2

// AnonymizeIP truncates an IP address to the default precision.
// See AnonymizeIPParts for the full contract.
func AnonymizeIP(ip string) string {
	return AnonymizeIPParts(ip, DefaultAnonymizeParts)
}

// AnonymizeIPParts zeroes the trailing partsToStrip octets of a
// dotted-quad IPv4 address, or the trailing partsToStrip groups of an
// IPv6 address after expanding any "::" compression to the full 8-group
// form.
//
// The function is total and never fails: already-anonymized and all-zero
// addresses pass through unchanged, malformed input (wrong segment
// count, out-of-range octet, non-hex group) is returned unchanged, and
// empty input yields the empty string. It is pure and performs no I/O.
func AnonymizeIPParts(ip string, partsToStrip int) string {
	if ip == "" {
		return ""
	}
	if partsToStrip < 0 {
		partsToStrip = 0
	}

	if strings.Contains(ip, ":") {
		return anonymizeIPv6(ip, partsToStrip)
	}
	return anonymizeIPv4(ip, partsToStrip)
}

func anonymizeIPv4(ip string, partsToStrip int) string {
	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return ip
	}
	for _, o := range octets {
		if !validOctet(o) {
			return ip
		}
	}

	if partsToStrip > 4 {
		partsToStrip = 4
	}
	for i := 4 - partsToStrip; i < 4; i++ {
		octets[i] = "0"
	}
	return strings.Join(octets, ".")
}

// validOctet accepts decimal 0-255 with no sign, spaces, or empty parts.
func validOctet(s string) bool {
	if s == "" || len(s) > 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(s)
	return err == nil && n <= 255
}

func anonymizeIPv6(ip string, partsToStrip int) string {
	groups, ok := expandIPv6(ip)
	if !ok {
		return ip
	}

	if partsToStrip > 8 {
		partsToStrip = 8
	}
	for i := 8 - partsToStrip; i < 8; i++ {
		groups[i] = "0"
	}
	return strings.Join(groups, ":")
}

// expandIPv6 expands a "::" compressed address to its full 8-group form.
// Returns false for anything that is not a structurally valid IPv6
// address of plain hex groups.
func expandIPv6(ip string) ([]string, bool) {
	if strings.Count(ip, "::") > 1 {
		return nil, false
	}

	var head, tail []string
	if idx := strings.Index(ip, "::"); idx >= 0 {
		head = splitGroups(ip[:idx])
		tail = splitGroups(ip[idx+2:])
		if len(head)+len(tail) > 7 {
			return nil, false
		}
	} else {
		head = splitGroups(ip)
		if len(head) != 8 {
			return nil, false
		}
	}

	for _, g := range append(append([]string{}, head...), tail...) {
		if !validHexGroup(g) {
			return nil, false
		}
	}

	groups := make([]string, 0, 8)
	groups = append(groups, head...)
	for i := len(head) + len(tail); i < 8; i++ {
		groups = append(groups, "0")
	}
	groups = append(groups, tail...)

	if len(groups) != 8 {
		return nil, false
	}
	return groups, true
}

func splitGroups(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ":")
}

func validHexGroup(g string) bool {
	if g == "" || len(g) > 4 {
		return false
	}
	for i := 0; i < len(g); i++ {
		c := g[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
