// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package beacon

// trackingIDLength is the exact length of a tracking ID (UUID shape:
// 8-4-4-4-12 hex groups).
const trackingIDLength = 36

// hyphenPositions marks the indexes that must hold a hyphen.
var hyphenPositions = map[int]bool{8: true, 13: true, 18: true, 23: true}

// ValidTrackingID reports whether s is a well-formed tracking ID.
// Checked character by character so malformed input fails on the first
// bad byte instead of paying for a regexp over attacker-supplied data.
func ValidTrackingID(s string) bool {
	if len(s) != trackingIDLength {
		return false
	}
	for i := 0; i < trackingIDLength; i++ {
		c := s[i]
		if hyphenPositions[i] {
			if c != '-' {
				return false
			}
			continue
		}
		if !isHex(c) {
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
