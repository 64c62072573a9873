// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package privacy

import (
	"crypto/sha256"
	"encoding/hex"
)

// SessionHash derives the rotating session identity for one visitor on
// one site. The digest is non-reversible and changes when the daily salt
// rotates, which caps linkability at one salt period. Callers must never
// persist or log the four inputs together.
func SessionHash(dailySalt, anonymizedIP, userAgent, siteHost string) string {
	h := sha256.New()
	h.Write([]byte(dailySalt))
	h.Write([]byte(anonymizedIP))
	h.Write([]byte(userAgent))
	h.Write([]byte(siteHost))
	return hex.EncodeToString(h.Sum(nil))
}
