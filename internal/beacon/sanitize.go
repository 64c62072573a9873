// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package beacon

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Per-field length caps applied after sanitization. Anything longer is
// truncated, not rejected: these fields are display data, not identity.
const (
	maxHostLength     = 253
	maxPathLength     = 2048
	maxTitleLength    = 512
	maxReferrerLength = 2048
	maxUTMLength      = 255
	maxFreeTextLength = 255
)

var (
	sanitizePolicy *bluemonday.Policy
	sanitizeOnce   sync.Once
)

// sanitizeField strips all HTML markup from untrusted beacon input and
// caps the result. Entities introduced by the policy's escaping are
// unescaped back: the output is stored as plain text, never rendered
// into HTML.
func sanitizeField(s string, max int) string {
	sanitizeOnce.Do(func() {
		sanitizePolicy = bluemonday.StrictPolicy()
	})

	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = html.UnescapeString(sanitizePolicy.Sanitize(s))
	s = strings.TrimSpace(s)
	if len(s) > max {
		s = s[:max]
	}
	return s
}
