// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package beacon

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/veiltrics/veiltrics/internal/models"
)

// MaxPayloadBytes is the hard ceiling on a beacon body. Real beacons
// are well under 2 KiB; anything near this limit is abuse.
const MaxPayloadBytes = 100 * 1024

// CheckContentLength rejects oversized payloads from the Content-Length
// header alone, before the body is read. A missing or lying header is
// not trusted: Validate re-checks the actual byte count.
func CheckContentLength(contentLength int64) *Rejection {
	if contentLength > MaxPayloadBytes {
		return reject(CodePayloadTooLarge, "Payload exceeds maximum size")
	}
	return nil
}

// Validate parses and sanitizes a raw beacon body. On success the
// returned beacon has every string field HTML-stripped and length-capped.
// Checks run in strict order, cheapest first; the first failure wins.
func Validate(body []byte) (*models.Beacon, *Rejection) {
	if len(body) > MaxPayloadBytes {
		return nil, reject(CodePayloadTooLarge, "Payload exceeds maximum size")
	}

	var b models.Beacon
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, reject(CodeMalformedJSON, "Request body is not valid JSON")
	}

	sanitize(&b)

	// Pages opened from disk report an empty host. That is local
	// traffic, not a malformed submission: it must pass through so the
	// local-traffic check can accept it silently instead of a 400.
	if b.PageHost == "" && strings.HasPrefix(strings.ToLower(b.Referrer), "file://") {
		return &b, nil
	}

	var missing []string
	if b.PageHost == "" {
		missing = append(missing, "page_host")
	}
	if b.PagePath == "" {
		missing = append(missing, "page_path")
	}
	if b.CreatedAt == "" {
		missing = append(missing, "created_at")
	}
	if len(missing) > 0 {
		return nil, reject(CodeMissingRequiredFields,
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	if b.DataKey == "" {
		return nil, reject(CodeMissingTrackingID, "Missing tracking ID")
	}
	if !ValidTrackingID(b.DataKey) {
		return nil, reject(CodeInvalidTrackingID, "Invalid tracking ID format")
	}

	return &b, nil
}

// sanitize cleans every client-controlled string field in place.
// DataKey is deliberately excluded: it is validated structurally and
// must not be silently rewritten.
func sanitize(b *models.Beacon) {
	b.PageHost = strings.ToLower(sanitizeField(b.PageHost, maxHostLength))
	b.PagePath = sanitizeField(b.PagePath, maxPathLength)
	b.PageTitle = sanitizeField(b.PageTitle, maxTitleLength)
	b.CreatedAt = sanitizeField(b.CreatedAt, maxFreeTextLength)
	b.Referrer = sanitizeField(b.Referrer, maxReferrerLength)
	b.TextFragment = sanitizeField(b.TextFragment, maxFreeTextLength)
	b.UTMSource = sanitizeField(b.UTMSource, maxUTMLength)
	b.UTMMedium = sanitizeField(b.UTMMedium, maxUTMLength)
	b.UTMCampaign = sanitizeField(b.UTMCampaign, maxUTMLength)
	b.UTMTerm = sanitizeField(b.UTMTerm, maxUTMLength)
	b.UTMContent = sanitizeField(b.UTMContent, maxUTMLength)
	b.EventType = sanitizeField(b.EventType, maxFreeTextLength)
	b.AIService = sanitizeField(b.AIService, maxFreeTextLength)
	b.ShareTarget = sanitizeField(b.ShareTarget, maxFreeTextLength)

	b.DataKey = strings.TrimSpace(b.DataKey)
}
