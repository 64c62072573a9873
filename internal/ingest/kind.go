// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package ingest

import "github.com/veiltrics/veiltrics/internal/models"

// EventKind selects which processing stages run for one beacon.
// Modeled as an explicit enum so the fast-path/full-path split is a
// single dispatch instead of boolean flags threaded through assembly.
type EventKind int

const (
	KindPageview EventKind = iota
	KindEngagement
	KindSummarizeClick
	KindSummarizeOpened
	KindShareClick
	KindBot
)

// String returns the kind name used in logs and metrics labels.
func (k EventKind) String() string {
	switch k {
	case KindPageview:
		return "pageview"
	case KindEngagement:
		return "engagement"
	case KindSummarizeClick:
		return "summarize_click"
	case KindSummarizeOpened:
		return "summarize_opened"
	case KindShareClick:
		return "share_click"
	case KindBot:
		return "bot"
	default:
		return "unknown"
	}
}

// kindOf maps a beacon to its processing kind. Bot classification
// wins over the declared event type: a bot replaying an engagement
// beacon still takes the fast path. Unrecognized event types process
// as pageviews rather than being dropped.
func kindOf(b *models.Beacon, isBot bool) EventKind {
	if isBot {
		return KindBot
	}
	switch b.Kind() {
	case models.EventTypeEngagement:
		return KindEngagement
	case models.EventTypeSummarizeClick:
		return KindSummarizeClick
	case models.EventTypeSummarizeOpened:
		return KindSummarizeOpened
	case models.EventTypeShareClick:
		return KindShareClick
	default:
		return KindPageview
	}
}

// needsClassification reports whether the kind runs geo lookup and
// source attribution. Only pageviews do: interaction events inherit
// that context from their paired pageview via the session hash, and
// bots skip it on the fast path.
func (k EventKind) needsClassification() bool {
	return k == KindPageview
}

// minEngagementTimeMS is the dwell-time floor below which an
// engagement beacon with no scroll signal is considered noise.
const minEngagementTimeMS = 3000

// meaningfulEngagement reports whether an engagement beacon clears
// the threshold: at least three seconds of engaged time, or any
// scroll depth at all.
func meaningfulEngagement(b *models.Beacon) bool {
	return b.EngagementTimeMS >= minEngagementTimeMS || b.ScrollDepthPercent > 0
}
