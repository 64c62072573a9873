// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package models

// Event type values accepted on the wire.
const (
	EventTypePageview        = "pageview"
	EventTypeEngagement      = "engagement"
	EventTypeSummarizeClick  = "summarize_click"
	EventTypeSummarizeOpened = "summarize_opened"
	EventTypeShareClick      = "share_click"
)

// Beacon is one client-submitted analytics event as received from the
// tracking snippet. It is untrusted input: every string field must pass
// through sanitization before use, and the struct is never persisted as-is.
type Beacon struct {
	// DataKey is the project tracking ID routing this beacon.
	DataKey string `json:"data_key"`

	PageHost  string `json:"page_host"`
	PagePath  string `json:"page_path"`
	PageTitle string `json:"page_title,omitempty"`

	// CreatedAt is the client-reported event timestamp (ISO 8601).
	CreatedAt string `json:"created_at"`

	Referrer     string `json:"referrer,omitempty"`
	TextFragment string `json:"text_fragment,omitempty"`

	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMTerm     string `json:"utm_term,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`

	// EventType defaults to "pageview" when empty.
	EventType string `json:"event_type,omitempty"`

	// Engagement-specific fields.
	EngagementTimeMS   int64 `json:"engagement_time_ms,omitempty"`
	ScrollDepthPercent int   `json:"scroll_depth_percent,omitempty"`

	// AIService attributes summarize interactions to the assistant used.
	AIService string `json:"ai_service,omitempty"`

	// ShareTarget names the share destination for share_click events.
	ShareTarget string `json:"share_target,omitempty"`
}

// Kind returns the effective event type, defaulting to pageview.
func (b *Beacon) Kind() string {
	if b.EventType == "" {
		return EventTypePageview
	}
	return b.EventType
}
