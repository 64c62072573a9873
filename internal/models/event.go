// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package models

// CountryUnknown is the sentinel country code written when no geo
// signal is available. It is a reserved ISO 3166-1 user-assigned code,
// so it can never collide with a real country.
const CountryUnknown = "XX"

// NormalizedEvent is the record delivered to the analytics warehouse.
//
// Privacy invariants enforced upstream of this struct:
//   - no raw IP address appears in any field
//   - no raw user-agent string appears except BotUserAgent, which is
//     populated only for unknown bot patterns and truncated to 500 chars
//   - SessionHash is exactly one SHA-256 hex digest
//   - GeoCountryCode is a valid alpha-2 code or CountryUnknown
//
// Engagement-type events carry empty classification fields; that data is
// captured once on the paired pageview and linked via SessionHash.
type NormalizedEvent struct {
	EventType   string `json:"event_type"`
	TrackingID  string `json:"tracking_id"`
	SessionHash string `json:"session_hash"`
	CreatedAt   string `json:"created_at"`

	PageHost  string `json:"page_host"`
	PagePath  string `json:"page_path"`
	PageTitle string `json:"page_title,omitempty"`
	Referrer  string `json:"referrer,omitempty"`

	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	UTMTerm     string `json:"utm_term,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`

	// Visitor source attribution (pageviews only).
	SourceName string `json:"source_name,omitempty"`
	SourceType string `json:"source_type,omitempty"`

	GeoCountryCode string `json:"geo_country_code"`
	GeoRegionName  string `json:"geo_region_name,omitempty"`
	GeoCityName    string `json:"geo_city_name,omitempty"`

	// Bot identity. BotUserAgent holds a bounded forensic copy of the
	// raw user agent and is set only when the generic fallback pattern
	// fired, since the specific bot is otherwise unidentifiable.
	IsBot        bool   `json:"is_bot"`
	BotName      string `json:"bot_name,omitempty"`
	BotParent    string `json:"bot_parent,omitempty"`
	BotCategory  string `json:"bot_category,omitempty"`
	BotUserAgent string `json:"bot_user_agent,omitempty"`

	EngagementTimeMS   int64  `json:"engagement_time_ms,omitempty"`
	ScrollDepthPercent int    `json:"scroll_depth_percent,omitempty"`
	AIService          string `json:"ai_service,omitempty"`
	ShareTarget        string `json:"share_target,omitempty"`
}

// GeoLocation is a resolved visitor location. CountryCode is always set
// (possibly to CountryUnknown); region and city are present only when the
// trusted proxy header path supplied them.
type GeoLocation struct {
	CountryCode string `json:"country_code"`
	RegionName  string `json:"region_name,omitempty"`
	CityName    string `json:"city_name,omitempty"`
}
