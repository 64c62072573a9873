// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package models

// Project is the registry record a beacon is authorized against.
// It is owned by the dashboard side of the product; this subsystem only
// reads it, once per request, to route and authorize the beacon.
type Project struct {
	// TrackingID is the 36-character hyphenated identifier embedded in
	// the tracking snippet.
	TrackingID string `json:"tracking_id"`

	// Domain is the registered site host. Beacons whose page_host does
	// not match are silently dropped.
	Domain string `json:"domain"`

	IsActive bool `json:"is_active"`

	// PublicPage marks projects that opted into the unauthenticated
	// public stats page.
	PublicPage bool `json:"public_page"`
}
