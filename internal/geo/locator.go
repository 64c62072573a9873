// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package geo

import (
	"net/http"

	"github.com/veiltrics/veiltrics/internal/models"
)

// Locator resolves visitor locations, preferring authenticated proxy
// headers over the offline range database.
type Locator struct {
	store *Store
}

// NewLocator creates a locator over the given range store. A nil store
// disables the offline fallback.
func NewLocator(store *Store) *Locator {
	return &Locator{store: store}
}

// Locate resolves a location for one request.
//
// The proxy-header path wins whenever the correlation header
// authenticates it; the offline database is only consulted otherwise.
// The ip argument may be the non-anonymized client address: the offline
// lookup uses it transiently for accuracy and it is never stored.
// Returns nil when no signal resolves.
func (l *Locator) Locate(ip string, headers http.Header) *models.GeoLocation {
	if loc := fromHeaders(headers); loc != nil {
		return loc
	}

	if l.store == nil || ip == "" {
		return nil
	}
	if country := l.store.Lookup(ip); country != "" {
		return &models.GeoLocation{CountryCode: country}
	}
	return nil
}
