// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package geo

import (
	"net/http"
	"strings"

	"github.com/veiltrics/veiltrics/internal/models"
)

// Proxy-injected geo headers. They are only trusted when the
// correlation header proves the request actually transited the proxy;
// otherwise any client could spoof its own location.
const (
	// HeaderProxyRay is the proxy's per-request correlation ID. Its
	// presence authenticates the other proxy headers.
	HeaderProxyRay = "Cf-Ray"

	HeaderProxyCountry = "Cf-Ipcountry"
	HeaderProxyRegion  = "Cf-Region"
	HeaderProxyCity    = "Cf-Ipcity"
)

// fromHeaders extracts a location from proxy-injected geo headers.
// Returns nil when the correlation header is absent (request did not
// transit the proxy) or the country value is unusable.
func fromHeaders(headers http.Header) *models.GeoLocation {
	if headers.Get(HeaderProxyRay) == "" {
		return nil
	}

	country := strings.ToUpper(strings.TrimSpace(headers.Get(HeaderProxyCountry)))
	if !validCountryCode(country) {
		return nil
	}

	return &models.GeoLocation{
		CountryCode: country,
		RegionName:  capField(headers.Get(HeaderProxyRegion), 128),
		CityName:    capField(headers.Get(HeaderProxyCity), 128),
	}
}

// validCountryCode accepts ISO 3166-1 alpha-2 codes. The proxy sends
// "XX" for unknown and "T1" for Tor exits; both are rejected here so the
// offline fallback gets a chance.
func validCountryCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	if code == models.CountryUnknown || code == "T1" {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func capField(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max]
	}
	return s
}
