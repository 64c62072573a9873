// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package geo resolves visitor country/region from trusted reverse-proxy
// headers, with an offline CIDR-range database as fallback. The header
// path is preferred because it carries region/city granularity; the
// offline database is country-level only.
package geo
