// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package beacon validates raw beacon submissions before any processing.
//
// Validation runs cheapest-check-first: declared size, actual size, JSON
// shape, required fields, tracking-ID format. Failures surface as typed
// rejections that map one-to-one onto the public 400 responses; traffic
// from private networks or local testing is recognized separately and
// dropped without an error.
package beacon
