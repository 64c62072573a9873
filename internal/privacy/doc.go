// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package privacy implements the privacy controls of the ingestion
// pipeline: IP anonymization, the rotating daily salt, and the
// non-reversible session identity hash derived from both.
package privacy
