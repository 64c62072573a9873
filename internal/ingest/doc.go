// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package ingest orchestrates beacon processing: validation, silent
// drop recognition, project authorization, bot and source
// classification, geo resolution, session hashing, and hand-off to the
// delivery pipeline.
//
// The processor fails open. Any infrastructure failure during
// classification drops the event server-side while the client still
// receives an accepted response; only the security-validation
// rejections from the beacon package surface as client errors.
package ingest
