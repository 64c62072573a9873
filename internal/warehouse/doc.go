// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package warehouse is the HTTP client for the analytics warehouse:
// newline-delimited JSON event appends on the write side and named
// pipe queries on the read side, both bearer-token authenticated.
//
// The client classifies failures but does not retry; retry policy,
// backoff, and circuit breaking live in the delivery pipeline.
package warehouse
