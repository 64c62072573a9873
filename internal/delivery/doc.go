// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package delivery moves normalized events to the warehouse without
// ever blocking the beacon response. Handlers enqueue and return;
// workers drain a bounded queue and run each event through a retry
// state machine behind a circuit breaker and an outbound rate limit.
//
// An event that exhausts its retry budget is logged verbatim as the
// last line of defense against silent data loss.
package delivery
