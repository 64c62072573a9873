// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package metrics defines the Prometheus instrumentation surface.
// All collectors are registered on the default registry via promauto
// and exposed through the /metrics endpoint.
package metrics
