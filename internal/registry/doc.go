// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package registry reads project records and the daily salt from the
// Postgres control store. Every call carries an explicit timeout so a
// slow registry can never stall beacon ingestion past its budget.
package registry
