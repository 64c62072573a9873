// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package config loads layered configuration with Koanf v2.
//
// Precedence, lowest to highest: built-in defaults, an optional YAML
// config file, environment variables. Secrets (warehouse token,
// registry DSN, JWT secret) are expected from the environment and
// never have defaults.
package config
