// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package botdetect classifies user-agent strings against a curated bot
// registry with a generic fallback. Classification is a total function:
// every input, including the empty string, yields exactly one outcome.
package botdetect

import "strings"

// PatternNoUA marks requests whose user agent is absent or too short to
// belong to a real browser.
const PatternNoUA = "no-ua"

// minUALength is the shortest user agent a real browser sends. Anything
// shorter is treated as automation.
const minUALength = 10

// maxRawUALength bounds the forensic copy of an unrecognized bot's user
// agent.
const maxRawUALength = 500

// genericPatterns catch bots the registry does not know by name. A match
// here retains a truncated copy of the raw user agent for registry
// improvement, since the specific bot is otherwise unidentifiable.
var genericPatterns = []string{"bot", "crawl", "spider", "scrap", "fetch"}

// Result is the outcome of classifying one user agent.
type Result struct {
	IsBot bool

	// MatchedPattern is the registry or fallback pattern that fired,
	// or PatternNoUA for absent/short user agents.
	MatchedPattern string

	// Parent is the operating organization for known bots.
	Parent string

	// Category is one of the Category* constants.
	Category string

	// RawUserAgent is a truncated copy of the user agent, retained only
	// when a generic fallback pattern fired.
	RawUserAgent string
}

// Classify determines whether a user agent belongs to a bot.
//
// Matching order: absent/short user agent, then the curated registry,
// then the generic fallback substrings. The first hit wins.
func Classify(userAgent string) Result {
	if len(userAgent) < minUALength {
		return Result{
			IsBot:          true,
			MatchedPattern: PatternNoUA,
			Category:       CategoryOther,
		}
	}

	lower := strings.ToLower(userAgent)

	for i := range registry {
		sig := &registry[i]
		if strings.Contains(lower, strings.ToLower(sig.Pattern)) {
			return Result{
				IsBot:          true,
				MatchedPattern: sig.Pattern,
				Parent:         sig.Parent,
				Category:       sig.Category,
			}
		}
	}

	for _, pattern := range genericPatterns {
		if strings.Contains(lower, pattern) {
			raw := userAgent
			if len(raw) > maxRawUALength {
				raw = raw[:maxRawUALength]
			}
			return Result{
				IsBot:          true,
				MatchedPattern: pattern,
				Category:       CategoryOther,
				RawUserAgent:   raw,
			}
		}
	}

	return Result{}
}
