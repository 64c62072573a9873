// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package sources maps referrer, UTM, and user-agent signals to the
// named traffic-source taxonomy used for visitor attribution.
package sources

import (
	"net/url"
	"strings"
)

// Signals are the attribution inputs extracted from one pageview.
type Signals struct {
	Referrer  string
	UTMSource string
	UserAgent string

	// HasTextFragment reports whether the page URL carried a
	// text-fragment marker, which corroborates AI-overview referrals.
	HasTextFragment bool
}

// Result carries at most one named source plus, independently, any
// matched bot-source attribution.
type Result struct {
	SourceName string
	SourceType string

	// BotSource is the named crawler attribution, when the user agent
	// matched a bot-source registry entry. Set independently of the
	// named source.
	BotSource string
}

// Classify attributes one pageview to a traffic source.
//
// Precedence: an explicit utm_source override (for sources flagged to
// trust UTM) beats referrer-domain matching; referrer matching is
// substring-based against each source's known referrer hosts; sources
// flagged RequireTextFragment are attributed only when the corroborating
// marker is present, to avoid false positives from bare domain
// coincidence.
func Classify(sig Signals) Result {
	var res Result

	res.BotSource = matchBotSource(sig.UserAgent)

	if name, typ, ok := matchUTM(sig.UTMSource); ok {
		res.SourceName = name
		res.SourceType = typ
		return res
	}

	if name, typ, ok := matchReferrer(sig.Referrer, sig.HasTextFragment); ok {
		res.SourceName = name
		res.SourceType = typ
	}

	return res
}

func matchUTM(utmSource string) (name, typ string, ok bool) {
	if utmSource == "" {
		return "", "", false
	}
	needle := strings.ToLower(strings.TrimSpace(utmSource))

	for i := range taxonomy {
		src := &taxonomy[i]
		if !src.TrustUTM {
			continue
		}
		for _, candidate := range src.UTMSources {
			if needle == candidate {
				return src.Name, src.Type, true
			}
		}
	}
	return "", "", false
}

func matchReferrer(referrer string, hasTextFragment bool) (name, typ string, ok bool) {
	host := referrerHost(referrer)
	if host == "" {
		return "", "", false
	}

	for i := range taxonomy {
		src := &taxonomy[i]
		if src.RequireTextFragment && !hasTextFragment {
			continue
		}
		for _, candidate := range src.ReferrerHosts {
			if strings.Contains(host, candidate) {
				return src.Name, src.Type, true
			}
		}
	}
	return "", "", false
}

// referrerHost extracts the lowercase hostname from a referrer value,
// tolerating bare hostnames without a scheme.
func referrerHost(referrer string) string {
	referrer = strings.TrimSpace(referrer)
	if referrer == "" {
		return ""
	}

	if strings.Contains(referrer, "://") {
		u, err := url.Parse(referrer)
		if err != nil || u.Host == "" {
			return ""
		}
		return strings.ToLower(u.Hostname())
	}

	// Bare host, possibly with a path.
	host := referrer
	if idx := strings.IndexByte(host, '/'); idx >= 0 {
		host = host[:idx]
	}
	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}
	return strings.ToLower(host)
}

func matchBotSource(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	for i := range botSources {
		bs := &botSources[i]
		for _, pattern := range bs.UAPatterns {
			if strings.Contains(userAgent, pattern) {
				return bs.Name
			}
		}
	}
	return ""
}
