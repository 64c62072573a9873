// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package querycache

// Window is an inclusive date range in YYYY-MM-DD form. ISO dates
// order lexicographically, so plain string comparison is correct and
// no time parsing happens on the query path.
type Window struct {
	Start string
	End   string
}

// IsZero reports whether the window carries no dates.
func (w Window) IsZero() bool {
	return w.Start == "" && w.End == ""
}

// Covers reports whether w fully contains the requested window. A
// dateless stored window only covers a dateless request: it has no
// known extent to slice from. A half-open window (one bound missing)
// on either side is never a subset of a bounded range, so it is never
// covered; treating the empty string as a date would compare it below
// every real date and silently slice away all rows.
func (w Window) Covers(req Window) bool {
	if w.IsZero() || req.IsZero() {
		return w.IsZero() && req.IsZero()
	}
	if w.Start == "" || w.End == "" || req.Start == "" || req.End == "" {
		return false
	}
	return w.Start <= req.Start && req.End <= w.End
}
