// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package querycache

// dateColumns are the result fields recognized as date-bearing, in
// probe order. Covers time buckets and raw timestamps as the warehouse
// pipes emit them.
var dateColumns = []string{"date", "day", "hour", "month", "t", "timestamp"}

// sliceRows filters rows to those whose date field falls inside the
// window, comparing the first 10 characters (the YYYY-MM-DD prefix) so
// hour buckets and full timestamps compare as their day. Rows with no
// recognized date field pass through unfiltered rather than being
// dropped: aggregate rows without a time dimension are still valid for
// any sub-range.
func sliceRows(rows []map[string]any, w Window) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		day, ok := rowDate(row)
		if !ok {
			out = append(out, row)
			continue
		}
		if day >= w.Start && day <= w.End {
			out = append(out, row)
		}
	}
	return out
}

func rowDate(row map[string]any) (string, bool) {
	for _, col := range dateColumns {
		v, ok := row[col]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok || len(s) < 10 {
			continue
		}
		return s[:10], true
	}
	return "", false
}
