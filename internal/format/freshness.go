// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strconv"
	"time"
)

// Freshness buckets for generated insights.
const (
	FreshnessFresh = "fresh"
	FreshnessAging = "aging"
	FreshnessStale = "stale"
)

// Age thresholds for freshness buckets.
const (
	freshnessAgingAfter = 24 * time.Hour
	freshnessStaleAfter = 7 * 24 * time.Hour
)

// FreshnessLabel buckets an insight's age into fresh/aging/stale. Future
// timestamps are treated as fresh.
func FreshnessLabel(generatedAt, now time.Time) string {
	age := now.Sub(generatedAt)
	switch {
	case age < freshnessAgingAfter:
		return FreshnessFresh
	case age < freshnessStaleAfter:
		return FreshnessAging
	default:
		return FreshnessStale
	}
}

// RelativeAge renders a compact age string for list rows: "now", "5m",
// "3h", "2d".
func RelativeAge(t, now time.Time) string {
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "now"
	case age < time.Hour:
		return strconv.Itoa(int(age.Minutes())) + "m"
	case age < 24*time.Hour:
		return strconv.Itoa(int(age.Hours())) + "h"
	default:
		return strconv.Itoa(int(age.Hours()/24)) + "d"
	}
}
