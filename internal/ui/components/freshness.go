// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/asoscope/asoscope-tui/internal/format"
	"github.com/asoscope/asoscope-tui/internal/metrics"
	"github.com/asoscope/asoscope-tui/internal/ui/styles"
)

// FreshnessBadge renders the data age indicator shown in the sidebar
// header, e.g. "fresh (3h ago)". A nil summary renders a muted "no data".
func FreshnessBadge(theme *styles.Theme, summary *metrics.Summary, now time.Time) string {
	if summary == nil {
		return theme.CharCount.Render("no data")
	}

	label := summary.Freshness(now)
	age := format.RelativeAge(summary.GeneratedAt, now)
	suffix := " (" + age + " ago)"
	if age == "now" {
		suffix = " (just now)"
	}
	return theme.FreshnessBadge(label).Render(label) +
		theme.HeaderSubtitle.Render(suffix)
}
