// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/asoscope/asoscope-tui/internal/model"
)

// AllSourcesSentinel in a traffic-source list means "no source filter".
const AllSourcesSentinel = "all"

var titleCaser = cases.Title(language.English)

// =============================================================================
// WELCOME MESSAGE
// =============================================================================

// WelcomeMessage produces the templated onboarding message for a new
// conversation, scoped to the active dashboard filters.
func WelcomeMessage(fc model.FilterContext) string {
	var sb strings.Builder

	sb.WriteString("Hi! I'm your ASO insights assistant.\n\n")
	sb.WriteString("I'm looking at **")
	sb.WriteString(FormatDateRange(fc.DateRange.Start, fc.DateRange.End))
	sb.WriteString("** covering ")
	sb.WriteString(FormatTrafficSources(fc.TrafficSources))

	switch n := len(fc.SelectedApps); n {
	case 0:
		// No app filter: leave the sentence as-is.
	case 1:
		sb.WriteString(" for " + fc.SelectedApps[0])
	default:
		sb.WriteString(" across " + strconv.Itoa(n) + " apps")
	}
	sb.WriteString(".\n\n")

	sb.WriteString("Ask me about impressions, downloads, conversion trends, ")
	sb.WriteString("or how your apps compare against competitors.")

	return sb.String()
}

// =============================================================================
// DATE RANGE
// =============================================================================

// FormatDateRange renders "{Jan} {2}[, 2006] - {Jan} {2}[, 2006] ({n}
// days)". The year is only shown for endpoints outside the current year.
func FormatDateRange(start, end time.Time) string {
	r := model.DateRange{Start: start, End: end}
	return formatDayShort(start) + " - " + formatDayShort(end) +
		" (" + strconv.Itoa(r.Days()) + " days)"
}

// formatDayShort renders "Jan 2", appending ", 2006" when the date is not in
// the current year.
func formatDayShort(t time.Time) string {
	if t.Year() == time.Now().Year() {
		return t.Format("Jan 2")
	}
	return t.Format("Jan 2, 2006")
}

// =============================================================================
// TRAFFIC SOURCES
// =============================================================================

// FormatTrafficSources joins traffic source names with natural-language
// conjunctions:
//
//	0 sources or the "all" sentinel -> "all traffic sources"
//	1 source                        -> "**a** traffic"
//	2 sources                       -> "**a** and **b** traffic"
//	3+ sources                      -> "**a**, **b**, and **c** traffic"
func FormatTrafficSources(sources []string) string {
	filtered := make([]string, 0, len(sources))
	for _, s := range sources {
		if s == "" || strings.EqualFold(s, AllSourcesSentinel) {
			continue
		}
		filtered = append(filtered, s)
	}

	switch len(filtered) {
	case 0:
		return "all traffic sources"
	case 1:
		return "**" + filtered[0] + "** traffic"
	case 2:
		return "**" + filtered[0] + "** and **" + filtered[1] + "** traffic"
	default:
		var sb strings.Builder
		for _, s := range filtered[:len(filtered)-1] {
			sb.WriteString("**" + s + "**, ")
		}
		sb.WriteString("and **" + filtered[len(filtered)-1] + "** traffic")
		return sb.String()
	}
}

// =============================================================================
// FILTER SUMMARY
// =============================================================================

// FilterSummary renders a one-line description of the active filters, used
// as the dashboard-context snapshot embedded in messages and shown in the
// sidebar header.
func FilterSummary(fc model.FilterContext) string {
	parts := []string{FormatDateRange(fc.DateRange.Start, fc.DateRange.End)}

	if len(fc.TrafficSources) == 0 || containsSentinel(fc.TrafficSources) {
		parts = append(parts, "all traffic sources")
	} else {
		display := make([]string, len(fc.TrafficSources))
		for i, s := range fc.TrafficSources {
			display[i] = titleCaser.String(s)
		}
		parts = append(parts, strings.Join(display, ", ")+" traffic")
	}

	switch n := len(fc.SelectedApps); n {
	case 0:
		parts = append(parts, "all apps")
	case 1:
		parts = append(parts, fc.SelectedApps[0])
	default:
		parts = append(parts, strconv.Itoa(n)+" apps")
	}

	return strings.Join(parts, " · ")
}

func containsSentinel(sources []string) bool {
	for _, s := range sources {
		if strings.EqualFold(s, AllSourcesSentinel) {
			return true
		}
	}
	return false
}
