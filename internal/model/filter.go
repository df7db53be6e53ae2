// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// FILTER CONTEXT
// =============================================================================

// DateRange is an inclusive date window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days covered by the range, inclusive.
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// FilterContext is the active dashboard scope: date range, traffic sources,
// and selected apps. It is consumed read-only by the chat layer and embedded
// as a free-text snapshot into new messages and welcome text; it is owned by
// the dashboard filter state, not by this package.
type FilterContext struct {
	DateRange      DateRange `json:"dateRange"`
	TrafficSources []string  `json:"trafficSources"`
	SelectedApps   []string  `json:"selectedApps"`
}

// IsZero reports whether the context carries no filter information at all.
func (fc FilterContext) IsZero() bool {
	return fc.DateRange.Start.IsZero() && fc.DateRange.End.IsZero() &&
		len(fc.TrafficSources) == 0 && len(fc.SelectedApps) == 0
}
