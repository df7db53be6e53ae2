// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"regexp"
	"strings"
)

// tableHeader is prepended once when metric rows are detected and the text
// does not already contain a markdown table separator.
const tableHeader = "| Metric | Value | Change |\n|--------|-------|--------|"

// metricLine matches "Label: value" lines, optionally prefixed with a list
// bullet or bold markers. The label is capped at a few words so ordinary
// prose sentences with a colon mid-line rarely match.
var metricLine = regexp.MustCompile(`^\s*(?:[-*]\s*)?(?:\*\*)?([A-Za-z][A-Za-z0-9 %/().+-]{0,39}?)(?:\*\*)?:\s+(\S.*)$`)

// FormatAIResponse rewrites "label: value" and "label: value | label2:
// value2" spans in an AI reply into markdown table rows, prepending a
// header when none exists yet. Text with no matching span is returned
// unchanged, which also makes the function a fixed point on such input.
func FormatAIResponse(raw string) string {
	lines := strings.Split(raw, "\n")

	var (
		out        []string
		matched    bool
		hasDivider bool
	)
	for _, line := range lines {
		if isTableDivider(line) {
			hasDivider = true
		}
	}

	for _, line := range lines {
		row, ok := rewriteMetricLine(line)
		if !ok {
			out = append(out, line)
			continue
		}
		if !matched && !hasDivider {
			out = append(out, tableHeader)
		}
		matched = true
		out = append(out, row)
	}

	if !matched {
		return raw
	}
	return strings.Join(out, "\n")
}

// rewriteMetricLine converts one matching line into a table row. Lines that
// are already table rows are left alone.
func rewriteMetricLine(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "|") {
		return "", false
	}

	m := metricLine.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}

	label := strings.TrimSpace(m[1])
	rest := strings.TrimSpace(m[2])

	// "label: value | label2: value2" puts the second pair's value in the
	// change column.
	value := rest
	change := ""
	if idx := strings.Index(rest, "|"); idx >= 0 {
		value = strings.TrimSpace(rest[:idx])
		second := strings.TrimSpace(rest[idx+1:])
		if colon := strings.Index(second, ":"); colon >= 0 {
			change = strings.TrimSpace(second[colon+1:])
		} else {
			change = second
		}
	}

	return "| " + label + " | " + value + " | " + change + " |", true
}

// isTableDivider reports whether the line is a markdown table separator row
// such as "|---|---|".
func isTableDivider(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return false
	}
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '|', '-', ':', ' ':
			return -1
		}
		return r
	}, trimmed)
	return stripped == "" && strings.Contains(trimmed, "-")
}
