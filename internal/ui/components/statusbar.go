// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/asoscope/asoscope-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is a key hint rendered in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the single-row bar at the bottom of the sidebar. It shows
// the engine state on the left, the conversation count in the middle and
// keyboard hints on the right.
type StatusBar struct {
	theme *styles.Theme

	Width         int
	Busy          bool
	Saved         bool
	Conversations int
	Shortcuts     []Shortcut
}

// NewStatusBar creates a status bar with the default shortcut hints.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{
		theme: theme,
		Shortcuts: []Shortcut{
			{Key: "C-\\", Desc: "sidebar"},
			{Key: "C-e", Desc: "expand"},
			{Key: "C-f", Desc: "full"},
			{Key: "C-h", Desc: "history"},
		},
	}
}

// View renders the status bar padded to its width.
func (s StatusBar) View() string {
	var left string
	switch {
	case s.Busy:
		left = s.theme.ThinkingText.Render("thinking")
	case s.Saved:
		left = s.theme.ShortcutDesc.Render("saved")
	default:
		left = s.theme.ShortcutDesc.Render("ready")
	}

	mid := ""
	if s.Conversations > 0 {
		label := " conversations"
		if s.Conversations == 1 {
			label = " conversation"
		}
		mid = s.theme.ShortcutDesc.Render(strconv.Itoa(s.Conversations) + label)
	}

	var hints []string
	for _, sc := range s.Shortcuts {
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	inner := s.Width - 2
	gapTotal := inner - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right)
	if gapTotal < 2 {
		// Narrow panels drop the hints first, then the count.
		right = ""
		gapTotal = inner - lipgloss.Width(left) - lipgloss.Width(mid)
		if gapTotal < 2 {
			mid = ""
			gapTotal = inner - lipgloss.Width(left)
		}
	}
	if gapTotal < 0 {
		gapTotal = 0
	}

	gap1 := gapTotal / 2
	gap2 := gapTotal - gap1
	line := left + strings.Repeat(" ", gap1) + mid + strings.Repeat(" ", gap2) + right

	bar := s.theme.StatusBar
	if s.Width > 0 {
		bar = bar.Width(s.Width)
	}
	return bar.Render(line)
}
