// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/asoscope/asoscope-tui/internal/format"
	"github.com/asoscope/asoscope-tui/internal/model"
	"github.com/asoscope/asoscope-tui/internal/ui/styles"
	"github.com/asoscope/asoscope-tui/internal/util"
)

// =============================================================================
// HISTORY OVERLAY
// =============================================================================

// maxHistoryRows bounds the overlay height regardless of list size.
const maxHistoryRows = 10

// HistoryList is the conversation picker overlay. Items are held newest
// first, matching the order the picker presents them.
type HistoryList struct {
	theme *styles.Theme

	items   []*model.Conversation
	cursor  int
	offset  int
	width   int
	visible bool
}

// NewHistoryList creates a hidden history overlay.
func NewHistoryList(theme *styles.Theme) HistoryList {
	return HistoryList{theme: theme}
}

// SetItems replaces the listed conversations and clamps the cursor.
func (h *HistoryList) SetItems(items []*model.Conversation) {
	h.items = items
	if h.cursor >= len(items) {
		h.cursor = len(items) - 1
	}
	if h.cursor < 0 {
		h.cursor = 0
	}
	h.clampOffset()
}

// SetWidth resizes the overlay.
func (h *HistoryList) SetWidth(width int) {
	h.width = width
}

// Show makes the overlay visible with the cursor on the first item.
func (h *HistoryList) Show() {
	h.visible = true
	h.cursor = 0
	h.offset = 0
}

// Hide dismisses the overlay.
func (h *HistoryList) Hide() {
	h.visible = false
}

// Visible reports whether the overlay is shown.
func (h *HistoryList) Visible() bool {
	return h.visible
}

// MoveUp moves the cursor up, wrapping at the top.
func (h *HistoryList) MoveUp() {
	if len(h.items) == 0 {
		return
	}
	h.cursor--
	if h.cursor < 0 {
		h.cursor = len(h.items) - 1
	}
	h.clampOffset()
}

// MoveDown moves the cursor down, wrapping at the bottom.
func (h *HistoryList) MoveDown() {
	if len(h.items) == 0 {
		return
	}
	h.cursor = (h.cursor + 1) % len(h.items)
	h.clampOffset()
}

// Selected returns the conversation under the cursor, or nil.
func (h *HistoryList) Selected() *model.Conversation {
	if h.cursor < 0 || h.cursor >= len(h.items) {
		return nil
	}
	return h.items[h.cursor]
}

// clampOffset keeps the cursor inside the visible window.
func (h *HistoryList) clampOffset() {
	if h.cursor < h.offset {
		h.offset = h.cursor
	}
	if h.cursor >= h.offset+maxHistoryRows {
		h.offset = h.cursor - maxHistoryRows + 1
	}
	if h.offset < 0 {
		h.offset = 0
	}
}

// View renders the overlay box. Hidden overlays render empty.
func (h HistoryList) View() string {
	if !h.visible {
		return ""
	}

	now := time.Now()
	inner := h.width - 4
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString(h.theme.HistoryTitle.Render("Conversations"))
	b.WriteString("\n")

	if len(h.items) == 0 {
		b.WriteString(h.theme.HistoryMeta.Render("no saved conversations"))
	}

	end := h.offset + maxHistoryRows
	if end > len(h.items) {
		end = len(h.items)
	}
	for i := h.offset; i < end; i++ {
		conv := h.items[i]
		meta := format.RelativeAge(conv.CreatedAt, now) + " " +
			strconv.Itoa(conv.MessageCount()) + " msgs"
		if conv.Saved {
			meta += " *"
		}
		title := util.TruncateWidth(conv.GetTitle(), inner-len(meta)-3)

		row := title + strings.Repeat(" ", max(1, inner-len(meta)-util.StringWidth(title))) + meta
		if i == h.cursor {
			b.WriteString(h.theme.HistoryItemSelected.Render("> " + row))
		} else {
			b.WriteString(h.theme.HistoryItem.Render("  " + row))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	box := h.theme.HistoryBox
	if h.width > 0 {
		box = box.Width(h.width - 2)
	}
	return box.Render(b.String())
}
