// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/asoscope/asoscope-tui/internal/metrics"
	"github.com/asoscope/asoscope-tui/internal/model"
	"github.com/asoscope/asoscope-tui/internal/ui/styles"
)

func historyFixture(titles ...string) []*model.Conversation {
	convs := make([]*model.Conversation, 0, len(titles))
	for _, title := range titles {
		conv := model.NewConversation("")
		conv.AddMessage(model.NewUserMessage(title))
		convs = append(convs, conv)
	}
	return convs
}

func TestHistoryList_Navigation(t *testing.T) {
	h := NewHistoryList(styles.NewTheme())
	h.SetItems(historyFixture("first question", "second question", "third question"))
	h.Show()

	if got := h.Selected().GetTitle(); got != "first question" {
		t.Errorf("initial selection = %q", got)
	}

	h.MoveDown()
	if got := h.Selected().GetTitle(); got != "second question" {
		t.Errorf("after MoveDown selection = %q", got)
	}

	// Wraps at both ends.
	h.MoveUp()
	h.MoveUp()
	if got := h.Selected().GetTitle(); got != "third question" {
		t.Errorf("wrap up selection = %q", got)
	}
	h.MoveDown()
	if got := h.Selected().GetTitle(); got != "first question" {
		t.Errorf("wrap down selection = %q", got)
	}
}

func TestHistoryList_View(t *testing.T) {
	h := NewHistoryList(styles.NewTheme())
	h.SetWidth(60)
	h.SetItems(historyFixture("conversion rate question"))

	if h.View() != "" {
		t.Error("hidden overlay should render empty")
	}

	h.Show()
	view := h.View()
	if !strings.Contains(view, "Conversations") {
		t.Errorf("View missing title:\n%s", view)
	}
	if !strings.Contains(view, "conversion rate question") {
		t.Errorf("View missing conversation title:\n%s", view)
	}
}

func TestHistoryList_SavedMarker(t *testing.T) {
	items := historyFixture("keyword rankings", "competitor scan")
	items[0].Saved = true

	h := NewHistoryList(styles.NewTheme())
	h.SetWidth(60)
	h.SetItems(items)
	h.Show()

	lines := strings.Split(h.View(), "\n")
	var savedRow, unsavedRow string
	for _, line := range lines {
		if strings.Contains(line, "keyword rankings") {
			savedRow = line
		}
		if strings.Contains(line, "competitor scan") {
			unsavedRow = line
		}
	}
	if !strings.Contains(savedRow, "msgs *") {
		t.Errorf("saved row missing marker: %q", savedRow)
	}
	if strings.Contains(unsavedRow, "msgs *") {
		t.Errorf("unsaved row has marker: %q", unsavedRow)
	}
}

func TestHistoryList_EmptySelection(t *testing.T) {
	h := NewHistoryList(styles.NewTheme())
	h.Show()
	if h.Selected() != nil {
		t.Error("Selected() on empty list should be nil")
	}
	h.MoveDown() // must not panic
	if !strings.Contains(h.View(), "no saved conversations") {
		t.Error("empty overlay missing placeholder text")
	}
}

func TestFreshnessBadge(t *testing.T) {
	theme := styles.NewTheme()
	now := time.Now()

	if got := FreshnessBadge(theme, nil, now); !strings.Contains(got, "no data") {
		t.Errorf("nil summary badge = %q", got)
	}

	sum := &metrics.Summary{GeneratedAt: now.Add(-3 * time.Hour)}
	got := FreshnessBadge(theme, sum, now)
	if !strings.Contains(got, "fresh") || !strings.Contains(got, "3h") {
		t.Errorf("fresh badge = %q", got)
	}

	sum = &metrics.Summary{GeneratedAt: now.Add(-48 * time.Hour)}
	if got := FreshnessBadge(theme, sum, now); !strings.Contains(got, "aging") {
		t.Errorf("aging badge = %q", got)
	}
}

func TestStatusBar_View(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.Width = 80
	bar.Conversations = 2

	view := bar.View()
	if !strings.Contains(view, "ready") {
		t.Errorf("idle bar missing state:\n%s", view)
	}
	if !strings.Contains(view, "2 conversations") {
		t.Errorf("bar missing conversation count:\n%s", view)
	}

	bar.Busy = true
	if !strings.Contains(bar.View(), "thinking") {
		t.Error("busy bar missing thinking state")
	}
}
