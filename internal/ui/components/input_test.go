// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/asoscope/asoscope-tui/internal/ui/styles"
)

func typeRunes(t *testing.T, in ChatInput, s string) ChatInput {
	t.Helper()
	for _, r := range s {
		in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return in
}

func TestChatInput_Typing(t *testing.T) {
	in := NewChatInput(styles.NewTheme())
	in.SetWidth(60)

	in = typeRunes(t, in, "why did downloads drop")

	if got := in.Value(); got != "why did downloads drop" {
		t.Errorf("Value() = %q", got)
	}
	if in.Empty() {
		t.Error("Empty() = true after typing")
	}

	in.Reset()
	if in.Value() != "" {
		t.Errorf("Value() after Reset = %q", in.Value())
	}
	if !in.Empty() {
		t.Error("Empty() = false after Reset")
	}
}

func TestChatInput_DisabledDropsKeys(t *testing.T) {
	in := NewChatInput(styles.NewTheme())
	in.SetWidth(60)
	in = typeRunes(t, in, "abc")

	cmd := in.SetDisabled(true)
	if cmd == nil {
		t.Error("SetDisabled(true) should return the spinner tick command")
	}
	if !in.Disabled() {
		t.Error("Disabled() = false")
	}

	in = typeRunes(t, in, "xyz")
	if got := in.Value(); got != "abc" {
		t.Errorf("disabled input accepted keys: %q", got)
	}

	in.SetDisabled(false)
	in = typeRunes(t, in, "d")
	if got := in.Value(); got != "abcd" {
		t.Errorf("re-enabled input rejected keys: %q", got)
	}
}

func TestChatInput_SetDisabledIdempotent(t *testing.T) {
	in := NewChatInput(styles.NewTheme())
	if cmd := in.SetDisabled(false); cmd != nil {
		t.Error("SetDisabled(false) on enabled input should be a no-op")
	}
}

func TestChatInput_CharCounter(t *testing.T) {
	in := NewChatInput(styles.NewTheme())
	in.SetWidth(60)
	in = typeRunes(t, in, "hello")

	view := in.View()
	if !strings.Contains(view, "5/1000") {
		t.Errorf("View missing character counter, got:\n%s", view)
	}
}

func TestChatInput_DisabledShowsThinking(t *testing.T) {
	in := NewChatInput(styles.NewTheme())
	in.SetWidth(60)
	in.SetDisabled(true)

	view := in.View()
	if !strings.Contains(view, "Thinking") {
		t.Errorf("disabled View missing loading indicator, got:\n%s", view)
	}
	if strings.Contains(view, "send") {
		t.Errorf("disabled View still shows the send hint:\n%s", view)
	}
}
