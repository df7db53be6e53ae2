// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the sidebar.
type KeyMap struct {
	Submit           key.Binding
	Escape           key.Binding
	ToggleSidebar    key.Binding
	ToggleExpand     key.Binding
	ToggleFullscreen key.Binding
	History          key.Binding
	Complete         key.Binding
	CompletePrev     key.Binding
	PageUp           key.Binding
	PageDown         key.Binding
	Quit             key.Binding
}

// DefaultKeyMap returns the default key bindings for the sidebar.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close overlay / shrink panel"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+\\"),
			key.WithHelp("C-\\", "toggle sidebar"),
		),
		ToggleExpand: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "toggle expanded"),
		),
		ToggleFullscreen: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("C-f", "toggle fullscreen"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("C-h", "conversation history"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete command"),
		),
		CompletePrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous completion"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar hints.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleSidebar, k.History, k.Quit}
}

// FullHelp returns all bindings grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Escape, k.Complete, k.CompletePrev},
		{k.ToggleSidebar, k.ToggleExpand, k.ToggleFullscreen},
		{k.History, k.PageUp, k.PageDown, k.Quit},
	}
}
