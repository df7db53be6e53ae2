// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/asoscope/asoscope-tui/internal/commands"
	"github.com/asoscope/asoscope-tui/internal/model"
	"github.com/asoscope/asoscope-tui/internal/panel"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case AnswerMsg:
		return m.handleAnswer(msg)

	case SummaryMsg:
		if msg.Err != nil {
			m.summary = nil
		} else {
			m.summary = msg.Summary
		}
		return m, nil

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.cfg = msg.Config
		}
		return m, nil

	case commands.HelpMsg:
		m.setFlash(msg.Text, false)
		m.layout()
		return m, nil

	case commands.SavedMsg:
		m.setFlash("conversation saved", false)
		m.layout()
		return m, nil

	case commands.ExportedMsg:
		m.setFlash("exported "+msg.Path, false)
		m.layout()
		return m, nil

	case commands.NewConversationMsg:
		m.syncStatus()
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case commands.ShowHistoryMsg:
		m.openHistory()
		return m, nil

	case commands.SwitchedMsg:
		m.syncStatus()
		m.refreshViewport()
		m.viewport.GotoBottom()
		return m, nil

	case commands.ErrorMsg:
		m.setFlash(msg.Err.Error(), true)
		m.layout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.machine.HandleResize(msg.Width * cellPx)
	m.layout()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// panelCols returns the panel width in terminal columns for the current
// machine state, bounded by the terminal width.
func (m *Model) panelCols() int {
	switch m.machine.State() {
	case panel.StateCollapsed:
		return 0
	case panel.StateFullscreen:
		return m.width
	default:
		cols := m.machine.Width() / cellPx
		if cols > m.width {
			cols = m.width
		}
		return cols
	}
}

// panelLeft returns the column of the panel's left border, the drag
// handle for mouse resizing.
func (m *Model) panelLeft() int {
	return m.width - m.panelCols()
}

// syncStatus refreshes the status bar fields derived from the store.
func (m *Model) syncStatus() {
	active := m.engine.Active()
	m.statusBar.Saved = active != nil && active.Saved
	m.statusBar.Conversations = len(m.engine.History())
}

// layout resizes the components to the current panel geometry.
func (m *Model) layout() {
	m.syncStatus()
	cols := m.panelCols()
	if cols == 0 {
		return
	}
	inner := cols - 2

	m.input.SetWidth(inner)
	m.statusBar.Width = inner
	m.history.SetWidth(inner)

	m.viewport.Width = inner
	m.viewport.Height = m.viewportHeight(inner)
	m.rendererWidth = 0 // force renderer rebuild at the new width
	m.refreshViewport()
}

// viewportHeight derives the message area height from the fixed rows
// around it: the panel border, the header, the input box and the status
// bar, plus the transient flash line when present.
func (m *Model) viewportHeight(inner int) int {
	h := m.height - 2 // panel border
	h--               // header
	h -= m.input.Height()
	h-- // status bar
	if m.flash != "" {
		h -= strings.Count(m.flash, "\n") + 1
	}
	if h < 3 {
		h = 3
	}
	return h
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		return m, tea.Quit
	}

	if m.flash != "" {
		m.flash = ""
		m.flashErr = false
		m.layout()
	}

	if m.history.Visible() {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.ToggleSidebar):
		m.machine.ToggleShortcut()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleExpand):
		m.machine.ToggleExpand()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleFullscreen):
		m.machine.ToggleFullscreen()
		m.layout()
		return m, nil

	case key.Matches(msg, m.keyMap.History):
		m.openHistory()
		return m, nil

	case key.Matches(msg, m.keyMap.Escape):
		if m.completion.Visible {
			m.completion.Clear()
			return m, nil
		}
		m.machine.Escape()
		m.layout()
		return m, nil
	}

	// Everything below needs an open panel.
	if m.machine.State() == panel.StateCollapsed {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Complete):
		if commands.IsCommand(m.input.Value()) {
			if m.completion.Visible {
				m.completion.Next()
			} else {
				value := m.input.Value()
				m.completion.Update(value, m.completer.Complete(value, len(value)))
			}
		}
		return m, nil

	case key.Matches(msg, m.keyMap.CompletePrev):
		if m.completion.Visible {
			m.completion.Prev()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()
	}

	// Plain keystrokes go to the input; the completion popup tracks the
	// text live while it starts with a slash.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.syncCompletions()
	m.layout()
	return m, cmd
}

// syncCompletions recomputes the popup against the current input text.
func (m *Model) syncCompletions() {
	value := m.input.Value()
	if !commands.IsCommand(value) {
		m.completion.Clear()
		return
	}
	m.completion.Update(value, m.completer.Complete(value, len(value)))
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.history.MoveUp()
	case "down", "j":
		m.history.MoveDown()
	case "enter":
		if conv := m.history.Selected(); conv != nil {
			m.engine.SwitchTo(conv.ID)
			m.refreshViewport()
			m.viewport.GotoBottom()
		}
		m.history.Hide()
	case "esc", "ctrl+h", "q":
		m.history.Hide()
	}
	return m, nil
}

// openHistory fills the overlay newest first and shows it.
func (m *Model) openHistory() {
	convs := m.engine.History()
	items := make([]*model.Conversation, len(convs))
	for i, conv := range convs {
		items[len(convs)-1-i] = conv
	}
	m.history.SetItems(items)
	m.history.Show()
}

// =============================================================================
// SUBMIT
// =============================================================================

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	// An open popup claims Enter for accepting the selection.
	if m.completion.Visible {
		if value := m.completion.Accept(); value != "" {
			m.acceptCompletion(value)
		}
		m.completion.Clear()
		m.layout()
		return m, nil
	}

	if m.input.Empty() || m.sending || m.offline {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())
	m.input.Reset()

	if commands.IsCommand(text) {
		m.layout()
		return m.runCommand(text)
	}

	user, err := m.engine.Begin(text)
	if err != nil {
		m.setFlash(err.Error(), true)
		m.layout()
		return m, nil
	}

	m.sending = true
	m.statusBar.Busy = true
	tick := m.input.SetDisabled(true)
	m.layout()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(tick, generateCmd(m.engine, user.Content))
}

// acceptCompletion splices the accepted value into the input: a bare
// command token is replaced whole, an argument replaces the last token.
func (m *Model) acceptCompletion(value string) {
	current := m.input.Value()
	if !strings.Contains(current, " ") {
		m.input.SetValue(value + " ")
		return
	}
	idx := strings.LastIndex(current, " ")
	m.input.SetValue(current[:idx+1] + value)
}

func (m Model) runCommand(text string) (tea.Model, tea.Cmd) {
	res := m.parser.Parse(text)
	if res.Command == nil {
		m.setFlash("unknown command "+res.CommandName+" (try /help)", true)
		m.layout()
		return m, nil
	}
	if err := commands.ValidateArgs(res.Command, res.Args); err != nil {
		m.setFlash(err.Error(), true)
		m.layout()
		return m, nil
	}
	return m, res.Command.Handler(m.commandContext(), res.Args)
}

// =============================================================================
// ANSWERS
// =============================================================================

func (m Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	m.engine.Finish(msg.Answer, msg.Err)

	m.sending = false
	m.statusBar.Busy = false
	focus := m.input.SetDisabled(false)

	m.layout()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, focus
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.viewport.LineUp(3)
		return m, nil

	case tea.MouseWheelDown:
		m.viewport.LineDown(3)
		return m, nil

	case tea.MouseLeft:
		if m.machine.State().Docked() && msg.X == m.panelLeft() {
			m.machine.StartDrag()
		}
		return m, nil

	case tea.MouseMotion:
		if m.machine.Dragging() {
			m.machine.DragTo(msg.X * cellPx)
			m.layout()
		}
		return m, nil

	case tea.MouseRelease:
		if m.machine.Dragging() {
			m.machine.EndDrag()
			m.layout()
		}
		return m, nil
	}
	return m, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
}
