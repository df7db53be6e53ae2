// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/asoscope/asoscope-tui/internal/chat"
	"github.com/asoscope/asoscope-tui/internal/commands"
	"github.com/asoscope/asoscope-tui/internal/config"
	"github.com/asoscope/asoscope-tui/internal/metrics"
	"github.com/asoscope/asoscope-tui/internal/model"
	"github.com/asoscope/asoscope-tui/internal/panel"
	"github.com/asoscope/asoscope-tui/internal/ui/components"
	"github.com/asoscope/asoscope-tui/internal/ui/styles"
)

// cellPx maps terminal columns to the logical pixel widths the panel
// machine works in. One column is treated as eight pixels, so the
// 320..800 pixel clamp corresponds to 40..100 columns.
const cellPx = 8

// summaryTimeout bounds the metrics query behind the freshness badge.
const summaryTimeout = 5 * time.Second

// Model is the top level Bubble Tea model: a metrics overview pane with
// the conversational sidebar docked on the right.
type Model struct {
	theme   *styles.Theme
	cfg     *config.Config
	engine  *chat.Engine
	machine *panel.Machine
	store   *metrics.Store
	filters func() model.FilterContext

	input     components.ChatInput
	statusBar components.StatusBar
	history   components.HistoryList
	viewport  viewport.Model

	keyMap     KeyMap
	parser     *commands.Parser
	registry   *commands.Registry
	completer  *commands.Completer
	completion *commands.CompletionState

	renderer      *glamour.TermRenderer
	rendererWidth int

	summary   *metrics.Summary
	exportDir string

	width  int
	height int
	ready  bool

	sending  bool
	flash    string
	flashErr bool

	// offline marks the insights input permanently disabled for this
	// session, set when the metrics database fails to open.
	offline bool
}

// New assembles the sidebar model. store may be nil when no metrics
// database is available; filters supplies the dashboard context injected
// into questions.
func New(theme *styles.Theme, cfg *config.Config, engine *chat.Engine, machine *panel.Machine, store *metrics.Store, filters func() model.FilterContext, exportDir string) Model {
	registry := commands.NewRegistry()
	completer := commands.NewCompleter(registry)
	completer.ConversationsFn = engine.History

	vp := viewport.New(40, 20)

	return Model{
		theme:      theme,
		cfg:        cfg,
		engine:     engine,
		machine:    machine,
		store:      store,
		filters:    filters,
		input:      components.NewChatInput(theme),
		statusBar:  components.NewStatusBar(theme),
		history:    components.NewHistoryList(theme),
		viewport:   vp,
		keyMap:     DefaultKeyMap(),
		parser:     commands.NewParser(registry),
		registry:   registry,
		completer:  completer,
		completion: commands.NewCompletionState(),
		exportDir:  exportDir,
	}
}

// WithoutInsights returns a copy with the chat input disabled for the
// whole session. Used when the metrics database is configured but failed
// to open, so answers would be generated against a broken dashboard.
func (m Model) WithoutInsights() Model {
	m.offline = true
	m.input.SetNotice("insights unavailable")
	m.input.SetDisabled(true)
	return m
}

// Init seeds the welcome conversation when metrics data is available,
// focuses the input, and kicks off the first summary refresh.
func (m Model) Init() tea.Cmd {
	if m.store != nil && !m.offline && m.engine.Active() == nil {
		m.engine.StartConversation()
	}
	if m.offline {
		return m.refreshSummaryCmd()
	}
	return tea.Batch(m.input.Focus(), m.refreshSummaryCmd())
}

// commandContext builds the execution context handed to slash commands.
func (m *Model) commandContext() *commands.Context {
	return &commands.Context{
		Engine:    m.engine,
		Panel:     m.machine,
		Config:    m.cfg,
		Registry:  m.registry,
		ExportDir: m.exportDir,
	}
}

// generateCmd runs only the generation phase off the UI goroutine. The
// user message was already appended by Begin, and the reply is committed
// by Finish when AnswerMsg arrives, so the store stays single-threaded.
func generateCmd(engine *chat.Engine, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := engine.Generate(context.Background(), question)
		return AnswerMsg{Answer: answer, Err: err}
	}
}

// refreshSummaryCmd queries the metrics store for the freshness badge.
func (m Model) refreshSummaryCmd() tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	filters := m.filters
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
		defer cancel()

		var fc model.FilterContext
		if filters != nil {
			fc = filters()
		}
		sum, err := store.Summarize(ctx, fc)
		return SummaryMsg{Summary: sum, Err: err}
	}
}

// markdownRenderer returns a glamour renderer wrapped to the given width,
// rebuilding it only when the width changes.
func (m *Model) markdownRenderer(width int) *glamour.TermRenderer {
	if m.renderer != nil && m.rendererWidth == width {
		return m.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.renderer = r
	m.rendererWidth = width
	return r
}

// Summary returns the last metrics summary, for tests and the dashboard
// pane.
func (m Model) Summary() *metrics.Summary {
	return m.summary
}

// Sending reports whether a question is in flight.
func (m Model) Sending() bool {
	return m.sending
}
