// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// RESULT MESSAGES
// =============================================================================

// HelpMsg carries rendered help text to display in the transcript.
type HelpMsg struct {
	Text string
}

// SavedMsg signals the active conversation was marked saved.
type SavedMsg struct{}

// ExportedMsg carries the path the conversation was written to.
type ExportedMsg struct {
	Path string
}

// NewConversationMsg signals a fresh conversation was started.
type NewConversationMsg struct {
	ID string
}

// ShowHistoryMsg asks the UI to open the conversation history overlay.
type ShowHistoryMsg struct{}

// SwitchedMsg signals the active conversation changed.
type SwitchedMsg struct {
	ID string
}

// ErrorMsg carries a command failure for the status line.
type ErrorMsg struct {
	Err error
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelp(ctx *Context, args []string) tea.Cmd {
	registry := ctx.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	return func() tea.Msg {
		return HelpMsg{Text: renderHelp(registry)}
	}
}

func handleQuit(ctx *Context, args []string) tea.Cmd {
	return tea.Quit
}

func handleNew(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		conv := ctx.Engine.StartConversation()
		return NewConversationMsg{ID: conv.ID}
	}
}

func handleSave(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		if err := ctx.Engine.SaveConversation(); err != nil {
			return ErrorMsg{Err: err}
		}
		return SavedMsg{}
	}
}

func handleExport(ctx *Context, args []string) tea.Cmd {
	dir := ctx.ExportDir
	format := "md"
	for _, arg := range args {
		switch arg {
		case "md", "json":
			format = arg
		default:
			dir = arg
		}
	}
	if dir == "" {
		dir = "."
	}
	return func() tea.Msg {
		var (
			path string
			err  error
		)
		if format == "json" {
			path, err = ctx.Engine.ExportConversationJSON(dir)
		} else {
			path, err = ctx.Engine.ExportConversation(dir)
		}
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ExportedMsg{Path: path}
	}
}

func handleHistory(ctx *Context, args []string) tea.Cmd {
	return func() tea.Msg {
		return ShowHistoryMsg{}
	}
}

func handleSwitch(ctx *Context, args []string) tea.Cmd {
	id := args[0]
	return func() tea.Msg {
		if !ctx.Engine.SwitchTo(id) {
			return ErrorMsg{Err: &ValidationError{
				Command: "/switch",
				Arg:     "id",
				Message: "no such conversation",
				Got:     id,
			}}
		}
		return SwitchedMsg{ID: id}
	}
}

// =============================================================================
// HELP RENDERING
// =============================================================================

func renderHelp(r *Registry) string {
	byCategory := r.ByCategory()

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("## Commands\n")
	for _, category := range categories {
		cmds := byCategory[category]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

		sb.WriteString("\n**" + category + "**\n")
		for _, cmd := range cmds {
			usage := cmd.Usage
			if usage == "" {
				usage = cmd.Name
			}
			sb.WriteString("- `" + usage + "` " + cmd.Description + "\n")
		}
	}
	return sb.String()
}
