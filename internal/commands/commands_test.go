// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"strings"
	"testing"

	"github.com/asoscope/asoscope-tui/internal/chat"
	"github.com/asoscope/asoscope-tui/internal/storage"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewConversationStore(storage.NewMemPort())
	gen := func(ctx context.Context, question string) (string, error) {
		return "reply", nil
	}
	registry := NewRegistry()
	return &Context{
		Engine:    chat.NewEngine(store, gen, nil),
		Registry:  registry,
		ExportDir: t.TempDir(),
	}
}

// =============================================================================
// PARSER
// =============================================================================

func TestParse_NotACommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("how are my downloads doing?")
	if result.IsCommand {
		t.Error("plain question parsed as command")
	}
}

func TestParse_KnownCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/switch conv-1712345")
	if !result.IsCommand {
		t.Fatal("IsCommand = false")
	}
	if result.Command == nil {
		t.Fatal("Command not matched")
	}
	if result.CommandName != "/switch" {
		t.Errorf("CommandName = %q", result.CommandName)
	}
	if len(result.Args) != 1 || result.Args[0] != "conv-1712345" {
		t.Errorf("Args = %v", result.Args)
	}
}

func TestParse_Alias(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/s")
	if result.Command == nil || result.Command.Name != "/save" {
		t.Errorf("alias /s did not resolve to /save: %+v", result.Command)
	}
}

func TestParse_UnknownCommand(t *testing.T) {
	p := NewParser(NewRegistry())

	result := p.Parse("/frobnicate")
	if !result.IsCommand {
		t.Error("IsCommand = false")
	}
	if result.Command != nil {
		t.Errorf("unexpected match: %+v", result.Command)
	}
}

func TestSplitCommandLine_Quotes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`/export "my reports"`, []string{"/export", "my reports"}},
		{`/export 'single quoted'`, []string{"/export", "single quoted"}},
		{`/switch conv-1 extra`, []string{"/switch", "conv-1", "extra"}},
	}

	for _, tt := range tests {
		got := splitCommandLine(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitCommandLine(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitCommandLine(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestValidateArgs(t *testing.T) {
	registry := NewRegistry()
	switchCmd := registry.Get("/switch")

	if err := ValidateArgs(switchCmd, nil); err == nil {
		t.Error("missing required argument accepted")
	}
	if err := ValidateArgs(switchCmd, []string{"conv-1"}); err != nil {
		t.Errorf("valid args rejected: %v", err)
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

func runCommand(t *testing.T, ctx *Context, input string) interface{} {
	t.Helper()
	p := NewParser(ctx.Registry)
	result := p.Parse(input)
	if result.Command == nil {
		t.Fatalf("command %q not found", input)
	}
	if err := ValidateArgs(result.Command, result.Args); err != nil {
		t.Fatalf("ValidateArgs: %v", err)
	}
	cmd := result.Command.Handler(ctx, result.Args)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestHandleNew(t *testing.T) {
	ctx := newTestContext(t)

	msg := runCommand(t, ctx, "/new")
	created, ok := msg.(NewConversationMsg)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if !strings.HasPrefix(created.ID, "conv-") {
		t.Errorf("ID = %q", created.ID)
	}
	if ctx.Engine.Active() == nil {
		t.Error("no active conversation after /new")
	}
}

func TestHandleSave(t *testing.T) {
	ctx := newTestContext(t)

	// Without a conversation, save surfaces an error.
	msg := runCommand(t, ctx, "/save")
	if _, ok := msg.(ErrorMsg); !ok {
		t.Fatalf("msg = %T, want ErrorMsg", msg)
	}

	runCommand(t, ctx, "/new")
	msg = runCommand(t, ctx, "/save")
	if _, ok := msg.(SavedMsg); !ok {
		t.Fatalf("msg = %T, want SavedMsg", msg)
	}
	if !ctx.Engine.Active().Saved {
		t.Error("conversation not marked saved")
	}
}

func TestHandleExport(t *testing.T) {
	ctx := newTestContext(t)

	if _, err := ctx.Engine.Send(context.Background(), "export me"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	msg := runCommand(t, ctx, "/export")
	exported, ok := msg.(ExportedMsg)
	if !ok {
		t.Fatalf("msg = %T, want ExportedMsg", msg)
	}
	if !strings.Contains(exported.Path, "ai-chat-") {
		t.Errorf("Path = %q", exported.Path)
	}
}

func TestHandleHistoryAndSwitch(t *testing.T) {
	ctx := newTestContext(t)

	msg := runCommand(t, ctx, "/history")
	if _, ok := msg.(ShowHistoryMsg); !ok {
		t.Fatalf("msg = %T, want ShowHistoryMsg", msg)
	}

	first := ctx.Engine.StartConversation()
	ctx.Engine.StartConversation()

	msg = runCommand(t, ctx, "/switch "+first.ID)
	switched, ok := msg.(SwitchedMsg)
	if !ok {
		t.Fatalf("msg = %T, want SwitchedMsg", msg)
	}
	if switched.ID != first.ID {
		t.Errorf("ID = %q, want %q", switched.ID, first.ID)
	}

	msg = runCommand(t, ctx, "/switch conv-missing")
	if _, ok := msg.(ErrorMsg); !ok {
		t.Fatalf("msg = %T, want ErrorMsg", msg)
	}
}

func TestHandleHelp(t *testing.T) {
	ctx := newTestContext(t)

	msg := runCommand(t, ctx, "/help")
	help, ok := msg.(HelpMsg)
	if !ok {
		t.Fatalf("msg = %T, want HelpMsg", msg)
	}
	for _, want := range []string{"/new", "/save", "/export", "/history"} {
		if !strings.Contains(help.Text, want) {
			t.Errorf("help missing %s", want)
		}
	}
}
