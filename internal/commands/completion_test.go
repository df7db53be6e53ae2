// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	"github.com/asoscope/asoscope-tui/internal/model"
)

func TestComplete_CommandNames(t *testing.T) {
	c := NewCompleter(NewRegistry())

	completions := c.Complete("/h", 2)
	if len(completions) == 0 {
		t.Fatal("no completions for /h")
	}

	found := false
	for _, comp := range completions {
		if comp.Value == "/help" || comp.Value == "/history" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected /help or /history in %v", completions)
	}
}

func TestComplete_PlainTextHasNoCompletions(t *testing.T) {
	c := NewCompleter(NewRegistry())

	if got := c.Complete("how are downloads", 17); got != nil {
		t.Errorf("unexpected completions: %v", got)
	}
}

func TestComplete_ConversationIDs(t *testing.T) {
	c := NewCompleter(NewRegistry())

	first := model.NewConversation("")
	first.AddMessage(model.NewUserMessage("keyword performance"))
	second := model.NewConversation("")
	second.AddMessage(model.NewUserMessage("competitor tracking"))

	c.ConversationsFn = func() []*model.Conversation {
		return []*model.Conversation{first, second}
	}

	completions := c.Complete("/switch conv-", 13)
	if len(completions) != 2 {
		t.Fatalf("completions = %v, want both conversations", completions)
	}

	// Title substring matching also works.
	completions = c.Complete("/switch competitor", 18)
	if len(completions) != 1 || completions[0].Value != second.ID {
		t.Errorf("title match = %v, want %s", completions, second.ID)
	}
}

func TestCompletionState_Navigation(t *testing.T) {
	cs := NewCompletionState()
	cs.Update("/h", []Completion{
		{Value: "/help"},
		{Value: "/history"},
	})

	if !cs.Visible {
		t.Error("state not visible after update")
	}
	if got := cs.Accept(); got != "/help" {
		t.Errorf("Accept = %q, want first candidate", got)
	}

	cs.Next()
	if got := cs.Accept(); got != "/history" {
		t.Errorf("Accept after Next = %q", got)
	}

	cs.Next()
	if got := cs.Accept(); got != "/help" {
		t.Errorf("Accept after wrap = %q", got)
	}

	cs.Prev()
	if got := cs.Accept(); got != "/history" {
		t.Errorf("Accept after Prev = %q", got)
	}

	cs.Clear()
	if cs.Visible || len(cs.Completions) != 0 {
		t.Error("Clear did not reset state")
	}
}
