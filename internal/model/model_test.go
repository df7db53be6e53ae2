// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want %q", msg.Role, RoleUser)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want %q", msg.Content, "hello")
	}
	if !strings.HasPrefix(msg.ID, "msg-") {
		t.Errorf("ID should start with 'msg-', got %q", msg.ID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestMessageIDs_UniqueAndOrdered(t *testing.T) {
	// IDs generated in the same millisecond must still be unique and sort
	// in generation order.
	const n = 200
	ids := make([]string, n)
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		ids[i] = NewUserMessage("x").ID
		if seen[ids[i]] {
			t.Fatalf("duplicate message ID %q", ids[i])
		}
		seen[ids[i]] = true
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewUserMessage("this is a fairly long message that should be truncated")

	preview := msg.Preview(20)
	if len([]rune(preview)) > 20 {
		t.Errorf("Preview too long: %q", preview)
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("Preview should end with ellipsis: %q", preview)
	}

	short := NewUserMessage("short")
	if short.Preview(20) != "short" {
		t.Errorf("Short message should not be truncated: %q", short.Preview(20))
	}

	multiline := NewUserMessage("did installs drop\r\nlast week\nor not")
	if got := multiline.Preview(50); got != "did installs drop last week or not" {
		t.Errorf("Preview should collapse newlines: %q", got)
	}
}

func TestNewAssistantMessage_CarriesContext(t *testing.T) {
	msg := NewAssistantMessage("answer", "Jan 1 - Jan 7, search traffic")
	if msg.Role != RoleAssistant {
		t.Errorf("Role = %q, want %q", msg.Role, RoleAssistant)
	}
	if msg.DashboardContext != "Jan 1 - Jan 7, search traffic" {
		t.Errorf("DashboardContext = %q", msg.DashboardContext)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	conv := NewConversation("ctx")

	if !strings.HasPrefix(conv.ID, "conv-") {
		t.Errorf("ID should start with 'conv-', got %q", conv.ID)
	}
	if conv.DashboardContext != "ctx" {
		t.Errorf("DashboardContext = %q, want %q", conv.DashboardContext, "ctx")
	}
	if conv.Saved {
		t.Error("New conversation should not be marked saved")
	}
	if !conv.IsEmpty() {
		t.Error("New conversation should be empty")
	}
}

func TestConversationIDs_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		conv := NewConversation("")
		if seen[conv.ID] {
			t.Fatalf("Duplicate conversation ID %q at iteration %d", conv.ID, i)
		}
		seen[conv.ID] = true
	}
}

func TestConversation_OrderPreserved(t *testing.T) {
	conv := NewConversation("")
	contents := []string{"first", "second", "third", "fourth"}
	for i, c := range contents {
		if i%2 == 0 {
			conv.AddMessage(NewUserMessage(c))
		} else {
			conv.AddMessage(NewAssistantMessage(c, ""))
		}
	}

	if conv.MessageCount() != len(contents) {
		t.Fatalf("MessageCount = %d, want %d", conv.MessageCount(), len(contents))
	}
	for i, want := range contents {
		if conv.Messages[i].Content != want {
			t.Errorf("Messages[%d].Content = %q, want %q", i, conv.Messages[i].Content, want)
		}
	}
}

func TestConversation_TitleFromFirstUserMessage(t *testing.T) {
	conv := NewConversation("")
	conv.AddMessage(NewAssistantMessage("welcome text", ""))
	if conv.Title != "" {
		t.Errorf("Assistant message should not set title, got %q", conv.Title)
	}

	conv.AddMessage(NewUserMessage("how are downloads trending?"))
	if conv.Title != "how are downloads trending?" {
		t.Errorf("Title = %q", conv.Title)
	}

	// Title is sticky: later user messages do not replace it.
	conv.AddMessage(NewUserMessage("another question"))
	if conv.Title != "how are downloads trending?" {
		t.Errorf("Title changed unexpectedly to %q", conv.Title)
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := NewConversation("ctx")
	conv.AddMessage(NewUserMessage("original"))

	clone := conv.Clone()
	clone.Messages[0].Content = "mutated"

	if conv.Messages[0].Content != "original" {
		t.Error("Clone should deep-copy messages")
	}
	if clone.ID != conv.ID || clone.DashboardContext != conv.DashboardContext {
		t.Error("Clone should preserve identity fields")
	}
}

// =============================================================================
// FILTER CONTEXT TESTS
// =============================================================================

func TestDateRange_Days(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"single day", start, 1},
		{"one week", start.AddDate(0, 0, 6), 7},
		{"thirty days", start.AddDate(0, 0, 29), 30},
		{"end before start", start.AddDate(0, 0, -1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DateRange{Start: start, End: tt.end}
			if got := r.Days(); got != tt.want {
				t.Errorf("Days() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFilterContext_IsZero(t *testing.T) {
	var fc FilterContext
	if !fc.IsZero() {
		t.Error("zero value should report IsZero")
	}

	fc.TrafficSources = []string{"search"}
	if fc.IsZero() {
		t.Error("context with traffic sources should not be zero")
	}
}
