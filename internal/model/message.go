// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"sync"
	"time"

	"github.com/asoscope/asoscope-tui/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation. Immutable once
// created: the store only ever appends messages, never edits or deletes them.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content (markdown-capable)
	Content string `json:"content"`

	// DashboardContext is a free-text snapshot of the active dashboard
	// filters at creation time.
	DashboardContext string `json:"dashboardContext,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        generateMessageID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message carrying the dashboard
// context that was active when the response was generated.
func NewAssistantMessage(content, dashboardContext string) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.DashboardContext = dashboardContext
	return msg
}

// Preview returns a truncated, single-line preview of the message content.
// Newlines collapse to spaces and truncation counts runes, so multi-byte
// text is never corrupted.
func (m *Message) Preview(maxLen int) string {
	return util.TruncateRunes(util.CollapseNewlines(m.Content), maxLen)
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// =============================================================================
// ID GENERATION
// =============================================================================

var (
	idMu      sync.Mutex
	idLastMs  int64
	idCounter int
)

// generateMessageID creates a unique message ID that sorts in generation
// order. IDs created within the same millisecond are disambiguated by a
// monotonically increasing counter.
func generateMessageID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now == idLastMs {
		idCounter++
	} else {
		idLastMs = now
		idCounter = 0
	}
	return "msg-" + strconv.FormatInt(now, 10) + "-" + strconv.Itoa(idCounter)
}
