// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"sync"
	"time"
)

// titlePreviewLen is the maximum title length derived from the first user
// message.
const titlePreviewLen = 50

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds an ordered chat history sharing one dashboard context.
// Messages are kept in insertion order; insertion order is conversation
// order and is never changed after the fact.
type Conversation struct {
	// Identity
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"timestamp"`

	// Messages
	Messages []*Message `json:"messages"`

	// DashboardContext is the filter snapshot the conversation was started
	// under.
	DashboardContext string `json:"dashboardContext"`

	// Saved marks conversations the user explicitly kept.
	Saved bool `json:"saved"`
}

var (
	convIDMu     sync.Mutex
	convIDLastMs int64
)

// NewConversation creates a new conversation with a time-based unique ID.
// IDs created within the same millisecond are bumped forward so they stay
// unique within a store.
func NewConversation(dashboardContext string) *Conversation {
	now := time.Now()

	convIDMu.Lock()
	ms := now.UnixMilli()
	if ms <= convIDLastMs {
		ms = convIDLastMs + 1
	}
	convIDLastMs = ms
	convIDMu.Unlock()

	return &Conversation{
		ID:               "conv-" + strconv.FormatInt(ms, 10),
		CreatedAt:        now,
		Messages:         make([]*Message, 0),
		DashboardContext: dashboardContext,
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AddMessage appends a message, preserving insertion order. The first user
// message becomes the conversation title if none is set yet.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.updateTitle()
}

// GetLastMessage returns the most recent message, or nil if empty.
func (c *Conversation) GetLastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// FirstUserMessage returns the earliest user message, or nil if none exists.
func (c *Conversation) FirstUserMessage() *Message {
	for _, msg := range c.Messages {
		if msg.Role == RoleUser {
			return msg
		}
	}
	return nil
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle derives the title from the first user message if not set.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	if first := c.FirstUserMessage(); first != nil {
		c.Title = first.Preview(titlePreviewLen)
	}
}

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Conversation"
}

// =============================================================================
// HELPERS
// =============================================================================

// Preview returns a short preview of the conversation for list display.
func (c *Conversation) Preview() string {
	if len(c.Messages) == 0 {
		return "Empty conversation"
	}
	if first := c.FirstUserMessage(); first != nil {
		return first.Preview(100)
	}
	return c.Messages[0].Preview(100)
}

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	clone := &Conversation{
		ID:               c.ID,
		Title:            c.Title,
		CreatedAt:        c.CreatedAt,
		DashboardContext: c.DashboardContext,
		Saved:            c.Saved,
		Messages:         make([]*Message, len(c.Messages)),
	}
	for i, msg := range c.Messages {
		msgCopy := *msg
		clone.Messages[i] = &msgCopy
	}
	return clone
}
