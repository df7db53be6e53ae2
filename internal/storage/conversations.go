// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"log"

	"github.com/asoscope/asoscope-tui/internal/model"
)

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore owns the in-memory conversation collection and mirrors
// it through a Port on every mutation. The collection is written wholesale
// (no incremental diffing); ordering is insertion order and is never sorted
// or deduplicated.
//
// The store is read once at construction and thereafter treated as
// exclusively owned by this instance. Concurrent processes are not
// coordinated: last writer wins.
type ConversationStore struct {
	port Port
	key  string

	conversations []*model.Conversation
	activeID      string
}

// NewConversationStore creates a store over the given port and loads the
// persisted collection. Malformed or missing data yields an empty store;
// load never fails.
func NewConversationStore(port Port) *ConversationStore {
	s := &ConversationStore{
		port: port,
		key:  ConversationsKey,
	}
	s.conversations = s.load()
	return s
}

// =============================================================================
// LOAD / PERSIST
// =============================================================================

// load reads the persisted collection. Fail-soft: any problem is treated as
// an empty collection.
func (s *ConversationStore) load() []*model.Conversation {
	raw, ok := s.port.Get(s.key)
	if !ok || raw == "" {
		return []*model.Conversation{}
	}

	var conversations []*model.Conversation
	if err := json.Unmarshal([]byte(raw), &conversations); err != nil {
		log.Printf("conversation store: discarding malformed data: %v", err)
		return []*model.Conversation{}
	}
	if conversations == nil {
		return []*model.Conversation{}
	}
	return conversations
}

// persist writes the full collection. Write failures are logged, not
// surfaced: a failed persist must never break the chat itself.
func (s *ConversationStore) persist() {
	data, err := json.Marshal(s.conversations)
	if err != nil {
		log.Printf("conversation store: marshal failed: %v", err)
		return
	}
	if err := s.port.Set(s.key, string(data)); err != nil {
		log.Printf("conversation store: persist failed: %v", err)
	}
}

// =============================================================================
// MUTATIONS
// =============================================================================

// CreateConversation allocates a new conversation, optionally seeded with an
// initial message, makes it active, and persists the collection.
func (s *ConversationStore) CreateConversation(initial *model.Message, dashboardContext string) *model.Conversation {
	conv := model.NewConversation(dashboardContext)
	if initial != nil {
		conv.AddMessage(initial)
	}
	s.conversations = append(s.conversations, conv)
	s.activeID = conv.ID
	s.persist()
	return conv
}

// AppendMessage appends a message to the conversation with the given ID,
// preserving order, and persists. Appending to an unknown conversation is a
// silent no-op: the store's own invariants prevent it except under
// re-entrant bugs, and a missing append must not crash the panel.
func (s *ConversationStore) AppendMessage(conversationID string, msg *model.Message) {
	conv := s.Get(conversationID)
	if conv == nil {
		log.Printf("conversation store: append to unknown conversation %q ignored", conversationID)
		return
	}
	conv.AddMessage(msg)
	s.persist()
}

// MarkSaved flags the conversation as saved and persists. Unknown IDs are
// ignored.
func (s *ConversationStore) MarkSaved(conversationID string) {
	conv := s.Get(conversationID)
	if conv == nil {
		return
	}
	conv.Saved = true
	s.persist()
}

// Select makes the conversation with the given ID active. Returns false if
// no such conversation exists (the active conversation is unchanged).
func (s *ConversationStore) Select(conversationID string) bool {
	if s.Get(conversationID) == nil {
		return false
	}
	s.activeID = conversationID
	return true
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Get returns the conversation with the given ID, or nil.
func (s *ConversationStore) Get(conversationID string) *model.Conversation {
	for _, conv := range s.conversations {
		if conv.ID == conversationID {
			return conv
		}
	}
	return nil
}

// Active returns the active conversation, or nil if none exists.
func (s *ConversationStore) Active() *model.Conversation {
	if s.activeID == "" {
		return nil
	}
	return s.Get(s.activeID)
}

// ActiveID returns the active conversation ID ("" if none).
func (s *ConversationStore) ActiveID() string {
	return s.activeID
}

// All returns the conversation collection in insertion order. The slice is
// shared; callers must not reorder it.
func (s *ConversationStore) All() []*model.Conversation {
	return s.conversations
}

// Len returns the number of conversations.
func (s *ConversationStore) Len() int {
	return len(s.conversations)
}
