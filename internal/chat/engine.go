// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log"
	"strings"

	"github.com/asoscope/asoscope-tui/internal/format"
	"github.com/asoscope/asoscope-tui/internal/model"
	"github.com/asoscope/asoscope-tui/internal/storage"
	"github.com/asoscope/asoscope-tui/internal/util"
)

// =============================================================================
// TYPES
// =============================================================================

// Generator produces an assistant reply for a user question. It is supplied
// by the caller; the engine assumes nothing beyond text-or-error.
type Generator func(ctx context.Context, question string) (string, error)

// State tracks the per-engine send lifecycle.
type State int

const (
	// StateIdle means the engine accepts new sends.
	StateIdle State = iota

	// StateSending means a generation is in flight and input is disabled.
	StateSending
)

// ApologyText is appended as the assistant reply when generation fails.
// The real error is logged, never shown to the user.
const ApologyText = "I'm sorry, I wasn't able to generate a response just now. Please try again."

// MaxQuestionLen bounds the text accepted by a single send.
const MaxQuestionLen = 1000

// Engine drives a conversation against an injected response generator.
// All state-touching methods must run on a single goroutine (the UI event
// loop); only Generate may be called from elsewhere.
type Engine struct {
	store    *storage.ConversationStore
	generate Generator
	filters  func() model.FilterContext
	state    State

	// sendingConv pins the conversation a Begin appended to, so Finish
	// lands the reply there even if the user switched mid-flight.
	sendingConv string
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// NewEngine wires a conversation store, a response generator, and a
// filter-context supplier. filters may be nil when no dashboard context
// is available; welcome and context summaries degrade to empty strings.
func NewEngine(store *storage.ConversationStore, gen Generator, filters func() model.FilterContext) *Engine {
	return &Engine{
		store:    store,
		generate: gen,
		filters:  filters,
	}
}

// State returns the current send state.
func (e *Engine) State() State {
	return e.state
}

// Busy reports whether a generation is in flight.
func (e *Engine) Busy() bool {
	return e.state == StateSending
}

// =============================================================================
// SEND PIPELINE
// =============================================================================

// Begin validates the question and appends the user message, lazily
// creating a conversation. It moves the engine into the sending state and
// returns the appended message; the caller follows up with Generate and
// Finish. Must run on the engine's goroutine.
func (e *Engine) Begin(question string) (*model.Message, error) {
	if e.state == StateSending {
		return nil, ErrBusy
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyInput
	}
	question = util.TruncateRunes(question, MaxQuestionLen)

	conv := e.store.Active()
	if conv == nil {
		conv = e.StartConversation()
	}

	user := model.NewUserMessage(question)
	e.store.AppendMessage(conv.ID, user)

	e.state = StateSending
	e.sendingConv = conv.ID
	return user, nil
}

// Generate invokes the response generator. It reads and writes no engine
// or store state, so it is the only phase safe to run off the engine's
// goroutine while the transcript is being rendered.
func (e *Engine) Generate(ctx context.Context, question string) (string, error) {
	return e.generate(ctx, question)
}

// Finish appends the assistant reply for the conversation Begin started,
// substituting the fixed apology when the generation failed, and returns
// the engine to idle. Generation failures are swallowed here; the cause
// is logged, never surfaced. Must run on the engine's goroutine.
func (e *Engine) Finish(answer string, genErr error) *model.Message {
	convID := e.sendingConv
	e.sendingConv = ""
	e.state = StateIdle

	var asst *model.Message
	if genErr != nil {
		log.Printf("chat: generation failed: %v", genErr)
		asst = model.NewAssistantMessage(ApologyText, e.contextSummary())
	} else {
		asst = model.NewAssistantMessage(format.FormatAIResponse(answer), e.contextSummary())
	}
	e.store.AppendMessage(convID, asst)

	return asst
}

// Send runs the full submit pipeline on the calling goroutine: Begin,
// Generate, Finish. The sending state always resets, so input re-enables
// on every path.
func (e *Engine) Send(ctx context.Context, question string) (*model.Message, error) {
	user, err := e.Begin(question)
	if err != nil {
		return nil, err
	}
	answer, genErr := e.Generate(ctx, user.Content)
	return e.Finish(answer, genErr), nil
}

// StartConversation creates and selects a fresh conversation, seeding it
// with a welcome message when dashboard filters are available.
func (e *Engine) StartConversation() *model.Conversation {
	summary := e.contextSummary()

	var initial *model.Message
	if e.filters != nil && !e.filters().IsZero() {
		initial = model.NewAssistantMessage(format.WelcomeMessage(e.filters()), summary)
	}

	return e.store.CreateConversation(initial, summary)
}

func (e *Engine) contextSummary() string {
	if e.filters == nil {
		return ""
	}
	fc := e.filters()
	if fc.IsZero() {
		return ""
	}
	return format.FilterSummary(fc)
}

// =============================================================================
// NAMED ACTIONS
// =============================================================================

// SaveConversation marks the active conversation saved.
func (e *Engine) SaveConversation() error {
	conv := e.store.Active()
	if conv == nil {
		return ErrNoConversation
	}
	e.store.MarkSaved(conv.ID)
	return nil
}

// History returns every stored conversation in insertion order.
func (e *Engine) History() []*model.Conversation {
	return e.store.All()
}

// SwitchTo makes the identified conversation active. It reports whether
// the id was found.
func (e *Engine) SwitchTo(conversationID string) bool {
	return e.store.Select(conversationID)
}

// Active returns the active conversation, or nil before the first send.
func (e *Engine) Active() *model.Conversation {
	return e.store.Active()
}
