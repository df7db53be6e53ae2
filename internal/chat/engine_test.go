// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asoscope/asoscope-tui/internal/model"
	"github.com/asoscope/asoscope-tui/internal/storage"
)

func newTestStore(t *testing.T) *storage.ConversationStore {
	t.Helper()
	return storage.NewConversationStore(storage.NewMemPort())
}

func echoGenerator(ctx context.Context, question string) (string, error) {
	return "echo: " + question, nil
}

func failingGenerator(ctx context.Context, question string) (string, error) {
	return "", errors.New("boom")
}

func testFilters() model.FilterContext {
	year := time.Now().Year()
	return model.FilterContext{
		DateRange: model.DateRange{
			Start: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		TrafficSources: []string{"search"},
	}
}

// =============================================================================
// SEND PIPELINE
// =============================================================================

func TestSend_CreatesConversationLazily(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, nil)

	require.Nil(t, eng.Active())

	asst, err := eng.Send(context.Background(), "how are impressions?")
	require.NoError(t, err)
	require.NotNil(t, asst)

	conv := eng.Active()
	require.NotNil(t, conv)
	assert.True(t, strings.HasPrefix(conv.ID, "conv-"))
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "how are impressions?", conv.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, "echo: how are impressions?", conv.Messages[1].Content)
}

func TestSend_WelcomeSeededWhenFiltersAvailable(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, testFilters)

	_, err := eng.Send(context.Background(), "hi")
	require.NoError(t, err)

	conv := eng.Active()
	require.NotNil(t, conv)
	require.Len(t, conv.Messages, 3)
	assert.Equal(t, model.RoleAssistant, conv.Messages[0].Role)
	assert.Contains(t, conv.Messages[0].Content, "**search** traffic")
}

func TestSend_GenerationFailureAppendsApology(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, failingGenerator, nil)

	asst, err := eng.Send(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, ApologyText, asst.Content)

	conv := eng.Active()
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "test", conv.Messages[0].Content)
	assert.Equal(t, ApologyText, conv.Messages[1].Content)

	// Input re-enables after the failure.
	assert.Equal(t, StateIdle, eng.State())
	_, err = eng.Send(context.Background(), "again")
	require.NoError(t, err)
}

func TestSend_WhitespaceOnlyIsRejected(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, nil)

	_, err := eng.Send(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Nil(t, eng.Active())
	assert.Equal(t, 0, store.Len())
}

func TestSend_TruncatesOverlongInput(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, nil)

	_, err := eng.Send(context.Background(), strings.Repeat("x", 1500))
	require.NoError(t, err)

	conv := eng.Active()
	assert.Len(t, conv.Messages[0].Content, MaxQuestionLen)
}

func TestSend_RejectsReentrantSend(t *testing.T) {
	store := newTestStore(t)

	var eng *Engine
	var inner error
	gen := func(ctx context.Context, question string) (string, error) {
		_, inner = eng.Send(ctx, "second")
		return "first reply", nil
	}
	eng = NewEngine(store, gen, nil)

	_, err := eng.Send(context.Background(), "first")
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrBusy)

	conv := eng.Active()
	require.Len(t, conv.Messages, 2)
}

func TestTranscriptReadableDuringGeneration(t *testing.T) {
	release := make(chan struct{})
	gen := func(ctx context.Context, question string) (string, error) {
		<-release
		return "all clear", nil
	}
	store := newTestStore(t)
	eng := NewEngine(store, gen, nil)

	user, err := eng.Begin("how are downloads trending")
	require.NoError(t, err)
	require.True(t, eng.Busy())

	type genResult struct {
		answer string
		err    error
	}
	done := make(chan genResult, 1)
	go func() {
		answer, genErr := eng.Generate(context.Background(), user.Content)
		done <- genResult{answer, genErr}
	}()

	// The render path keeps iterating the transcript on this goroutine
	// while the generation runs on the other one.
	for i := 0; i < 64; i++ {
		for _, msg := range eng.Active().Messages {
			_ = msg.Content
		}
	}

	close(release)
	res := <-done
	require.NoError(t, res.err)

	reply := eng.Finish(res.answer, res.err)
	require.NotNil(t, reply)
	assert.Equal(t, model.RoleAssistant, reply.Role)
	assert.False(t, eng.Busy())
	assert.Equal(t, 2, eng.Active().MessageCount())
}

func TestFinish_LandsInOriginalConversation(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, nil)

	_, err := eng.Send(context.Background(), "first question")
	require.NoError(t, err)
	firstID := eng.Active().ID

	eng.StartConversation()
	secondID := eng.Active().ID
	require.NotEqual(t, firstID, secondID)

	require.True(t, eng.SwitchTo(firstID))
	_, err = eng.Begin("follow up")
	require.NoError(t, err)

	// Switching away mid-flight must not reroute the reply.
	require.True(t, eng.SwitchTo(secondID))
	reply := eng.Finish("numbers are up", nil)
	require.NotNil(t, reply)

	var first *model.Conversation
	for _, conv := range eng.History() {
		if conv.ID == firstID {
			first = conv
		}
	}
	require.NotNil(t, first)
	assert.Equal(t, 4, first.MessageCount())
	assert.Equal(t, "numbers are up", first.GetLastMessage().Content)
	assert.True(t, eng.Active().IsEmpty())
}

func TestSend_AssistantCarriesFilterSummary(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, testFilters)

	asst, err := eng.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Contains(t, asst.DashboardContext, "Search traffic")
}

// =============================================================================
// NAMED ACTIONS
// =============================================================================

func TestSaveConversation(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, nil)

	assert.ErrorIs(t, eng.SaveConversation(), ErrNoConversation)

	_, err := eng.Send(context.Background(), "hi")
	require.NoError(t, err)

	require.NoError(t, eng.SaveConversation())
	assert.True(t, eng.Active().Saved)
}

func TestHistoryAndSwitch(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, nil)

	_, err := eng.Send(context.Background(), "first conversation")
	require.NoError(t, err)
	firstID := eng.Active().ID

	eng.StartConversation()
	_, err = eng.Send(context.Background(), "second conversation")
	require.NoError(t, err)
	secondID := eng.Active().ID
	require.NotEqual(t, firstID, secondID)

	history := eng.History()
	require.Len(t, history, 2)
	assert.Equal(t, firstID, history[0].ID)
	assert.Equal(t, secondID, history[1].ID)

	assert.True(t, eng.SwitchTo(firstID))
	assert.Equal(t, firstID, eng.Active().ID)

	assert.False(t, eng.SwitchTo("conv-missing"))
	assert.Equal(t, firstID, eng.Active().ID)
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExportMarkdown(t *testing.T) {
	conv := model.NewConversation("")
	conv.AddMessage(model.NewUserMessage("hi"))
	conv.AddMessage(model.NewAssistantMessage("hello there", ""))

	got := ExportMarkdown(conv)
	want := "**user**: hi\n\n**assistant**: hello there"
	assert.Equal(t, want, got)
}

func TestExportConversation_WritesFile(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, nil)

	_, err := eng.Send(context.Background(), "export me")
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := eng.ExportConversation(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	name := filepath.Base(path)
	assert.True(t, strings.HasPrefix(name, "ai-chat-"))
	assert.True(t, strings.HasSuffix(name, ".md"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "**user**: export me")
}

func TestExportConversationJSON_WritesFile(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, nil)

	_, err := eng.Send(context.Background(), "export me")
	require.NoError(t, err)

	dir := t.TempDir()
	path, err := eng.ExportConversationJSON(dir)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(filepath.Base(path), ".json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var conv model.Conversation
	require.NoError(t, json.Unmarshal(data, &conv))
	assert.Equal(t, store.Active().ID, conv.ID)
	assert.Len(t, conv.Messages, 2)
}

func TestExportConversation_NoActive(t *testing.T) {
	store := newTestStore(t)
	eng := NewEngine(store, echoGenerator, nil)

	_, err := eng.ExportConversation(t.TempDir())
	assert.ErrorIs(t, err, ErrNoConversation)
}
