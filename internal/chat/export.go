// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/asoscope/asoscope-tui/internal/model"
	"github.com/asoscope/asoscope-tui/internal/util"
)

// =============================================================================
// CONVERSATION EXPORT
// =============================================================================

// ExportMarkdown renders a conversation as "**role**: content" blocks
// joined by blank lines.
func ExportMarkdown(conv *model.Conversation) string {
	blocks := make([]string, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		blocks = append(blocks, "**"+msg.Role.String()+"**: "+msg.Content)
	}
	return strings.Join(blocks, "\n\n")
}

// ExportJSON renders the full conversation document, messages and
// dashboard context included.
func ExportJSON(conv *model.Conversation) ([]byte, error) {
	return json.MarshalIndent(conv, "", "  ")
}

// ExportFilename derives the export artifact name from the conversation's
// creation time, e.g. "ai-chat-1712345678901.md".
func ExportFilename(conv *model.Conversation, ext string) string {
	return "ai-chat-" + strconv.FormatInt(conv.CreatedAt.UnixMilli(), 10) + "." + ext
}

// ExportConversation writes the active conversation to dir as markdown
// and returns the written path.
func (e *Engine) ExportConversation(dir string) (string, error) {
	conv := e.store.Active()
	if conv == nil {
		return "", ErrNoConversation
	}

	path := filepath.Join(dir, ExportFilename(conv, "md"))
	if err := util.AtomicWriteFile(path, []byte(ExportMarkdown(conv)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ExportConversationJSON writes the active conversation to dir as JSON
// and returns the written path.
func (e *Engine) ExportConversationJSON(dir string) (string, error) {
	conv := e.store.Active()
	if conv == nil {
		return "", ErrNoConversation
	}

	data, err := ExportJSON(conv)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExportFilename(conv, "json"))
	if err := util.AtomicWriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
