// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar implements the conversational insights panel. It wires
// the chat engine, the panel width state machine and the slash command
// system into a single Bubble Tea model: questions typed into the input
// are answered asynchronously, answers render as markdown, and the panel
// can be collapsed, resized by dragging its edge, expanded or put into
// fullscreen.
package sidebar
