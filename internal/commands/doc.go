// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the sidebar.
//
// Input starting with "/" is parsed into a command and arguments, matched
// against a registry, and executed through a handler that returns a
// bubbletea command. Everything else flows to the chat engine as a
// question. The package also supplies tab completion over command names,
// arguments, and stored conversations.
package commands
