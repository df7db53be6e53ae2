// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat orchestrates the conversational insights session: it owns
// the send pipeline (optimistic user append, response generation, formatted
// assistant append), the one-in-flight sending state, and the named actions
// the surrounding UI dispatches (save, export, history, new conversation).
//
// The response generator is injected so the engine can be driven by the
// cloud insights client in production and by stubs in tests.
package chat
