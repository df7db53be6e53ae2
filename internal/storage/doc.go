// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable key-value persistence for the insights
// sidebar: the conversation collection and the per-organization panel state.
//
// Persistence goes through the Port interface so the chat engine and the
// panel state machine can run against an in-memory fake in tests and be
// pointed at any backend (file, database row, browser storage) without
// touching core logic. Reads fail soft: malformed or missing data is
// treated as absent, never raised to the caller.
package storage
