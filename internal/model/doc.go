// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the insights chat:
// messages, conversations, and the dashboard filter context that scopes
// every AI exchange.
//
// Messages are immutable once created and only ever appended to a
// conversation; conversations are never reordered or deduplicated.
package model
