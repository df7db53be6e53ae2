// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import "errors"

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrBusy is returned when a send is attempted while a generation is
	// already in flight. Only one generation is permitted at a time.
	ErrBusy = errors.New("a response is already being generated")

	// ErrEmptyInput is returned when the submitted text is empty after
	// trimming. Callers treat it as a silent no-op.
	ErrEmptyInput = errors.New("message is empty")

	// ErrNoConversation is returned by actions that need an active
	// conversation when none exists yet.
	ErrNoConversation = errors.New("no active conversation")
)
