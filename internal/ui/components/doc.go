// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the asoscope
// sidebar: the chat input area, the status bar, the conversation history
// overlay, the data freshness badge, and the loading spinner.
package components
