// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sidebar

import (
	"github.com/asoscope/asoscope-tui/internal/config"
	"github.com/asoscope/asoscope-tui/internal/metrics"
)

// =============================================================================
// MESSAGES
// =============================================================================

// AnswerMsg carries the raw generator output back to the update loop,
// which commits it to the conversation there. The command goroutine never
// touches the store.
type AnswerMsg struct {
	Answer string
	Err    error
}

// SummaryMsg carries the refreshed metrics summary for the freshness badge
// and the dashboard pane. Err is set when no data matched the filters.
type SummaryMsg struct {
	Summary *metrics.Summary
	Err     error
}

// ConfigReloadedMsg is sent by the config watcher when the file on disk
// changes and passes validation.
type ConfigReloadedMsg struct {
	Config *config.Config
}
