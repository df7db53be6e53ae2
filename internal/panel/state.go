// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

// =============================================================================
// PANEL STATES
// =============================================================================

// State is one of the four sidebar layout states.
type State string

const (
	// StateCollapsed renders a minimal icon rail.
	StateCollapsed State = "collapsed"

	// StateNormal is the default docked width.
	StateNormal State = "normal"

	// StateExpanded is the wider docked width.
	StateExpanded State = "expanded"

	// StateFullscreen renders a centered overlay.
	StateFullscreen State = "fullscreen"
)

// Layout constants in logical pixels.
const (
	// MinWidth and MaxWidth clamp the drag-resizable docked width.
	MinWidth = 320
	MaxWidth = 800

	// DefaultWidth is the docked width in the normal state.
	DefaultWidth = 384

	// ExpandedWidth is the docked width in the expanded state.
	ExpandedWidth = 600

	// Breakpoint is the narrow-viewport threshold. Below it a self-owned
	// panel auto-collapses on resize.
	Breakpoint = 768
)

// ParseState maps a persisted string onto a State, falling back to
// StateNormal for anything unrecognized. Corrupt stored state must never
// break mounting.
func ParseState(s string) State {
	switch State(s) {
	case StateCollapsed, StateNormal, StateExpanded, StateFullscreen:
		return State(s)
	default:
		return StateNormal
	}
}

// Docked reports whether the state renders inside the dashboard layout
// rather than as an overlay or rail.
func (s State) Docked() bool {
	return s == StateNormal || s == StateExpanded
}

func (s State) String() string {
	return string(s)
}
