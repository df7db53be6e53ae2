// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

// =============================================================================
// STATE MACHINE
// =============================================================================

// Machine applies panel transitions against a state port and tracks the
// drag-resizable docked width plus the current viewport width.
type Machine struct {
	port  StatePort
	owned bool

	width    int
	viewport int
	dragging bool
}

// NewMachine builds a machine over an OwnedPort.
func NewMachine(port *OwnedPort) *Machine {
	return &Machine{port: port, owned: true, width: DefaultWidth}
}

// NewDelegatedMachine builds a machine whose state lives with a parent.
// Responsive auto-collapse is disabled; the parent decides.
func NewDelegatedMachine(port *DelegatedPort) *Machine {
	return &Machine{port: port, width: DefaultWidth}
}

// State returns the current panel state.
func (m *Machine) State() State {
	return m.port.State()
}

// Width returns the docked panel width in logical pixels.
func (m *Machine) Width() int {
	switch m.State() {
	case StateExpanded:
		if m.width < ExpandedWidth {
			return ExpandedWidth
		}
	case StateCollapsed:
		return 0
	}
	return m.width
}

// Narrow reports whether the viewport is below the responsive breakpoint.
func (m *Machine) Narrow() bool {
	return m.viewport > 0 && m.viewport < Breakpoint
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// ToggleExpand flips between normal and expanded. Other states are
// unaffected; the expand affordance only exists while docked.
func (m *Machine) ToggleExpand() {
	switch m.State() {
	case StateNormal:
		m.port.SetState(StateExpanded)
	case StateExpanded:
		m.port.SetState(StateNormal)
	}
}

// ToggleFullscreen flips between normal and fullscreen. Fullscreen always
// exits to normal, and is only entered from normal.
func (m *Machine) ToggleFullscreen() {
	switch m.State() {
	case StateNormal:
		m.port.SetState(StateFullscreen)
	case StateFullscreen:
		m.port.SetState(StateNormal)
	}
}

// Collapse moves to the collapsed rail from any state.
func (m *Machine) Collapse() {
	m.port.SetState(StateCollapsed)
}

// Open moves a collapsed panel back to normal.
func (m *Machine) Open() {
	if m.State() == StateCollapsed {
		m.port.SetState(StateNormal)
	}
}

// Escape applies the contextual escape key: fullscreen exits to normal,
// and on narrow viewports any docked state collapses. Repeated escapes can
// only end on normal or collapsed.
func (m *Machine) Escape() {
	switch {
	case m.State() == StateFullscreen:
		m.port.SetState(StateNormal)
	case m.Narrow() && m.State() != StateCollapsed:
		m.port.SetState(StateCollapsed)
	}
}

// ToggleShortcut applies the Ctrl+\ binding: collapsed opens to normal,
// every other state collapses.
func (m *Machine) ToggleShortcut() {
	if m.State() == StateCollapsed {
		m.port.SetState(StateNormal)
	} else {
		m.port.SetState(StateCollapsed)
	}
}

// HandleResize records the new viewport width. Crossing below the narrow
// breakpoint force-collapses a self-owned panel; a delegated panel is
// never auto-overridden.
func (m *Machine) HandleResize(viewportWidth int) {
	m.viewport = viewportWidth
	if m.owned && m.Narrow() && m.State() != StateCollapsed {
		m.port.SetState(StateCollapsed)
	}
}

// =============================================================================
// DRAG RESIZE
// =============================================================================

// StartDrag begins a left-edge resize. Only docked states are resizable.
func (m *Machine) StartDrag() {
	if m.State().Docked() {
		m.dragging = true
	}
}

// DragTo sets the docked width from the cursor's horizontal position:
// width is the distance from the cursor to the right viewport edge,
// clamped to [MinWidth, MaxWidth].
func (m *Machine) DragTo(cursorX int) {
	if !m.dragging || !m.State().Docked() {
		return
	}
	m.width = ClampWidth(m.viewport - cursorX)
}

// EndDrag finishes a resize.
func (m *Machine) EndDrag() {
	m.dragging = false
}

// Dragging reports whether a resize is in progress.
func (m *Machine) Dragging() bool {
	return m.dragging
}

// ClampWidth bounds a requested docked width.
func ClampWidth(w int) int {
	if w < MinWidth {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}
