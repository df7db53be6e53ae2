// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asoscope/asoscope-tui/internal/storage"
)

func newOwnedMachine(t *testing.T) (*Machine, *storage.MemPort) {
	t.Helper()
	mem := storage.NewMemPort()
	return NewMachine(NewOwnedPort(mem, "org-1")), mem
}

// =============================================================================
// STATE PARSING AND PERSISTENCE
// =============================================================================

func TestParseState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{"collapsed", StateCollapsed},
		{"normal", StateNormal},
		{"expanded", StateExpanded},
		{"fullscreen", StateFullscreen},
		{"", StateNormal},
		{"garbage", StateNormal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseState(tt.in), "ParseState(%q)", tt.in)
	}
}

func TestOwnedPort_PersistsAndReadsBack(t *testing.T) {
	mem := storage.NewMemPort()

	first := NewOwnedPort(mem, "org-42")
	assert.Equal(t, StateNormal, first.State())

	first.SetState(StateExpanded)

	raw, ok := mem.Get(storage.SidebarStateKey("org-42"))
	require.True(t, ok)
	assert.Equal(t, "expanded", raw)

	second := NewOwnedPort(mem, "org-42")
	assert.Equal(t, StateExpanded, second.State())
}

func TestOwnedPort_CorruptStoredStateFallsBack(t *testing.T) {
	mem := storage.NewMemPort()
	require.NoError(t, mem.Set(storage.SidebarStateKey("org-1"), "sideways"))

	port := NewOwnedPort(mem, "org-1")
	assert.Equal(t, StateNormal, port.State())
}

func TestOwnedPort_PersistFailureIsSwallowed(t *testing.T) {
	mem := storage.NewMemPort()
	mem.SetErr = assert.AnError

	port := NewOwnedPort(mem, "org-1")
	port.SetState(StateCollapsed)

	assert.Equal(t, StateCollapsed, port.State())
}

// =============================================================================
// TRANSITIONS
// =============================================================================

func TestToggleExpand(t *testing.T) {
	m, _ := newOwnedMachine(t)

	m.ToggleExpand()
	assert.Equal(t, StateExpanded, m.State())
	m.ToggleExpand()
	assert.Equal(t, StateNormal, m.State())

	m.Collapse()
	m.ToggleExpand()
	assert.Equal(t, StateCollapsed, m.State(), "expand has no effect while collapsed")
}

func TestToggleFullscreen(t *testing.T) {
	m, _ := newOwnedMachine(t)

	m.ToggleFullscreen()
	assert.Equal(t, StateFullscreen, m.State())
	m.ToggleFullscreen()
	assert.Equal(t, StateNormal, m.State())

	m.ToggleExpand()
	m.ToggleFullscreen()
	assert.Equal(t, StateExpanded, m.State(), "fullscreen is only entered from normal")
}

func TestToggleShortcut(t *testing.T) {
	m, _ := newOwnedMachine(t)

	m.ToggleShortcut()
	assert.Equal(t, StateCollapsed, m.State())
	m.ToggleShortcut()
	assert.Equal(t, StateNormal, m.State())

	m.ToggleExpand()
	m.ToggleShortcut()
	assert.Equal(t, StateCollapsed, m.State(), "any non-collapsed state collapses")
}

func TestEscape_ClosesToNormalOrCollapsed(t *testing.T) {
	for _, start := range []State{StateCollapsed, StateNormal, StateExpanded, StateFullscreen} {
		for _, viewport := range []int{1200, 600} {
			m, _ := newOwnedMachine(t)
			m.viewport = viewport
			m.port.SetState(start)

			// Escape repeatedly; the walk must terminate on normal or
			// collapsed, never fullscreen.
			for i := 0; i < 4; i++ {
				m.Escape()
			}

			got := m.State()
			assert.True(t, got == StateNormal || got == StateCollapsed,
				"from %s at viewport %d: ended on %s", start, viewport, got)
		}
	}
}

func TestEscape_FullscreenExitsToNormal(t *testing.T) {
	m, _ := newOwnedMachine(t)
	m.viewport = 600
	m.port.SetState(StateFullscreen)

	m.Escape()
	assert.Equal(t, StateNormal, m.State(), "first escape exits fullscreen even on narrow viewports")

	m.Escape()
	assert.Equal(t, StateCollapsed, m.State(), "second escape collapses on narrow viewports")
}

func TestEscape_WideDockedIsNoOp(t *testing.T) {
	m, _ := newOwnedMachine(t)
	m.viewport = 1200

	m.Escape()
	assert.Equal(t, StateNormal, m.State())
}

// =============================================================================
// RESPONSIVE BREAKPOINT
// =============================================================================

func TestHandleResize_ForcesCollapseBelowBreakpoint(t *testing.T) {
	m, _ := newOwnedMachine(t)

	m.HandleResize(1024)
	assert.Equal(t, StateNormal, m.State())

	m.HandleResize(767)
	assert.Equal(t, StateCollapsed, m.State())

	// Widening back does not auto-reopen.
	m.HandleResize(1024)
	assert.Equal(t, StateCollapsed, m.State())
}

func TestHandleResize_DelegatedIsNeverOverridden(t *testing.T) {
	state := StateExpanded
	m := NewDelegatedMachine(&DelegatedPort{
		Get: func() State { return state },
		Set: func(s State) { state = s },
	})

	m.HandleResize(500)
	assert.Equal(t, StateExpanded, m.State())
}

// =============================================================================
// DRAG RESIZE
// =============================================================================

func TestDragTo_ClampsWidth(t *testing.T) {
	m, _ := newOwnedMachine(t)
	m.HandleResize(1400)

	m.StartDrag()
	require.True(t, m.Dragging())

	// Cursor near the right edge requests 100px.
	m.DragTo(1300)
	assert.Equal(t, MinWidth, m.Width())

	// Cursor far left requests 1000px.
	m.DragTo(400)
	assert.Equal(t, MaxWidth, m.Width())

	m.DragTo(950)
	assert.Equal(t, 450, m.Width())

	m.EndDrag()
	assert.False(t, m.Dragging())
	m.DragTo(1300)
	assert.Equal(t, 450, m.Width(), "width frozen after release")
}

func TestDrag_IgnoredOutsideDockedStates(t *testing.T) {
	m, _ := newOwnedMachine(t)
	m.HandleResize(1400)
	m.port.SetState(StateFullscreen)

	m.StartDrag()
	assert.False(t, m.Dragging())

	m.port.SetState(StateCollapsed)
	m.StartDrag()
	assert.False(t, m.Dragging())
}

func TestWidth_PerState(t *testing.T) {
	m, _ := newOwnedMachine(t)

	assert.Equal(t, DefaultWidth, m.Width())

	m.ToggleExpand()
	assert.Equal(t, ExpandedWidth, m.Width())

	m.Collapse()
	assert.Equal(t, 0, m.Width())
}
