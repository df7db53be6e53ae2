// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"log"

	"github.com/asoscope/asoscope-tui/internal/storage"
)

// =============================================================================
// STATE PORTS
// =============================================================================

// StatePort abstracts who owns the panel state. The machine's transition
// logic is identical regardless of the owner.
type StatePort interface {
	State() State
	SetState(State)
}

// OwnedPort keeps the state itself and persists every change to durable
// storage under the per-organization sidebar key. The stored value is read
// once at construction; corrupt or missing values fall back to normal.
type OwnedPort struct {
	store storage.Port
	key   string
	state State
}

// NewOwnedPort reads back the persisted state for the organization.
func NewOwnedPort(store storage.Port, orgID string) *OwnedPort {
	p := &OwnedPort{
		store: store,
		key:   storage.SidebarStateKey(orgID),
		state: StateNormal,
	}
	if raw, ok := store.Get(p.key); ok {
		p.state = ParseState(raw)
	}
	return p
}

func (p *OwnedPort) State() State {
	return p.state
}

// SetState records and persists the new state. Persist failures are logged
// and otherwise ignored; layout must keep working without durable storage.
func (p *OwnedPort) SetState(s State) {
	p.state = s
	if err := p.store.Set(p.key, string(s)); err != nil {
		log.Printf("panel: persisting sidebar state failed: %v", err)
	}
}

// DelegatedPort hands state ownership to a parent. The machine performs no
// persistence and never auto-overrides a delegated state.
type DelegatedPort struct {
	Get func() State
	Set func(State)
}

func (p *DelegatedPort) State() State {
	return p.Get()
}

func (p *DelegatedPort) SetState(s State) {
	p.Set(s)
}
