// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/asoscope/asoscope-tui/internal/util"
)

// Well-known storage keys.
const (
	// ConversationsKey holds the whole conversation collection.
	ConversationsKey = "ai-chat-conversations"

	// sidebarStatePrefix keys the persisted panel state per organization.
	sidebarStatePrefix = "ai-sidebar-state-"
)

// SidebarStateKey returns the panel-state storage key for an organization.
func SidebarStateKey(orgID string) string {
	return sidebarStatePrefix + orgID
}

// =============================================================================
// STORAGE PORT
// =============================================================================

// Port is a string-keyed durable store, synchronous from the caller's point
// of view. Get returns ok=false for absent keys; it never errors, because
// every consumer treats unreadable data as absent.
type Port interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
}

// =============================================================================
// FILE PORT
// =============================================================================

// FilePort persists each key as one JSON document under a base directory.
// Writes are atomic with fsync so a crash leaves either the old or the new
// complete value, never a torn one.
type FilePort struct {
	// BaseDir is the directory holding one file per key.
	BaseDir string
}

// NewFilePort creates a file-backed port rooted at baseDir.
func NewFilePort(baseDir string) (*FilePort, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, &StoreError{Op: "init", Err: err}
	}
	return &FilePort{BaseDir: baseDir}, nil
}

// DefaultFilePort creates a port under ~/.asoscope/state/.
func DefaultFilePort() (*FilePort, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, &StoreError{Op: "init", Err: err}
	}
	return NewFilePort(filepath.Join(homeDir, ".asoscope", "state"))
}

// Get reads the value for key. Missing or unreadable files report absent.
func (p *FilePort) Get(key string) (string, bool) {
	data, err := os.ReadFile(p.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes the value for key atomically.
func (p *FilePort) Set(key, value string) error {
	if err := util.AtomicWriteFile(p.path(key), []byte(value), 0644); err != nil {
		return &StoreError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (p *FilePort) path(key string) string {
	return filepath.Join(p.BaseDir, key+".json")
}

// =============================================================================
// MEMORY PORT
// =============================================================================

// MemPort is an in-memory Port for tests and ephemeral sessions.
type MemPort struct {
	mu     sync.RWMutex
	values map[string]string

	// SetErr, when non-nil, is returned from every Set. Lets tests exercise
	// persist-failure paths.
	SetErr error
}

// NewMemPort creates an empty in-memory port.
func NewMemPort() *MemPort {
	return &MemPort{values: make(map[string]string)}
}

// Get reads the value for key.
func (p *MemPort) Get(key string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

// Set stores the value for key.
func (p *MemPort) Set(key, value string) error {
	if p.SetErr != nil {
		return p.SetErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	return nil
}
