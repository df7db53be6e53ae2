// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

// StoreError represents a persistence failure. Compare with errors.Is /
// errors.As; the wrapped cause is preserved.
type StoreError struct {
	Op  string // "init", "set"
	Key string // storage key, if applicable
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	msg := "storage " + e.Op
	if e.Key != "" {
		msg += " " + e.Key
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}
