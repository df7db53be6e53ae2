// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panel implements the insights sidebar's four-state layout
// controller: collapsed, normal, expanded, and fullscreen. Transition
// logic is written once against a small state port, so the panel works
// both self-owned (state persisted per organization) and delegated to a
// parent that supplies its own getter and setter.
//
// Widths are logical pixels. The terminal layer maps them onto cells.
package panel
