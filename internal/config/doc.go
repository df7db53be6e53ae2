// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for asoscope.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.asoscope/config.toml
//   - ~/.asoscope/config.json
//   - Built-in defaults
//
// A Watcher can reload the file on change so edits apply without a restart.
package config
