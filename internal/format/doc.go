// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw AI text and dashboard filter state into display
// strings: markdown-table enrichment of metric-style responses, welcome
// message templating, and insight freshness labeling.
//
// The response formatter is a best-effort enrichment stage, not a parser.
// When nothing in the input looks like metric output it passes the text
// through untouched; a markdown renderer downstream degrades gracefully for
// anything it misfires on.
package format
