// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics stores daily App Store performance snapshots in a local
// SQLite database. The dashboard reads aggregated summaries filtered by
// date range, traffic source, and app; the sync layer writes one row per
// app, source, and day.
package metrics
