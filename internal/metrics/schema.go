// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package metrics

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// SQLite schema for performance snapshots
const Schema = `
-- Metadata table for schema version and sync state
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Snapshots table: one row per app, traffic source, and day
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    app_id TEXT NOT NULL,
    traffic_source TEXT NOT NULL,
    day INTEGER NOT NULL,          -- Unix timestamp at midnight UTC
    impressions INTEGER NOT NULL,
    downloads INTEGER NOT NULL,
    recorded_at INTEGER NOT NULL,  -- Unix timestamp of the sync that wrote the row
    UNIQUE(app_id, traffic_source, day)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_day ON snapshots(day);
CREATE INDEX IF NOT EXISTS idx_snapshots_app ON snapshots(app_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(traffic_source);
`

// InitMetadata initializes the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`
