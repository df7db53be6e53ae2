// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package metrics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/asoscope/asoscope-tui/internal/format"
	"github.com/asoscope/asoscope-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNoData = errors.New("no snapshots recorded")
)

// =============================================================================
// TYPES
// =============================================================================

// Snapshot is one day of performance for an app and traffic source.
type Snapshot struct {
	AppID         string
	TrafficSource string
	Day           time.Time
	Impressions   int64
	Downloads     int64
	RecordedAt    time.Time
}

// Conversion returns downloads per impression, 0 when there were none.
func (s Snapshot) Conversion() float64 {
	if s.Impressions == 0 {
		return 0
	}
	return float64(s.Downloads) / float64(s.Impressions)
}

// Summary aggregates snapshots over a filter.
type Summary struct {
	Impressions int64
	Downloads   int64
	Days        int
	GeneratedAt time.Time
}

// Conversion returns the aggregate download rate.
func (s Summary) Conversion() float64 {
	if s.Impressions == 0 {
		return 0
	}
	return float64(s.Downloads) / float64(s.Impressions)
}

// Freshness buckets the summary by the age of its underlying sync.
func (s Summary) Freshness(now time.Time) string {
	return format.FreshnessLabel(s.GeneratedAt, now)
}

// Store holds performance snapshots in SQLite.
type Store struct {
	db *sql.DB
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// Open opens (creating if needed) the snapshot database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// WRITES
// =============================================================================

// Record upserts a snapshot. The app, source, and day triple is unique;
// a re-sync of the same day replaces the earlier row.
func (s *Store) Record(ctx context.Context, snap Snapshot) error {
	recordedAt := snap.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (app_id, traffic_source, day, impressions, downloads, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(app_id, traffic_source, day) DO UPDATE SET
			impressions = excluded.impressions,
			downloads   = excluded.downloads,
			recorded_at = excluded.recorded_at`,
		snap.AppID, snap.TrafficSource, snap.Day.Unix(),
		snap.Impressions, snap.Downloads, recordedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record snapshot: %w", err)
	}
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Summarize aggregates snapshots matching the filter context. An empty
// app or source list, or the "all" sentinel, matches everything. Returns
// ErrNoData when nothing matches.
func (s *Store) Summarize(ctx context.Context, fc model.FilterContext) (*Summary, error) {
	query := `
		SELECT COALESCE(SUM(impressions), 0),
		       COALESCE(SUM(downloads), 0),
		       COUNT(DISTINCT day),
		       COALESCE(MAX(recorded_at), 0)
		FROM snapshots WHERE 1=1`
	var args []any

	if !fc.DateRange.Start.IsZero() {
		query += " AND day >= ?"
		args = append(args, fc.DateRange.Start.Unix())
	}
	if !fc.DateRange.End.IsZero() {
		query += " AND day <= ?"
		args = append(args, fc.DateRange.End.Unix())
	}
	if clause, clauseArgs := inClause("traffic_source", fc.TrafficSources); clause != "" {
		query += clause
		args = append(args, clauseArgs...)
	}
	if clause, clauseArgs := inClause("app_id", fc.SelectedApps); clause != "" {
		query += clause
		args = append(args, clauseArgs...)
	}

	var sum Summary
	var recordedAt int64
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&sum.Impressions, &sum.Downloads, &sum.Days, &recordedAt); err != nil {
		return nil, fmt.Errorf("failed to summarize snapshots: %w", err)
	}
	if sum.Days == 0 {
		return nil, ErrNoData
	}
	sum.GeneratedAt = time.Unix(recordedAt, 0)
	return &sum, nil
}

// Apps returns the distinct app identifiers with recorded snapshots.
func (s *Store) Apps(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "app_id")
}

// TrafficSources returns the distinct traffic sources with snapshots.
func (s *Store) TrafficSources(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "traffic_source")
}

// LastSynced returns the time of the most recent sync, or ErrNoData.
func (s *Store) LastSynced(ctx context.Context) (time.Time, error) {
	var recordedAt sql.NullInt64
	row := s.db.QueryRowContext(ctx, "SELECT MAX(recorded_at) FROM snapshots")
	if err := row.Scan(&recordedAt); err != nil {
		return time.Time{}, fmt.Errorf("failed to read sync time: %w", err)
	}
	if !recordedAt.Valid {
		return time.Time{}, ErrNoData
	}
	return time.Unix(recordedAt.Int64, 0), nil
}

// Available reports whether any snapshots exist at all.
func (s *Store) Available(ctx context.Context) bool {
	_, err := s.LastSynced(ctx)
	return err == nil
}

func (s *Store) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT "+column+" FROM snapshots ORDER BY "+column)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// inClause builds an "AND col IN (?, ...)" fragment, skipping empty lists
// and the "all" sentinel.
func inClause(column string, values []string) (string, []any) {
	filtered := make([]any, 0, len(values))
	for _, v := range values {
		if strings.EqualFold(v, format.AllSourcesSentinel) {
			return "", nil
		}
		filtered = append(filtered, v)
	}
	if len(filtered) == 0 {
		return "", nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filtered)), ", ")
	return " AND " + column + " IN (" + placeholders + ")", filtered
}
