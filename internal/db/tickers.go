package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tickermatch/internal/matcher"
)

// TickerStore persists the reference table and its refresh metadata.
type TickerStore struct {
	db *sql.DB
}

// NewTickerStore creates a ticker store over an open connection.
func NewTickerStore(conn *Connection) *TickerStore {
	return &TickerStore{db: conn.DB}
}

// EnsureSchema creates the tables the store needs.
func (s *TickerStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tickers (
			id SERIAL PRIMARY KEY,
			ticker TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			asset_type TEXT NOT NULL DEFAULT ''
		)`)
	if err != nil {
		return fmt.Errorf("failed to create tickers table: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}
	return nil
}

// LoadEntries reads the full reference table in insertion order.
func (s *TickerStore) LoadEntries(ctx context.Context) ([]matcher.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(ticker, ''), COALESCE(title, ''), COALESCE(asset_type, '')
		FROM tickers
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickers: %w", err)
	}
	defer rows.Close()

	var entries []matcher.Entry
	for rows.Next() {
		var entry matcher.Entry
		if err := rows.Scan(&entry.Ticker, &entry.Title, &entry.AssetType); err != nil {
			return nil, fmt.Errorf("failed to scan ticker row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ticker rows: %w", err)
	}
	return entries, nil
}

// ReplaceEntries swaps the reference table wholesale inside one transaction,
// so readers never observe a partially loaded table.
func (s *TickerStore) ReplaceEntries(ctx context.Context, entries []matcher.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tickers"); err != nil {
		return fmt.Errorf("failed to clear tickers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO tickers (ticker, title, asset_type) VALUES ($1, $2, $3)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.ExecContext(ctx, entry.Ticker, entry.Title, entry.AssetType); err != nil {
			return fmt.Errorf("failed to insert ticker %q: %w", entry.Ticker, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ticker replacement: %w", err)
	}
	return nil
}

// UpdateLastUpdated records the refresh timestamp.
func (s *TickerStore) UpdateLastUpdated(ctx context.Context, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES ('last_updated', $1)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		at.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record last update: %w", err)
	}
	return nil
}

// LastUpdated returns the most recent refresh timestamp, or the zero time
// when no refresh has happened yet.
func (s *TickerStore) LastUpdated(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM metadata WHERE key = 'last_updated'").Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read last update: %w", err)
	}

	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse last update %q: %w", value, err)
	}
	return at, nil
}
