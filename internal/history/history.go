// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of completed invocations so a
// researcher can review what was queried and what it cost.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/webscout/pkg/types"
)

const dbFile = "history.db"

// Entry is one recorded invocation.
type Entry struct {
	ID           int64     `json:"id"`
	StartedAt    time.Time `json:"started_at"`
	Command      string    `json:"command"`
	Input        string    `json:"input"`
	Outcome      string    `json:"outcome"`
	Credits      float64   `json:"credits"`
	ResponseTime float64   `json:"response_time"`
}

// Store manages the invocation log database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at cfg.Dir/history.db,
// creating the schema if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	stmt := `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		command TEXT NOT NULL,
		input TEXT NOT NULL,
		outcome TEXT NOT NULL,
		credits REAL NOT NULL DEFAULT 0,
		response_time REAL NOT NULL DEFAULT 0
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts one invocation into the log.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.StartedAt.IsZero() {
		e.StartedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, command, input, outcome, credits, response_time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.StartedAt.UTC().Format(time.RFC3339), e.Command, e.Input, e.Outcome,
		e.Credits, e.ResponseTime)
	if err != nil {
		return fmt.Errorf("recording invocation: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. A non-positive
// limit uses the configured default.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, command, input, outcome, credits, response_time
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started string
		if err := rows.Scan(&e.ID, &started, &e.Command, &e.Input, &e.Outcome,
			&e.Credits, &e.ResponseTime); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			e.StartedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
