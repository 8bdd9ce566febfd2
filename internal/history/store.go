// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion runs and per-file outcomes in a
// local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pixelpress/pkg/types"
)

const dbFile = "history.db"

// Store manages the conversion history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Run is one recorded batch conversion.
type Run struct {
	ID           int64     `json:"id" yaml:"id"`
	StartedAt    time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt   time.Time `json:"finished_at" yaml:"finished_at"`
	SourceDir    string    `json:"source_dir" yaml:"source_dir"`
	InputFilter  string    `json:"input_filter" yaml:"input_filter"`
	OutputFormat string    `json:"output_format" yaml:"output_format"`
	Quality      int       `json:"quality" yaml:"quality"`
	Converted    int       `json:"converted" yaml:"converted"`
	Skipped      int       `json:"skipped" yaml:"skipped"`
	Failed       int       `json:"failed" yaml:"failed"`
	InputBytes   int64     `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes  int64     `json:"output_bytes" yaml:"output_bytes"`
}

// Total returns the number of files the run processed.
func (r Run) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// FileRecord is one per-file outcome inside a run.
type FileRecord struct {
	Source      string `json:"source" yaml:"source"`
	Output      string `json:"output,omitempty" yaml:"output,omitempty"`
	Status      string `json:"status" yaml:"status"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
	InputBytes  int64  `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int64  `json:"output_bytes" yaml:"output_bytes"`
	DurationMS  int64  `json:"duration_ms" yaml:"duration_ms"`
}

// NewStore opens or creates the history database at
// cfg.HistoryDir/history.db, creating the schema if needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			source_dir TEXT NOT NULL,
			input_filter TEXT,
			output_format TEXT NOT NULL,
			quality INTEGER,
			converted INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			input_bytes INTEGER NOT NULL,
			output_bytes INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			source TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			error TEXT,
			input_bytes INTEGER NOT NULL,
			output_bytes INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_files_run_id ON run_files(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_run_files_status ON run_files(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun inserts a run and its per-file results in one transaction and
// returns the new run ID.
func (s *Store) RecordRun(ctx context.Context, run Run, files []types.FileResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, source_dir, input_filter, output_format,
			quality, converted, skipped, failed, input_bytes, output_bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.SourceDir, run.InputFilter, run.OutputFormat, run.Quality,
		run.Converted, run.Skipped, run.Failed, run.InputBytes, run.OutputBytes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_files (run_id, source, output, status, error, input_bytes, output_bytes, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range files {
		_, err := stmt.ExecContext(ctx,
			runID, f.Source, f.Output, string(f.Status), f.Error,
			f.OriginalSize, f.NewSize, f.Duration.Milliseconds(),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting file record %s: %w", f.Source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns recorded runs, newest first. A non-positive limit falls
// back to the store default.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, source_dir, input_filter, output_format,
			quality, converted, skipped, failed, input_bytes, output_bytes
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.SourceDir, &r.InputFilter,
			&r.OutputFormat, &r.Quality, &r.Converted, &r.Skipped, &r.Failed,
			&r.InputBytes, &r.OutputBytes); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunFiles returns the per-file records of one run in insertion order.
func (s *Store) RunFiles(ctx context.Context, runID int64) ([]FileRecord, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking run %d: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %d not found", runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, output, status, error, input_bytes, output_bytes, duration_ms
		 FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run files: %w", err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.Source, &f.Output, &f.Status, &f.Error,
			&f.InputBytes, &f.OutputBytes, &f.DurationMS); err != nil {
			return nil, fmt.Errorf("scanning file record: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Clear deletes all recorded runs and file records.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM run_files`); err != nil {
		return fmt.Errorf("clearing file records: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clearing runs: %w", err)
	}
	return nil
}
