// Package history persists a journal of completed merge runs backed by
// SQLite, so `gopromerge history` can answer what was merged, when, and how
// big it came out. It records finished runs only; it is not a resume
// mechanism.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one completed merge.
type Run struct {
	ID          int64
	StartedAt   time.Time
	OutputPath  string
	Codec       string
	Segments    int
	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
}

// Store manages the journal database.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at   TEXT    NOT NULL,
    output_path  TEXT    NOT NULL,
    codec        TEXT    NOT NULL,
    segments     INTEGER NOT NULL,
    input_bytes  INTEGER NOT NULL,
    output_bytes INTEGER NOT NULL,
    elapsed_ms   INTEGER NOT NULL
);
`

// Open creates the journal's parent directory if needed, opens the SQLite
// database at path, and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	// Single-writer tool; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Record appends a completed run to the journal.
func (s *Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, output_path, codec, segments, input_bytes, output_bytes, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.OutputPath,
		run.Codec,
		run.Segments,
		run.InputBytes,
		run.OutputBytes,
		run.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, output_path, codec, segments, input_bytes, output_bytes, elapsed_ms
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			startedAt string
			elapsedMs int64
		)
		if err := rows.Scan(&run.ID, &startedAt, &run.OutputPath, &run.Codec,
			&run.Segments, &run.InputBytes, &run.OutputBytes, &elapsedMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		run.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
