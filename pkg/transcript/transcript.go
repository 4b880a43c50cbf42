// Package transcript provides a SQLite-backed log of agent runs.
package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id            TEXT PRIMARY KEY,
	agent             TEXT NOT NULL,
	model             TEXT NOT NULL,
	prompt            TEXT NOT NULL,
	response          TEXT NOT NULL,
	prompt_tokens     INTEGER NOT NULL DEFAULT 0,
	completion_tokens INTEGER NOT NULL DEFAULT 0,
	created_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Record is one logged agent run.
type Record struct {
	RunID            string
	Agent            string
	Model            string
	Prompt           string
	Response         string
	PromptTokens     int
	CompletionTokens int
	CreatedAt        time.Time
}

// Store is a transcript log backed by a single SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the transcript database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		// WAL mode and a busy timeout for the single-writer workload,
		// in the modernc driver's _pragma form.
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping transcript database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize transcript schema: %w", err)
	}

	// SQLite supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Store{db: db}, nil
}

// Append writes one run record. CreatedAt defaults to the current time.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if rec.RunID == "" {
		return fmt.Errorf("record missing run id")
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, agent, model, prompt, response, prompt_tokens, completion_tokens, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Agent, rec.Model, rec.Prompt, rec.Response,
		rec.PromptTokens, rec.CompletionTokens, createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to append transcript record: %w", err)
	}
	return nil
}

// Recent returns the n most recent records, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, agent, model, prompt, response, prompt_tokens, completion_tokens, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var createdAt string
		if err := rows.Scan(&rec.RunID, &rec.Agent, &rec.Model, &rec.Prompt, &rec.Response,
			&rec.PromptTokens, &rec.CompletionTokens, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcript record: %w", err)
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transcript timestamp %q: %w", createdAt, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
