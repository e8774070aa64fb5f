// Package database opens and migrates the service's SQLite store. The store
// holds the operations-form drafts, the API request log and the last
// analysis snapshot; everything analytical stays in memory.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS draft (
	draft_id   TEXT PRIMARY KEY,
	owner      TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_draft_owner ON draft(owner);
CREATE INDEX IF NOT EXISTS idx_draft_updated_at ON draft(updated_at);

CREATE TABLE IF NOT EXISTS api_request (
	api_request_id TEXT PRIMARY KEY,
	user_id        TEXT,
	ip_address     TEXT,
	method         TEXT NOT NULL,
	route          TEXT NOT NULL,
	request_body   TEXT,
	start_ts       TIMESTAMP NOT NULL,
	duration_ms    INTEGER,
	status_code    INTEGER,
	response_body  TEXT
);

CREATE TABLE IF NOT EXISTS analysis_snapshot (
	owner      TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// New opens the SQLite database at path, creating the parent directory if
// needed, and verifies the connection. "file:" URIs pass through untouched so
// tests can use in-memory databases.
func New(path string) (*sql.DB, error) {
	if !strings.HasPrefix(path, "file:") {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		path = absPath
	}

	db, err := sql.Open("sqlite", path+connectionParams(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// modernc.org/sqlite serializes writes; a single writer connection
	// avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func connectionParams(path string) string {
	if strings.Contains(path, "?") {
		return "&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	return "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
