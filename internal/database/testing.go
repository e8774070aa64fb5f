package database

import (
	"database/sql"
	"testing"
)

// NewTestDB creates an isolated in-memory database with the schema applied.
// The connection is closed automatically when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New("file::memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
