// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides setupTestDB for creating isolated test database instances.
package storage

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "healthhub.db")
	db, err := Open(dbPath, opts...)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
