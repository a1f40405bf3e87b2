// ABOUTME: Tests for database initialization, paths, and backup.
// ABOUTME: Verifies schema creation, XDG path handling, and pragmas.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/healthhub/internal/fitness"
)

func TestOpenCreatesSchema(t *testing.T) {
	db := setupTestDB(t)

	tables := []string{"health_entries", "exercise_log", "routines", "routine_items"}
	for _, table := range tables {
		var count int
		err := db.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table).Scan(&count)
		if err != nil {
			t.Errorf("Error checking table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("Table %s does not exist", table)
		}
	}
}

func TestOpenEnablesForeignKeys(t *testing.T) {
	db := setupTestDB(t)

	var enabled int
	if err := db.db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("PRAGMA foreign_keys: %v", err)
	}
	if enabled != 1 {
		t.Errorf("foreign_keys = %d, want 1", enabled)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
	if db.Path() != dbPath {
		t.Errorf("Path() = %s, want %s", db.Path(), dbPath)
	}
}

func TestDefaultDBPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	expected := filepath.Join(tmpDir, "healthhub", "healthhub.db")
	if got := DefaultDBPath(); got != expected {
		t.Errorf("DefaultDBPath() = %s, want %s", got, expected)
	}
}

func TestWithMETTable(t *testing.T) {
	custom := fitness.METTable{{Name: "rowing machine", MET: 7.0}}

	db := setupTestDB(t, WithMETTable(custom))
	if len(db.METTable()) != 1 || db.METTable()[0].Name != "rowing machine" {
		t.Errorf("METTable() = %+v, want custom table", db.METTable())
	}

	def := setupTestDB(t, WithMETTable(nil))
	if len(def.METTable()) != len(fitness.DefaultMETs) {
		t.Errorf("empty table should keep defaults, got %d entries", len(def.METTable()))
	}
}

func TestBackup(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.AppendHealthEntry(72, 1.8, 3, ""); err != nil {
		t.Fatalf("AppendHealthEntry failed: %v", err)
	}

	dst := filepath.Join(t.TempDir(), "backups", "copy.db")
	if err := db.Backup(dst); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	copyDB, err := Open(dst)
	if err != nil {
		t.Fatalf("Open backup failed: %v", err)
	}
	defer copyDB.Close()

	entries, err := copyDB.ListHealthEntries(0)
	if err != nil {
		t.Fatalf("ListHealthEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry in backup, got %d", len(entries))
	}

	if err := db.Backup(dst); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Backup onto existing file: expected ErrInvalidInput, got %v", err)
	}
}

func TestClosedDatabaseReportsStorageUnavailable(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	db.Close()

	if _, err := db.AppendHealthEntry(70, 1.75, 0, ""); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := db.ListExerciseLog(0); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}
