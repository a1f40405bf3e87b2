// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harperreed/healthhub/internal/fitness"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// timestampLayout is the fixed-width UTC format used for created_at columns.
// Fixed width keeps lexical and chronological order identical.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// DB wraps the SQLite database connection.
type DB struct {
	db     *sql.DB
	dbPath string
	log    *zap.Logger
	mets   fitness.METTable
	weight float64
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)

// Option configures a DB at open time.
type Option func(*DB)

// WithLogger sets the logger used for store operations.
func WithLogger(l *zap.Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.log = l
		}
	}
}

// WithMETTable sets the activity table used by CompleteRoutine.
func WithMETTable(t fitness.METTable) Option {
	return func(d *DB) {
		if len(t) > 0 {
			d.mets = t
		}
	}
}

// WithDefaultWeight sets the body weight CompleteRoutine assumes before any
// health entry exists.
func WithDefaultWeight(kg float64) Option {
	return func(d *DB) {
		if kg > 0 {
			d.weight = kg
		}
	}
}

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string, opts ...Option) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w: %w", ErrStorageUnavailable, err)
	}

	// A single connection serializes writers; each statement acquires and
	// releases it.
	db.SetMaxOpenConns(1)

	d := &DB{
		db:     db,
		dbPath: dbPath,
		log:    zap.NewNop(),
		mets:   fitness.DefaultMETs,
		weight: fitness.DefaultWeightKg,
	}
	for _, opt := range opts {
		opt(d)
	}

	// Configure pragmas for better performance
	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w: %w", ErrStorageUnavailable, err)
	}

	// Initialize schema
	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w: %w", ErrStorageUnavailable, err)
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	d.log.Debug("opened database", zap.String("path", dbPath))
	return d, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "healthhub")
}

// DefaultDBPath returns the default database path following XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "healthhub.db")
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.dbPath
}

// METTable returns the activity table used for MET suggestions.
func (d *DB) METTable() fitness.METTable {
	return d.mets
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Backup writes a consistent standalone copy of the database to dstPath.
func (d *DB) Backup(dstPath string) error {
	if dstPath == "" {
		return invalid("backup path is empty")
	}
	if _, err := os.Stat(dstPath); err == nil {
		return invalid("backup target %s already exists", dstPath)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0750); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	if _, err := d.db.Exec("VACUUM INTO ?", dstPath); err != nil {
		return d.fail("backup database", err)
	}
	d.log.Info("wrote backup", zap.String("path", dstPath))
	return nil
}

// configurePragmas sets up SQLite for optimal performance.
func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		// Rows written by older versions may carry RFC3339 text.
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}
