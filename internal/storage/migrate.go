// ABOUTME: Data migration between health record databases.
// ABOUTME: Merges every record from a source store into a destination store.

package storage

import (
	"fmt"
)

// MigrateData copies all records from src into dst. Records already
// present in dst (matched by UID) are skipped, so migrating the same
// source twice leaves dst unchanged the second time.
func MigrateData(src, dst Repository) (*ImportSummary, error) {
	data, err := src.GetAllData()
	if err != nil {
		return nil, fmt.Errorf("read source records: %w", err)
	}

	summary, err := dst.ImportData(data)
	if err != nil {
		return summary, fmt.Errorf("write destination records: %w", err)
	}

	return summary, nil
}

// MigrateFile merges the database at srcPath into dst. The source is
// opened read-write only long enough to read it.
func MigrateFile(srcPath string, dst Repository) (*ImportSummary, error) {
	src, err := Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open source database: %w", err)
	}
	defer src.Close()

	return MigrateData(src, dst)
}
