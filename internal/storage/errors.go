// ABOUTME: Error taxonomy for the record store.
// ABOUTME: Callers distinguish bad input, missing references, and storage failures with errors.Is.
package storage

import (
	"errors"
	"fmt"

	"github.com/harperreed/healthhub/internal/fitness"
	"go.uber.org/zap"
)

var (
	// ErrInvalidInput reports a value outside its valid range.
	ErrInvalidInput = fitness.ErrInvalidInput

	// ErrNotFound reports a reference to a record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable reports a failure of the underlying database.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// fail logs a database failure and wraps it as ErrStorageUnavailable.
func (d *DB) fail(op string, err error) error {
	d.log.Error("storage operation failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
