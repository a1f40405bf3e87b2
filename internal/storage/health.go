// ABOUTME: Health entry operations for SQLite storage.
// ABOUTME: Entries are append-only; BMI is denormalized at write time.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/healthhub/internal/models"
	"go.uber.org/zap"
)

const healthEntryColumns = `id, uid, entry_date, weight, height, imc, cups, note, created_at`

// AppendHealthEntry records a check-in dated today and returns its ID.
// A non-positive height is stored with no BMI.
func (d *DB) AppendHealthEntry(weightKg, heightM float64, cups int, note string) (int64, error) {
	if weightKg <= 0 {
		return 0, invalid("weight must be positive, got %g", weightKg)
	}
	if cups < 0 {
		return 0, invalid("cups must not be negative, got %d", cups)
	}

	e := models.NewHealthEntry(weightKg, heightM, cups, note)
	id, err := d.insertHealthEntry(e)
	if err != nil {
		return 0, err
	}

	d.log.Debug("appended health entry",
		zap.Int64("id", id),
		zap.Float64("weight_kg", weightKg),
		zap.Float64("height_m", heightM),
		zap.Int("cups", cups))
	return id, nil
}

func (d *DB) insertHealthEntry(e *models.HealthEntry) (int64, error) {
	query := `
		INSERT INTO health_entries (uid, entry_date, weight, height, imc, cups, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO NOTHING
	`
	var bmi sql.NullFloat64
	if e.BMI != nil {
		bmi = sql.NullFloat64{Float64: *e.BMI, Valid: true}
	}
	var note sql.NullString
	if e.Note != "" {
		note = sql.NullString{String: e.Note, Valid: true}
	}

	result, err := d.db.Exec(query,
		e.UID.String(),
		e.EntryDate,
		e.WeightKg,
		e.HeightM,
		bmi,
		e.Cups,
		note,
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return 0, d.fail("append health entry", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, d.fail("append health entry", err)
	}
	if affected == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, d.fail("append health entry", err)
	}
	e.ID = id
	return id, nil
}

// LatestHealthEntry returns the most recently created entry.
func (d *DB) LatestHealthEntry() (*models.HealthEntry, error) {
	query := `SELECT ` + healthEntryColumns + `
		FROM health_entries
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	e, err := scanHealthEntry(d.db.QueryRow(query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("latest health entry: %w: no entries recorded", ErrNotFound)
		}
		return nil, d.fail("latest health entry", err)
	}
	return e, nil
}

// LatestWeight returns the weight of the latest entry, or fallback when
// nothing has been recorded.
func (d *DB) LatestWeight(fallback float64) (float64, error) {
	e, err := d.LatestHealthEntry()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}
		return 0, err
	}
	return e.WeightKg, nil
}

// ListHealthEntries returns entries newest first. A limit <= 0 returns all.
func (d *DB) ListHealthEntries(limit int) ([]*models.HealthEntry, error) {
	query := `SELECT ` + healthEntryColumns + `
		FROM health_entries
		ORDER BY created_at DESC, id DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, d.fail("list health entries", err)
	}
	defer rows.Close()

	var entries []*models.HealthEntry
	for rows.Next() {
		e, err := scanHealthEntry(rows)
		if err != nil {
			return nil, d.fail("list health entries", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, d.fail("list health entries", err)
	}
	return entries, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanHealthEntry scans a single row into a HealthEntry.
func scanHealthEntry(row rowScanner) (*models.HealthEntry, error) {
	var e models.HealthEntry
	var uid, createdAt string
	var bmi sql.NullFloat64
	var note sql.NullString

	err := row.Scan(&e.ID, &uid, &e.EntryDate, &e.WeightKg, &e.HeightM, &bmi, &e.Cups, &note, &createdAt)
	if err != nil {
		return nil, err
	}

	e.UID, _ = uuid.Parse(uid)
	e.CreatedAt = parseTimestamp(createdAt)
	if bmi.Valid {
		v := bmi.Float64
		e.BMI = &v
	}
	if note.Valid {
		e.Note = note.String
	}
	return &e, nil
}
