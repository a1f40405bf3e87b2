// ABOUTME: Exercise log operations for SQLite storage.
// ABOUTME: Entries are appended, listed newest first, and cleared in bulk.
package storage

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthhub/internal/models"
	"go.uber.org/zap"
)

const exerciseColumns = `id, uid, entry_datetime, name, duration_min, calories, met, created_at`

// AppendExerciseLog stores a session with caller-computed calories,
// stamped with the current time, and returns its ID.
func (d *DB) AppendExerciseLog(name string, durationMin, calories, met float64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, invalid("exercise name is empty")
	}
	if durationMin <= 0 {
		return 0, invalid("duration must be positive, got %g", durationMin)
	}

	e := models.NewExerciseLogEntry(name, durationMin, calories, met)
	id, err := d.insertExercise(e)
	if err != nil {
		return 0, err
	}

	d.log.Debug("appended exercise",
		zap.Int64("id", id),
		zap.String("name", name),
		zap.Float64("duration_min", durationMin),
		zap.Float64("calories", calories))
	return id, nil
}

func (d *DB) insertExercise(e *models.ExerciseLogEntry) (int64, error) {
	query := `
		INSERT INTO exercise_log (uid, entry_datetime, name, duration_min, calories, met, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO NOTHING
	`
	result, err := d.db.Exec(query,
		e.UID.String(),
		e.EntryDateTime.Local().Format(models.DateTimeLayout),
		e.Name,
		e.DurationMin,
		e.Calories,
		e.MET,
		formatTimestamp(e.CreatedAt),
	)
	if err != nil {
		return 0, d.fail("append exercise", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, d.fail("append exercise", err)
	}
	if affected == 0 {
		return 0, nil
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, d.fail("append exercise", err)
	}
	e.ID = id
	return id, nil
}

// ListExerciseLog returns entries newest first. A limit <= 0 returns all.
func (d *DB) ListExerciseLog(limit int) ([]*models.ExerciseLogEntry, error) {
	query := `SELECT ` + exerciseColumns + `
		FROM exercise_log
		ORDER BY created_at DESC, id DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, d.fail("list exercise log", err)
	}
	defer rows.Close()

	entries, err := scanExercises(rows)
	if err != nil {
		return nil, d.fail("list exercise log", err)
	}
	return entries, nil
}

// ListExerciseLogOn returns the entries whose local timestamp falls on the
// local calendar date of day, newest first.
func (d *DB) ListExerciseLogOn(day time.Time) ([]*models.ExerciseLogEntry, error) {
	query := `SELECT ` + exerciseColumns + `
		FROM exercise_log
		WHERE substr(entry_datetime, 1, 10) = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := d.db.Query(query, day.In(time.Local).Format(models.DateLayout))
	if err != nil {
		return nil, d.fail("list exercise log by day", err)
	}
	defer rows.Close()

	entries, err := scanExercises(rows)
	if err != nil {
		return nil, d.fail("list exercise log by day", err)
	}
	return entries, nil
}

// ClearExerciseLog deletes every exercise entry and reports how many were
// removed. Health entries and routines are untouched.
func (d *DB) ClearExerciseLog() (int64, error) {
	result, err := d.db.Exec("DELETE FROM exercise_log")
	if err != nil {
		return 0, d.fail("clear exercise log", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, d.fail("clear exercise log", err)
	}

	d.log.Info("cleared exercise log", zap.Int64("removed", affected))
	return affected, nil
}

// scanExercises scans multiple rows into a slice of exercise entries.
func scanExercises(rows *sql.Rows) ([]*models.ExerciseLogEntry, error) {
	var entries []*models.ExerciseLogEntry

	for rows.Next() {
		var e models.ExerciseLogEntry
		var uid, entryDateTime, createdAt string

		err := rows.Scan(&e.ID, &uid, &entryDateTime, &e.Name, &e.DurationMin, &e.Calories, &e.MET, &createdAt)
		if err != nil {
			return nil, err
		}

		e.UID, _ = uuid.Parse(uid)
		e.EntryDateTime, _ = time.ParseInLocation(models.DateTimeLayout, entryDateTime, time.Local)
		e.CreatedAt = parseTimestamp(createdAt)

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
