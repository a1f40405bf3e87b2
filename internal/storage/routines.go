// ABOUTME: Routine and RoutineItem operations for SQLite storage.
// ABOUTME: Includes cascade delete and routine completion into the exercise log.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/models"
	"go.uber.org/zap"
)

// CreateRoutine stores a new routine and returns its ID. The routine is
// visible to AddRoutineItem as soon as this returns.
func (d *DB) CreateRoutine(name, routineType string) (int64, error) {
	r := models.NewRoutine(strings.TrimSpace(name), strings.TrimSpace(routineType))
	if err := validateRoutine(r); err != nil {
		return 0, err
	}

	id, err := insertRoutine(d.db, r)
	if err != nil {
		return 0, d.fail("create routine", err)
	}

	d.log.Debug("created routine", zap.Int64("id", id), zap.String("name", r.Name))
	return id, nil
}

// AddRoutineItem attaches an exercise to an existing routine and returns
// the item ID. It fails with ErrNotFound when the routine does not exist.
func (d *DB) AddRoutineItem(routineID int64, exerciseName string, sets, reps int, durationMin float64) (int64, error) {
	item := models.NewRoutineItem(strings.TrimSpace(exerciseName), sets, reps, durationMin)
	if err := validateRoutineItem(item); err != nil {
		return 0, err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, d.fail("add routine item", err)
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := routineExists(tx, routineID)
	if err != nil {
		return 0, d.fail("add routine item", err)
	}
	if !exists {
		return 0, fmt.Errorf("add routine item: %w: routine %d", ErrNotFound, routineID)
	}

	item.RoutineID = routineID
	id, err := insertRoutineItem(tx, &item)
	if err != nil {
		return 0, d.fail("add routine item", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, d.fail("add routine item", err)
	}

	d.log.Debug("added routine item",
		zap.Int64("routine_id", routineID),
		zap.Int64("id", id),
		zap.String("exercise", item.ExerciseName))
	return id, nil
}

// CreateRoutineWithItems stores a routine and all its items in one
// transaction and returns the stored routine.
func (d *DB) CreateRoutineWithItems(name, routineType string, items []models.RoutineItem) (*models.Routine, error) {
	r := models.NewRoutine(strings.TrimSpace(name), strings.TrimSpace(routineType))
	if err := validateRoutine(r); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ExerciseName = strings.TrimSpace(items[i].ExerciseName)
		if err := validateRoutineItem(items[i]); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
	}

	if err := d.insertRoutineTree(r, items); err != nil {
		return nil, err
	}

	d.log.Debug("created routine with items",
		zap.Int64("id", r.ID),
		zap.String("name", r.Name),
		zap.Int("items", len(r.Items)))
	return r, nil
}

// insertRoutineTree writes r and its items atomically. r.ID stays zero
// when a routine with the same UID already exists.
func (d *DB) insertRoutineTree(r *models.Routine, items []models.RoutineItem) error {
	tx, err := d.db.Begin()
	if err != nil {
		return d.fail("create routine", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := insertRoutine(tx, r)
	if err != nil {
		return d.fail("create routine", err)
	}
	if id == 0 {
		return nil
	}

	r.Items = r.Items[:0]
	for _, it := range items {
		it.RoutineID = id
		if _, err := insertRoutineItem(tx, &it); err != nil {
			return d.fail("create routine item", err)
		}
		r.Items = append(r.Items, it)
	}

	if err := tx.Commit(); err != nil {
		return d.fail("create routine", err)
	}
	return nil
}

// GetRoutine retrieves a routine with its items.
func (d *DB) GetRoutine(id int64) (*models.Routine, error) {
	query := `
		SELECT id, uid, name, type, created_at
		FROM routines
		WHERE id = ?
	`
	r, err := scanRoutine(d.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get routine: %w: routine %d", ErrNotFound, id)
		}
		return nil, d.fail("get routine", err)
	}

	items, err := d.listItems(id)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		r.Items = append(r.Items, *it)
	}
	return r, nil
}

// ListRoutines returns all routines (without items), newest first.
func (d *DB) ListRoutines() ([]*models.Routine, error) {
	query := `
		SELECT id, uid, name, type, created_at
		FROM routines
		ORDER BY created_at DESC, id DESC
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, d.fail("list routines", err)
	}
	defer rows.Close()

	var routines []*models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, d.fail("list routines", err)
		}
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, d.fail("list routines", err)
	}
	return routines, nil
}

// ListRoutineItems returns a routine's items in the order they were added.
func (d *DB) ListRoutineItems(routineID int64) ([]*models.RoutineItem, error) {
	exists, err := routineExists(d.db, routineID)
	if err != nil {
		return nil, d.fail("list routine items", err)
	}
	if !exists {
		return nil, fmt.Errorf("list routine items: %w: routine %d", ErrNotFound, routineID)
	}
	return d.listItems(routineID)
}

func (d *DB) listItems(routineID int64) ([]*models.RoutineItem, error) {
	query := `
		SELECT id, routine_id, exercise_name, sets, reps, duration_min
		FROM routine_items
		WHERE routine_id = ?
		ORDER BY id ASC
	`
	rows, err := d.db.Query(query, routineID)
	if err != nil {
		return nil, d.fail("list routine items", err)
	}
	defer rows.Close()

	var items []*models.RoutineItem
	for rows.Next() {
		var it models.RoutineItem
		if err := rows.Scan(&it.ID, &it.RoutineID, &it.ExerciseName, &it.Sets, &it.Reps, &it.DurationMin); err != nil {
			return nil, d.fail("scan routine item", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, d.fail("list routine items", err)
	}
	return items, nil
}

// DeleteRoutine removes a routine and all its items (cascade delete).
func (d *DB) DeleteRoutine(id int64) error {
	// CASCADE is enabled, so deleting the routine deletes its items
	result, err := d.db.Exec("DELETE FROM routines WHERE id = ?", id)
	if err != nil {
		return d.fail("delete routine", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return d.fail("delete routine", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete routine: %w: routine %d", ErrNotFound, id)
	}

	d.log.Info("deleted routine", zap.Int64("id", id))
	return nil
}

// CompleteRoutine logs every item of a routine as an exercise entry.
// Items without a duration are estimated from sets and reps, the MET is
// suggested from the item name (FallbackMET when unmatched), and calories
// use the latest recorded weight (the configured default when none). An item
// with neither a duration nor sets x reps fails the call with ErrInvalidInput
// before anything is logged. Each entry is written on its own, so a storage
// failure part-way leaves the earlier rows logged.
func (d *DB) CompleteRoutine(routineID int64) ([]*models.ExerciseLogEntry, error) {
	r, err := d.GetRoutine(routineID)
	if err != nil {
		return nil, fmt.Errorf("complete routine: %w", err)
	}

	weight, err := d.LatestWeight(d.weight)
	if err != nil {
		return nil, fmt.Errorf("complete routine: %w", err)
	}

	durations := make([]float64, len(r.Items))
	for i, it := range r.Items {
		durations[i] = fitness.EffectiveDuration(it.DurationMin, it.Sets, it.Reps)
		if durations[i] <= 0 {
			return nil, fmt.Errorf("complete routine %d: %w", routineID,
				invalid("item %q has no duration and no sets x reps", it.ExerciseName))
		}
	}

	logged := make([]*models.ExerciseLogEntry, 0, len(r.Items))
	for i, it := range r.Items {
		duration := durations[i]
		met := fitness.SuggestMETOrFallback(it.ExerciseName, d.mets)
		calories := fitness.CaloriesBurned(met, weight, duration)

		e := models.NewExerciseLogEntry(it.ExerciseName, duration, calories, met)
		if _, err := d.insertExercise(e); err != nil {
			return logged, fmt.Errorf("complete routine %d: %w", routineID, err)
		}
		logged = append(logged, e)
	}

	d.log.Info("completed routine",
		zap.Int64("routine_id", routineID),
		zap.Int("logged", len(logged)))
	return logged, nil
}

// execQuerier is satisfied by *sql.DB and *sql.Tx.
type execQuerier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

func routineExists(q execQuerier, id int64) (bool, error) {
	var n int
	if err := q.QueryRow("SELECT COUNT(*) FROM routines WHERE id = ?", id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// insertRoutine writes a routine row. It returns 0 without error when the
// UID already exists.
func insertRoutine(q execQuerier, r *models.Routine) (int64, error) {
	result, err := q.Exec(`
		INSERT INTO routines (uid, name, type, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(uid) DO NOTHING`,
		r.UID.String(), r.Name, r.Type, formatTimestamp(r.CreatedAt))
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, nil
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.ID = id
	return id, nil
}

func insertRoutineItem(q execQuerier, it *models.RoutineItem) (int64, error) {
	result, err := q.Exec(`
		INSERT INTO routine_items (routine_id, exercise_name, sets, reps, duration_min)
		VALUES (?, ?, ?, ?, ?)`,
		it.RoutineID, it.ExerciseName, it.Sets, it.Reps, it.DurationMin)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	it.ID = id
	return id, nil
}

func validateRoutine(r *models.Routine) error {
	if r.Name == "" {
		return invalid("routine name is empty")
	}
	return nil
}

func validateRoutineItem(it models.RoutineItem) error {
	if it.ExerciseName == "" {
		return invalid("exercise name is empty")
	}
	if it.Sets < 0 || it.Reps < 0 {
		return invalid("sets and reps must not be negative (got %d x %d)", it.Sets, it.Reps)
	}
	if it.DurationMin < 0 {
		return invalid("duration must not be negative, got %g", it.DurationMin)
	}
	if fitness.EffectiveDuration(it.DurationMin, it.Sets, it.Reps) <= 0 {
		return invalid("item %q needs a duration or sets x reps", it.ExerciseName)
	}
	return nil
}

// scanRoutine scans a single row into a Routine (without items).
func scanRoutine(row rowScanner) (*models.Routine, error) {
	var r models.Routine
	var uid, createdAt string

	if err := row.Scan(&r.ID, &uid, &r.Name, &r.Type, &createdAt); err != nil {
		return nil, err
	}

	r.UID, _ = uuid.Parse(uid)
	r.CreatedAt = parseTimestamp(createdAt)
	return &r, nil
}
