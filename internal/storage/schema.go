// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines health_entries, exercise_log, routines, and routine_items.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS health_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uid TEXT NOT NULL UNIQUE,
		entry_date TEXT NOT NULL,
		weight REAL NOT NULL,
		height REAL NOT NULL,
		imc REAL,
		cups INTEGER NOT NULL DEFAULT 0,
		note TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exercise_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uid TEXT NOT NULL UNIQUE,
		entry_datetime TEXT NOT NULL,
		name TEXT NOT NULL,
		duration_min REAL NOT NULL,
		calories REAL NOT NULL,
		met REAL NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS routines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		uid TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS routine_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		routine_id INTEGER NOT NULL,
		exercise_name TEXT NOT NULL,
		sets INTEGER NOT NULL DEFAULT 0,
		reps INTEGER NOT NULL DEFAULT 0,
		duration_min REAL NOT NULL DEFAULT 0,
		FOREIGN KEY (routine_id) REFERENCES routines(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_health_entries_created ON health_entries(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_exercise_log_created ON exercise_log(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_exercise_log_datetime ON exercise_log(entry_datetime);
	CREATE INDEX IF NOT EXISTS idx_routines_created ON routines(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_routine_items_routine ON routine_items(routine_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
