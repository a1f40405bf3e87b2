// ABOUTME: Repository interface for the health record store.
// ABOUTME: Defines the contract for health entries, exercise log, and routines.
package storage

import (
	"time"

	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/models"
)

// Repository defines the storage interface for health records.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Health entry operations
	AppendHealthEntry(weightKg, heightM float64, cups int, note string) (int64, error)
	LatestHealthEntry() (*models.HealthEntry, error)
	LatestWeight(fallback float64) (float64, error)
	ListHealthEntries(limit int) ([]*models.HealthEntry, error)

	// Exercise log operations
	AppendExerciseLog(name string, durationMin, calories, met float64) (int64, error)
	ListExerciseLog(limit int) ([]*models.ExerciseLogEntry, error)
	ListExerciseLogOn(day time.Time) ([]*models.ExerciseLogEntry, error)
	ClearExerciseLog() (int64, error)

	// Routine operations
	CreateRoutine(name, routineType string) (int64, error)
	AddRoutineItem(routineID int64, exerciseName string, sets, reps int, durationMin float64) (int64, error)
	CreateRoutineWithItems(name, routineType string, items []models.RoutineItem) (*models.Routine, error)
	GetRoutine(id int64) (*models.Routine, error)
	ListRoutines() ([]*models.Routine, error)
	ListRoutineItems(routineID int64) ([]*models.RoutineItem, error)
	DeleteRoutine(id int64) error
	CompleteRoutine(routineID int64) ([]*models.ExerciseLogEntry, error)

	// METTable returns the activity table used for MET suggestions.
	METTable() fitness.METTable

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) (*ImportSummary, error)
	Backup(dstPath string) error

	// Lifecycle
	Close() error
}
