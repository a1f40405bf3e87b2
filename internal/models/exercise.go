// ABOUTME: ExerciseLogEntry model for logged exercise sessions.
// ABOUTME: Calories are computed by the caller and stored as given.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateTimeLayout is the stored, lexically sortable local timestamp format.
const DateTimeLayout = "2006-01-02T15:04:05.000000"

// ExerciseLogEntry is one logged exercise session.
type ExerciseLogEntry struct {
	ID            int64     `json:"id"`
	UID           uuid.UUID `json:"uid"`
	EntryDateTime time.Time `json:"entry_datetime"`
	Name          string    `json:"name"`
	DurationMin   float64   `json:"duration_min"`
	Calories      float64   `json:"calories"`
	MET           float64   `json:"met"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewExerciseLogEntry builds an entry stamped with the current time.
func NewExerciseLogEntry(name string, durationMin, calories, met float64) *ExerciseLogEntry {
	now := time.Now()
	return &ExerciseLogEntry{
		UID:           uuid.New(),
		EntryDateTime: now,
		Name:          name,
		DurationMin:   durationMin,
		Calories:      calories,
		MET:           met,
		CreatedAt:     now,
	}
}

// Day returns the local calendar date of the entry.
func (e *ExerciseLogEntry) Day() string {
	return e.EntryDateTime.Format(DateLayout)
}
