// ABOUTME: Routine and RoutineItem models for reusable workout templates.
// ABOUTME: A routine owns its items; items never outlive their routine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Routine is a named, reusable list of exercises.
type Routine struct {
	ID        int64         `json:"id"`
	UID       uuid.UUID     `json:"uid"`
	Name      string        `json:"name"`
	Type      string        `json:"type"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []RoutineItem `json:"items,omitempty"` // Populated when fetching a full routine
}

// NewRoutine creates a Routine with a generated UID and current timestamp.
func NewRoutine(name, routineType string) *Routine {
	return &Routine{
		UID:       uuid.New(),
		Name:      name,
		Type:      routineType,
		CreatedAt: time.Now(),
	}
}

// RoutineItem is one exercise target within a routine.
type RoutineItem struct {
	ID           int64   `json:"id"`
	RoutineID    int64   `json:"routine_id"`
	ExerciseName string  `json:"exercise_name"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	DurationMin  float64 `json:"duration_min"`
}

// NewRoutineItem creates an item not yet attached to a routine.
func NewRoutineItem(exerciseName string, sets, reps int, durationMin float64) RoutineItem {
	return RoutineItem{
		ExerciseName: exerciseName,
		Sets:         sets,
		Reps:         reps,
		DurationMin:  durationMin,
	}
}
