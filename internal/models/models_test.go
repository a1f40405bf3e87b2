// ABOUTME: Tests for health, exercise, and routine models.
// ABOUTME: Validates constructors and derived fields.
package models

import (
	"math"
	"testing"
	"time"

	"github.com/harperreed/healthhub/internal/fitness"
)

func TestNewHealthEntry(t *testing.T) {
	e := NewHealthEntry(70, 1.75, 4, "after run")

	if e.UID.String() == "" {
		t.Error("expected UID to be set")
	}
	if e.EntryDate != time.Now().Format(DateLayout) {
		t.Errorf("EntryDate = %s, want today", e.EntryDate)
	}
	if e.BMI == nil {
		t.Fatal("expected BMI to be computed")
	}
	if math.Abs(*e.BMI-70/(1.75*1.75)) > 1e-12 {
		t.Errorf("BMI = %v", *e.BMI)
	}
	if e.Class() != fitness.Normal {
		t.Errorf("Class() = %s, want normal", e.Class())
	}
}

func TestNewHealthEntryInvalidHeight(t *testing.T) {
	e := NewHealthEntry(70, 0, 0, "")
	if e.BMI != nil {
		t.Errorf("expected nil BMI, got %v", *e.BMI)
	}
	if e.Class() != fitness.InvalidHeight {
		t.Errorf("Class() = %s, want invalid height", e.Class())
	}
}

func TestNewExerciseLogEntry(t *testing.T) {
	e := NewExerciseLogEntry("yoga", 30, 105, 3.0)

	if e.Name != "yoga" || e.DurationMin != 30 || e.Calories != 105 || e.MET != 3.0 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Day() != time.Now().Format(DateLayout) {
		t.Errorf("Day() = %s, want today", e.Day())
	}
}

func TestNewRoutine(t *testing.T) {
	r := NewRoutine("Full Body", "casa")
	if r.Name != "Full Body" || r.Type != "casa" {
		t.Errorf("unexpected routine: %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	item := NewRoutineItem("flexões", 3, 12, 0)
	if item.Sets != 3 || item.Reps != 12 || item.DurationMin != 0 {
		t.Errorf("unexpected item: %+v", item)
	}
}
