// ABOUTME: JSON views of stored records returned by tools and resources.
// ABOUTME: Flattens timestamps to strings and adds derived fields like BMI class.
package mcp

import (
	"time"

	"github.com/harperreed/healthhub/internal/models"
)

type healthEntryView struct {
	ID         int64    `json:"id"`
	Date       string   `json:"date"`
	WeightKg   float64  `json:"weight_kg"`
	HeightM    float64  `json:"height_m"`
	BMI        *float64 `json:"bmi,omitempty"`
	Class      string   `json:"class"`
	Cups       int      `json:"cups"`
	Note       string   `json:"note,omitempty"`
	RecordedAt string   `json:"recorded_at"`
}

type exerciseView struct {
	ID          int64   `json:"id"`
	DateTime    string  `json:"datetime"`
	Name        string  `json:"name"`
	DurationMin float64 `json:"duration_min"`
	Calories    float64 `json:"calories"`
	MET         float64 `json:"met"`
}

type routineItemView struct {
	ID          int64   `json:"id"`
	Exercise    string  `json:"exercise"`
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	DurationMin float64 `json:"duration_min"`
}

type routineView struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	CreatedAt string            `json:"created_at"`
	Items     []routineItemView `json:"items,omitempty"`
}

func viewHealthEntry(e *models.HealthEntry) healthEntryView {
	return healthEntryView{
		ID:         e.ID,
		Date:       e.EntryDate,
		WeightKg:   e.WeightKg,
		HeightM:    e.HeightM,
		BMI:        e.BMI,
		Class:      e.Class().String(),
		Cups:       e.Cups,
		Note:       e.Note,
		RecordedAt: e.CreatedAt.Local().Format(time.RFC3339),
	}
}

func viewExercises(entries []*models.ExerciseLogEntry) []exerciseView {
	out := make([]exerciseView, 0, len(entries))
	for _, e := range entries {
		out = append(out, exerciseView{
			ID:          e.ID,
			DateTime:    e.EntryDateTime.Format(time.RFC3339),
			Name:        e.Name,
			DurationMin: e.DurationMin,
			Calories:    e.Calories,
			MET:         e.MET,
		})
	}
	return out
}

func viewRoutine(r *models.Routine) routineView {
	v := routineView{
		ID:        r.ID,
		Name:      r.Name,
		Type:      r.Type,
		CreatedAt: r.CreatedAt.Local().Format(time.RFC3339),
	}
	for _, it := range r.Items {
		v.Items = append(v.Items, routineItemView{
			ID:          it.ID,
			Exercise:    it.ExerciseName,
			Sets:        it.Sets,
			Reps:        it.Reps,
			DurationMin: it.DurationMin,
		})
	}
	return v
}
