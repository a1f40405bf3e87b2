// ABOUTME: Aggregations over stored health records for dashboards and progress views.
// ABOUTME: Pure functions; callers fetch records from the store and pass them in.
package report

import (
	"math"
	"sort"
	"strings"

	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/models"
)

// ExerciseTotal accumulates every logged session of one exercise.
type ExerciseTotal struct {
	Name        string  `json:"name"`
	DurationMin float64 `json:"duration_min"`
	Calories    float64 `json:"calories"`
	Sessions    int     `json:"sessions"`
}

// Share is one exercise's total minutes relative to the busiest exercise.
type Share struct {
	ExerciseTotal
	Share float64 `json:"share"`
}

// Dashboard is the snapshot shown for the current day.
type Dashboard struct {
	Latest        *models.HealthEntry `json:"latest,omitempty"`
	Class         string              `json:"class,omitempty"`
	CaloriesToday float64             `json:"calories_today"`
	MinutesToday  float64             `json:"minutes_today"`
	Sessions      int                 `json:"sessions"`
	Distribution  []ExerciseTotal     `json:"distribution"`
}

// Today builds the dashboard from the latest health entry (nil when none
// exists) and the exercise entries logged today.
func Today(latest *models.HealthEntry, todayLog []*models.ExerciseLogEntry) Dashboard {
	d := Dashboard{
		Latest:       latest,
		Sessions:     len(todayLog),
		Distribution: Summarize(todayLog),
	}
	if latest != nil {
		d.Class = latest.Class().String()
	}
	for _, e := range todayLog {
		d.CaloriesToday += e.Calories
		d.MinutesToday += e.DurationMin
	}
	return d
}

// Hydration reports water intake for the latest entry. It returns false
// when no entry has been recorded.
func (d Dashboard) Hydration(cupML, goalML int) (fitness.HydrationStatus, bool) {
	if d.Latest == nil {
		return fitness.HydrationStatus{}, false
	}
	return fitness.Hydration(d.Latest.Cups, cupML, goalML), true
}

// Summarize groups entries by exercise name, sorted by total minutes
// descending and then by name.
func Summarize(log []*models.ExerciseLogEntry) []ExerciseTotal {
	byName := make(map[string]*ExerciseTotal)
	for _, e := range log {
		t, ok := byName[e.Name]
		if !ok {
			t = &ExerciseTotal{Name: e.Name}
			byName[e.Name] = t
		}
		t.DurationMin += e.DurationMin
		t.Calories += e.Calories
		t.Sessions++
	}

	totals := make([]ExerciseTotal, 0, len(byName))
	for _, t := range byName {
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].DurationMin != totals[j].DurationMin {
			return totals[i].DurationMin > totals[j].DurationMin
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}

// Default list lengths for progress views.
const (
	TopCount           = 5
	NeedsPracticeCount = 5
)

// Top returns the first n totals. totals must already be sorted.
func Top(totals []ExerciseTotal, n int) []ExerciseTotal {
	if n <= 0 || n >= len(totals) {
		return totals
	}
	return totals[:n]
}

// NeedsPractice returns the n exercises with the smallest share of the
// busiest exercise's minutes, smallest first.
func NeedsPractice(totals []ExerciseTotal, n int) []Share {
	peak := 0.0
	for _, t := range totals {
		peak = math.Max(peak, t.DurationMin)
	}
	if peak == 0 {
		peak = 1
	}

	shares := make([]Share, 0, len(totals))
	for _, t := range totals {
		shares = append(shares, Share{ExerciseTotal: t, Share: t.DurationMin / peak})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Share != shares[j].Share {
			return shares[i].Share < shares[j].Share
		}
		return shares[i].Name < shares[j].Name
	})

	if n > 0 && n < len(shares) {
		shares = shares[:n]
	}
	return shares
}

// Bar renders value as a horizontal bar of width cells scaled against peak.
func Bar(value, peak float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if peak > 0 && value > 0 {
		filled = int(math.Round(value / peak * float64(width)))
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
