// ABOUTME: Tests for dashboard and progress aggregations.
// ABOUTME: Uses hand-built entries so no database is needed.
package report

import (
	"testing"
	"time"

	"github.com/harperreed/healthhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, minutes, calories float64) *models.ExerciseLogEntry {
	return &models.ExerciseLogEntry{
		Name:          name,
		DurationMin:   minutes,
		Calories:      calories,
		EntryDateTime: time.Now(),
	}
}

func TestSummarize(t *testing.T) {
	log := []*models.ExerciseLogEntry{
		entry("yoga", 30, 100),
		entry("corrida (8 km/h)", 20, 200),
		entry("yoga", 15, 50),
		entry("flexões", 20, 80),
	}

	totals := Summarize(log)
	require.Len(t, totals, 3)

	assert.Equal(t, "yoga", totals[0].Name)
	assert.Equal(t, 45.0, totals[0].DurationMin)
	assert.Equal(t, 150.0, totals[0].Calories)
	assert.Equal(t, 2, totals[0].Sessions)

	// Equal minutes fall back to name order.
	assert.Equal(t, "corrida (8 km/h)", totals[1].Name)
	assert.Equal(t, "flexões", totals[2].Name)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
}

func TestTop(t *testing.T) {
	totals := []ExerciseTotal{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	assert.Len(t, Top(totals, 2), 2)
	assert.Len(t, Top(totals, 5), 3)
	assert.Len(t, Top(totals, 0), 3)
}

func TestNeedsPractice(t *testing.T) {
	totals := []ExerciseTotal{
		{Name: "yoga", DurationMin: 60},
		{Name: "natação", DurationMin: 30},
		{Name: "flexões", DurationMin: 6},
	}

	got := NeedsPractice(totals, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "flexões", got[0].Name)
	assert.InDelta(t, 0.1, got[0].Share, 1e-9)
	assert.Equal(t, "natação", got[1].Name)
	assert.InDelta(t, 0.5, got[1].Share, 1e-9)
}

func TestNeedsPracticeAllZero(t *testing.T) {
	totals := []ExerciseTotal{{Name: "b"}, {Name: "a"}}

	got := NeedsPractice(totals, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, 0.0, got[0].Share)
}

func TestToday(t *testing.T) {
	latest := models.NewHealthEntry(70, 1.75, 6, "")
	log := []*models.ExerciseLogEntry{
		entry("yoga", 30, 105),
		entry("polichinelos", 10, 93.3),
	}

	d := Today(latest, log)
	assert.Equal(t, "normal weight", d.Class)
	assert.InDelta(t, 198.3, d.CaloriesToday, 1e-9)
	assert.Equal(t, 40.0, d.MinutesToday)
	assert.Equal(t, 2, d.Sessions)
	require.Len(t, d.Distribution, 2)
	assert.Equal(t, "yoga", d.Distribution[0].Name)

	h, ok := d.Hydration(250, 2000)
	require.True(t, ok)
	assert.Equal(t, 1500, h.ConsumedML)
	assert.Equal(t, 500, h.RemainingML)
}

func TestTodayWithoutEntries(t *testing.T) {
	d := Today(nil, nil)
	assert.Nil(t, d.Latest)
	assert.Empty(t, d.Class)
	assert.Zero(t, d.CaloriesToday)
	assert.Empty(t, d.Distribution)

	_, ok := d.Hydration(200, 2000)
	assert.False(t, ok)
}

func TestBar(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		max   float64
		width int
		want  string
	}{
		{"full", 10, 10, 4, "████"},
		{"half", 5, 10, 4, "██░░"},
		{"empty", 0, 10, 4, "░░░░"},
		{"zero max", 5, 0, 3, "░░░"},
		{"over max", 20, 10, 2, "██"},
		{"no width", 5, 10, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bar(tt.value, tt.max, tt.width))
		})
	}
}
