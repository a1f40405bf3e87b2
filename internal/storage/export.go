// ABOUTME: Export and import functionality for health records.
// ABOUTME: Supports JSON, YAML, and Markdown export; JSON import is idempotent by UID.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for health records.
type ExportData struct {
	Version       string                     `json:"version" yaml:"version"`
	ExportedAt    time.Time                  `json:"exported_at" yaml:"exported_at"`
	Tool          string                     `json:"tool" yaml:"tool"`
	HealthEntries []*models.HealthEntry      `json:"health_entries" yaml:"health_entries"`
	ExerciseLog   []*models.ExerciseLogEntry `json:"exercise_log" yaml:"exercise_log"`
	Routines      []*models.Routine          `json:"routines" yaml:"routines"`
}

// ImportSummary holds counts of imported and skipped records.
type ImportSummary struct {
	HealthEntries int
	Exercises     int
	Routines      int
	RoutineItems  int
	Skipped       int
}

// GetAllData retrieves all records for export.
func (d *DB) GetAllData() (*ExportData, error) {
	entries, err := d.ListHealthEntries(0)
	if err != nil {
		return nil, fmt.Errorf("list health entries: %w", err)
	}

	exercises, err := d.ListExerciseLog(0)
	if err != nil {
		return nil, fmt.Errorf("list exercise log: %w", err)
	}

	routines, err := d.ListRoutines()
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}

	// Populate routine items
	for _, r := range routines {
		items, err := d.listItems(r.ID)
		if err != nil {
			return nil, fmt.Errorf("list routine items: %w", err)
		}
		for _, it := range items {
			r.Items = append(r.Items, *it)
		}
	}

	return &ExportData{
		Version:       "1.0",
		ExportedAt:    time.Now(),
		Tool:          "healthhub",
		HealthEntries: entries,
		ExerciseLog:   exercises,
		Routines:      routines,
	}, nil
}

// ImportData imports records from an export. Records whose UID already
// exists are skipped, so importing the same file twice is harmless.
// Records without a UID get a fresh one and missing timestamps default to
// the time of import. BMI is recomputed from the imported weight and height.
// Every record is validated before anything is written.
func (d *DB) ImportData(data *ExportData) (*ImportSummary, error) {
	summary := &ImportSummary{}
	if err := prepareImport(data, time.Now()); err != nil {
		return summary, err
	}

	// Import health entries
	for _, e := range data.HealthEntries {
		id, err := d.insertHealthEntry(e)
		if err != nil {
			return summary, fmt.Errorf("import health entry: %w", err)
		}
		if id == 0 {
			summary.Skipped++
			continue
		}
		summary.HealthEntries++
	}

	// Import exercise log
	for _, e := range data.ExerciseLog {
		id, err := d.insertExercise(e)
		if err != nil {
			return summary, fmt.Errorf("import exercise: %w", err)
		}
		if id == 0 {
			summary.Skipped++
			continue
		}
		summary.Exercises++
	}

	// Import routines and their items
	for _, r := range data.Routines {
		items := r.Items
		r.Items = nil
		r.ID = 0
		if err := d.insertRoutineTree(r, items); err != nil {
			return summary, fmt.Errorf("import routine: %w", err)
		}
		if r.ID == 0 {
			summary.Skipped++
			continue
		}
		summary.Routines++
		summary.RoutineItems += len(r.Items)
	}

	d.log.Info("imported data",
		zap.Int("health_entries", summary.HealthEntries),
		zap.Int("exercises", summary.Exercises),
		zap.Int("routines", summary.Routines),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

// prepareImport validates every record and fills in what an export may
// omit: UIDs, timestamps, entry dates, and the derived BMI.
func prepareImport(data *ExportData, now time.Time) error {
	stamp := func(t time.Time) time.Time {
		if t.IsZero() {
			return now
		}
		return t
	}
	newUID := func(id uuid.UUID) uuid.UUID {
		if id == uuid.Nil {
			return uuid.New()
		}
		return id
	}

	for i, e := range data.HealthEntries {
		if e == nil {
			return fmt.Errorf("import health entry %d: %w", i+1, invalid("empty record"))
		}
		if e.WeightKg <= 0 || e.Cups < 0 {
			return fmt.Errorf("import health entry %d: %w", i+1, invalid("weight %g, cups %d", e.WeightKg, e.Cups))
		}
		e.UID = newUID(e.UID)
		e.CreatedAt = stamp(e.CreatedAt)
		if e.EntryDate == "" {
			e.EntryDate = e.CreatedAt.Local().Format(models.DateLayout)
		}
		e.BMI = fitness.ComputeBMI(e.WeightKg, e.HeightM)
	}

	for i, e := range data.ExerciseLog {
		if e == nil {
			return fmt.Errorf("import exercise %d: %w", i+1, invalid("empty record"))
		}
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return fmt.Errorf("import exercise %d: %w", i+1, invalid("exercise name is empty"))
		}
		if e.DurationMin <= 0 {
			return fmt.Errorf("import exercise %d: %w", i+1, invalid("duration must be positive, got %g", e.DurationMin))
		}
		if e.Calories < 0 || e.MET < 0 {
			return fmt.Errorf("import exercise %d: %w", i+1, invalid("calories %g, met %g", e.Calories, e.MET))
		}
		e.UID = newUID(e.UID)
		e.CreatedAt = stamp(e.CreatedAt)
		if e.EntryDateTime.IsZero() {
			e.EntryDateTime = e.CreatedAt
		}
	}

	for i, r := range data.Routines {
		if r == nil {
			return fmt.Errorf("import routine %d: %w", i+1, invalid("empty record"))
		}
		r.Name = strings.TrimSpace(r.Name)
		if err := validateRoutine(r); err != nil {
			return fmt.Errorf("import routine %d: %w", i+1, err)
		}
		for j := range r.Items {
			r.Items[j].ExerciseName = strings.TrimSpace(r.Items[j].ExerciseName)
			if err := validateRoutineItem(r.Items[j]); err != nil {
				return fmt.Errorf("import routine %q item %d: %w", r.Name, j+1, err)
			}
		}
		r.UID = newUID(r.UID)
		r.CreatedAt = stamp(r.CreatedAt)
	}
	return nil
}

// ExportJSON exports all records as JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports records from JSON bytes.
func ImportJSON(r Repository, raw []byte) (*ImportSummary, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(&data)
}

// ExportYAML exports all records as YAML.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version       string         `yaml:"version"`
		ExportedAt    string         `yaml:"exported_at"`
		Tool          string         `yaml:"tool"`
		HealthEntries []yamlHealth   `yaml:"health_entries"`
		ExerciseLog   []yamlExercise `yaml:"exercise_log"`
		Routines      []yamlRoutine  `yaml:"routines"`
	}{
		Version:       data.Version,
		ExportedAt:    data.ExportedAt.Format(time.RFC3339),
		Tool:          data.Tool,
		HealthEntries: make([]yamlHealth, 0, len(data.HealthEntries)),
		ExerciseLog:   make([]yamlExercise, 0, len(data.ExerciseLog)),
		Routines:      make([]yamlRoutine, 0, len(data.Routines)),
	}

	for _, e := range data.HealthEntries {
		yh := yamlHealth{
			ID:     e.ID,
			Date:   e.EntryDate,
			Weight: e.WeightKg,
			Height: e.HeightM,
			BMI:    e.BMI,
			Class:  e.Class().String(),
			Cups:   e.Cups,
			Note:   e.Note,
		}
		yamlData.HealthEntries = append(yamlData.HealthEntries, yh)
	}

	for _, e := range data.ExerciseLog {
		yamlData.ExerciseLog = append(yamlData.ExerciseLog, yamlExercise{
			ID:          e.ID,
			DateTime:    e.EntryDateTime.Format(time.RFC3339),
			Name:        e.Name,
			DurationMin: e.DurationMin,
			Calories:    e.Calories,
			MET:         e.MET,
		})
	}

	for _, r := range data.Routines {
		yr := yamlRoutine{
			ID:        r.ID,
			Name:      r.Name,
			Type:      r.Type,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		}
		for _, it := range r.Items {
			yr.Items = append(yr.Items, yamlRoutineItem{
				Exercise:    it.ExerciseName,
				Sets:        it.Sets,
				Reps:        it.Reps,
				DurationMin: it.DurationMin,
			})
		}
		yamlData.Routines = append(yamlData.Routines, yr)
	}

	return yaml.Marshal(yamlData)
}

type yamlHealth struct {
	ID     int64    `yaml:"id"`
	Date   string   `yaml:"date"`
	Weight float64  `yaml:"weight_kg"`
	Height float64  `yaml:"height_m"`
	BMI    *float64 `yaml:"bmi,omitempty"`
	Class  string   `yaml:"class"`
	Cups   int      `yaml:"cups"`
	Note   string   `yaml:"note,omitempty"`
}

type yamlExercise struct {
	ID          int64   `yaml:"id"`
	DateTime    string  `yaml:"datetime"`
	Name        string  `yaml:"name"`
	DurationMin float64 `yaml:"duration_min"`
	Calories    float64 `yaml:"calories"`
	MET         float64 `yaml:"met"`
}

type yamlRoutine struct {
	ID        int64             `yaml:"id"`
	Name      string            `yaml:"name"`
	Type      string            `yaml:"type"`
	CreatedAt string            `yaml:"created_at"`
	Items     []yamlRoutineItem `yaml:"items,omitempty"`
}

type yamlRoutineItem struct {
	Exercise    string  `yaml:"exercise"`
	Sets        int     `yaml:"sets"`
	Reps        int     `yaml:"reps"`
	DurationMin float64 `yaml:"duration_min,omitempty"`
}

// ExportMarkdown exports records as Markdown tables. When since is set,
// only health entries and exercises on or after that time are included.
func ExportMarkdown(r Repository, since *time.Time) (string, error) {
	data, err := r.GetAllData()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Health Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Health entries\n\n")
	sb.WriteString("| Date | Weight | Height | BMI | Class | Cups | Note |\n")
	sb.WriteString("|------|--------|--------|-----|-------|------|------|\n")
	for _, e := range data.HealthEntries {
		if since != nil && e.CreatedAt.Before(*since) {
			continue
		}
		bmi := "n/a"
		if e.BMI != nil {
			bmi = fmt.Sprintf("%.2f", *e.BMI)
		}
		sb.WriteString(fmt.Sprintf("| %s | %.1f kg | %.2f m | %s | %s | %d | %s |\n",
			e.EntryDate, e.WeightKg, e.HeightM, bmi, e.Class(), e.Cups, e.Note))
	}
	sb.WriteString("\n")

	sb.WriteString("## Exercise log\n\n")
	sb.WriteString("| Date | Exercise | Duration | Calories | MET |\n")
	sb.WriteString("|------|----------|----------|----------|-----|\n")
	for _, e := range data.ExerciseLog {
		if since != nil && e.EntryDateTime.Before(*since) {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %.1f min | %.0f kcal | %.1f |\n",
			e.EntryDateTime.Format("2006-01-02 15:04"),
			e.Name, e.DurationMin, e.Calories, e.MET))
	}

	if len(data.Routines) > 0 {
		sb.WriteString("\n## Routines\n")
		for _, rt := range data.Routines {
			sb.WriteString(fmt.Sprintf("\n### %s (%s)\n\n", rt.Name, rt.Type))
			sb.WriteString("| Exercise | Sets | Reps | Duration |\n")
			sb.WriteString("|----------|------|------|----------|\n")
			for _, it := range rt.Items {
				sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f min |\n",
					it.ExerciseName, it.Sets, it.Reps, it.DurationMin))
			}
		}
	}

	return sb.String(), nil
}
