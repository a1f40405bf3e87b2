// ABOUTME: Ordered MET table and name-based MET suggestion.
// ABOUTME: Table order is the tie-break when several entries match a name.
package fitness

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// METEntry is one activity and its metabolic-equivalent value.
type METEntry struct {
	Name string  `yaml:"name" json:"name"`
	MET  float64 `yaml:"met" json:"met"`
}

// METTable is an ordered list of activities. Order is significant:
// SuggestMET returns the first match.
type METTable []METEntry

// DefaultMETs is the built-in activity table.
var DefaultMETs = METTable{
	{Name: "corrida (8 km/h)", MET: 9.8},
	{Name: "corrida (10 km/h)", MET: 11.5},
	{Name: "caminhada (5 km/h)", MET: 3.5},
	{Name: "bicicleta moderada", MET: 7.5},
	{Name: "pular corda", MET: 12.0},
	{Name: "flexões", MET: 8.0},
	{Name: "agachamentos (rítmicos)", MET: 5.0},
	{Name: "polichinelos", MET: 8.0},
	{Name: "yoga", MET: 3.0},
	{Name: "treino HIIT (intenso)", MET: 12.0},
	{Name: "natação (moderada)", MET: 8.0},
}

// SuggestMET finds the first entry whose name's first word appears,
// case-insensitively, anywhere in exerciseName.
func SuggestMET(exerciseName string, table METTable) (float64, bool) {
	name := strings.ToLower(exerciseName)
	for _, e := range table {
		fields := strings.Fields(e.Name)
		if len(fields) == 0 {
			continue
		}
		if strings.Contains(name, strings.ToLower(fields[0])) {
			return e.MET, true
		}
	}
	return 0, false
}

// SuggestMETOrFallback is SuggestMET with FallbackMET for unmatched names.
func SuggestMETOrFallback(exerciseName string, table METTable) float64 {
	if met, ok := SuggestMET(exerciseName, table); ok {
		return met
	}
	return FallbackMET
}

// Lookup returns the entry with exactly this name (case-insensitive).
func (t METTable) Lookup(name string) (METEntry, bool) {
	for _, e := range t {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return METEntry{}, false
}

// LoadMETTable reads a YAML list of {name, met} entries.
func LoadMETTable(path string) (METTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read MET table: %w", err)
	}

	var table METTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse MET table: %w", err)
	}

	for i, e := range table {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("%w: MET table entry %d has no name", ErrInvalidInput, i+1)
		}
		if e.MET <= 0 {
			return nil, fmt.Errorf("%w: MET table entry %q must have a positive met", ErrInvalidInput, e.Name)
		}
	}
	return table, nil
}
