// ABOUTME: Tests for MET suggestion and MET table loading.
// ABOUTME: Verifies first-declared-entry-wins ordering.
package fitness

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSuggestMET(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{"first corrida entry wins", "corrida rápida", 9.8, true},
		{"case insensitive", "YOGA matinal", 3.0, true},
		{"substring inside name", "natação livre", 8.0, true},
		{"earlier entry shadows later", "treino de natação", 12.0, true},
		{"hiit uses first token", "treino pesado", 12.0, true},
		{"no match", "xadrez", 0, false},
		{"empty name", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SuggestMET(tt.input, DefaultMETs)
			if ok != tt.wantOK {
				t.Fatalf("SuggestMET(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("SuggestMET(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSuggestMETDeclarationOrder(t *testing.T) {
	table := METTable{
		{Name: "run slow", MET: 6},
		{Name: "run fast", MET: 11},
	}
	if got, _ := SuggestMET("morning run", table); got != 6 {
		t.Errorf("got %v, want 6 (first declared)", got)
	}

	reversed := METTable{table[1], table[0]}
	if got, _ := SuggestMET("morning run", reversed); got != 11 {
		t.Errorf("got %v, want 11 (first declared)", got)
	}
}

func TestSuggestMETOrFallback(t *testing.T) {
	if got := SuggestMETOrFallback("xadrez", DefaultMETs); got != FallbackMET {
		t.Errorf("got %v, want %v", got, FallbackMET)
	}
	if got := SuggestMETOrFallback("pular corda", DefaultMETs); got != 12.0 {
		t.Errorf("got %v, want 12", got)
	}
}

func TestMETTableLookup(t *testing.T) {
	e, ok := DefaultMETs.Lookup("YOGA")
	if !ok || e.MET != 3.0 {
		t.Errorf("Lookup(YOGA) = %+v, %v", e, ok)
	}
	if _, ok := DefaultMETs.Lookup("yog"); ok {
		t.Error("Lookup should require an exact name")
	}
}

func TestLoadMETTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mets.yaml")
	content := "- name: swim laps\n  met: 9.5\n- name: walk dog\n  met: 3.0\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	table, err := LoadMETTable(path)
	if err != nil {
		t.Fatalf("LoadMETTable failed: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(table))
	}
	if table[0].Name != "swim laps" || table[0].MET != 9.5 {
		t.Errorf("first entry = %+v", table[0])
	}
}

func TestLoadMETTableRejectsBadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mets.yaml")
	if err := os.WriteFile(path, []byte("- name: nap\n  met: 0\n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := LoadMETTable(path); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadMETTableMissingFile(t *testing.T) {
	if _, err := LoadMETTable(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
