// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands against a temporary database and checks stored state.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/storage"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"72.5", 72.5, false},
		{"72,5", 72.5, false},
		{" 1.78 ", 1.78, false},
		{"0", 0, false},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFloat("weight", tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParsePositive(t *testing.T) {
	_, err := parsePositive("weight", "0")
	assert.ErrorContains(t, err, "greater than zero")

	_, err = parsePositive("weight", "-3")
	assert.Error(t, err)

	v, err := parsePositive("weight", "80")
	require.NoError(t, err)
	assert.Equal(t, 80.0, v)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"3", 3, false},
		{"#12", 12, false},
		{"0", 0, true},
		{"-1", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"date only", "2025-01-31", false},
		{"date and time with space", "2025-01-31 08:30", false},
		{"date and time with T", "2025-01-31T08:30", false},
		{"RFC3339", "2025-01-31T08:30:00Z", false},
		{"day first", "31-01-2025", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2025, got.Year())
			assert.Equal(t, 31, got.Day())
		})
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{" Y \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"sure\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.answer), func(t *testing.T) {
			var out bytes.Buffer
			got, err := confirm(strings.NewReader(tt.answer), &out, "Proceed?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Proceed? [y/N] ", out.String())
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello..."},
		{"multibyte runes", "flexões com palmas", 10, "flexões..."},
		{"empty string", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.input, tt.maxLen))
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"needs padding", "hi", 5, "hi   "},
		{"exact length", "hello", 5, "hello"},
		{"longer than length", "hello world", 5, "hello world"},
		{"multibyte runes", "açaí", 6, "açaí  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, padRight(tt.input, tt.length))
		})
	}
}

func TestParseItemArg(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    string
		sets    int
		reps    int
		minutes float64
		wantErr bool
	}{
		{"sets and reps", "flexões:3:12", "flexões", 3, 12, 0, false},
		{"with minutes", "corrida (8 km/h):0:0:15", "corrida (8 km/h)", 0, 0, 15, false},
		{"decimal comma minutes", "yoga:0:0:7,5", "yoga", 0, 0, 7.5, false},
		{"colon in name", "treino: pernas:4:10", "treino: pernas", 4, 10, 0, false},
		{"trimmed name", "  agachamentos :4:12", "agachamentos", 4, 12, 0, false},
		{"too few fields", "flexões:3", "", 0, 0, 0, true},
		{"bad sets", "flexões:x:12", "", 0, 0, 0, true},
		{"negative reps", "flexões:3:-1", "", 0, 0, 0, true},
		{"missing name", ":3:12", "", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := parseItemArg(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, it.ExerciseName)
			assert.Equal(t, tt.sets, it.Sets)
			assert.Equal(t, tt.reps, it.Reps)
			assert.InDelta(t, tt.minutes, it.DurationMin, 1e-9)
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	assert.Equal(t, "healthhub", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"checkin", "bmi", "history", "exercise", "routine", "dashboard",
		"progress", "export", "import", "backup", "migrate", "mcp", "install-skill",
	} {
		assert.True(t, names[want], "missing command %q", want)
	}

	sub := map[string]bool{}
	for _, c := range routineCmd.Commands() {
		sub[c.Name()] = true
	}
	for _, want := range []string{"create", "add-item", "list", "show", "complete", "delete"} {
		assert.True(t, sub[want], "missing routine subcommand %q", want)
	}
}

func TestCommandFlags(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("data-dir"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))

	d := exerciseAddCmd.Flags().Lookup("duration")
	require.NotNil(t, d)
	assert.Equal(t, "d", d.Shorthand)
	assert.NotNil(t, exerciseAddCmd.Flags().Lookup("met"))
	assert.NotNil(t, exerciseAddCmd.Flags().Lookup("weight"))

	limit := exerciseListCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "20", limit.DefValue)
	assert.NotNil(t, exerciseListCmd.Flags().Lookup("today"))

	assert.NotNil(t, checkinCmd.Flags().Lookup("cups"))
	assert.NotNil(t, routineCreateCmd.Flags().Lookup("item"))
	assert.NotNil(t, routineDeleteCmd.Flags().Lookup("yes"))
	assert.NotNil(t, exportCmd.Flags().Lookup("output"))
	assert.NotNil(t, exportCmd.Flags().Lookup("since"))
	assert.NotNil(t, migrateCmd.Flags().Lookup("from"))

	assert.ElementsMatch(t, []string{"json", "yaml", "markdown"}, exportCmd.ValidArgs)
	assert.Contains(t, checkinCmd.Aliases, "c")
	assert.Contains(t, exerciseCmd.Aliases, "ex")
	assert.Contains(t, dashboardCmd.Aliases, "today")
}

// setupTestCLI points the CLI at a temporary data directory and returns a
// second handle on the same database for inspecting what commands wrote.
func setupTestCLI(t *testing.T) *storage.DB {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("HEALTHHUB_DATA_DIR", tmpDir)

	testDB, err := storage.Open(filepath.Join(tmpDir, "healthhub.db"))
	require.NoError(t, err)

	resetFlags()
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	t.Cleanup(func() {
		_ = closeRepo()
		_ = testDB.Close()
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return testDB
}

// resetFlags restores flag globals, which persist between Execute calls.
func resetFlags() {
	dataDirFlag = ""
	verbose = false
	checkinCups = 0
	checkinNote = ""
	historyLimit = 20
	exerciseDuration = 0
	exerciseMET = 0
	exerciseWeight = 0
	exerciseLimit = 20
	exerciseToday = false
	exerciseClearYes = false
	routineType = ""
	routineItems = nil
	routineYes = false
	exportOutput = ""
	exportSince = ""
	migrateFrom = ""
	progressTop = 5
	progressCheckin = 7
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCheckinCmd(t *testing.T) {
	testDB := setupTestCLI(t)

	require.NoError(t, run(t, "checkin", "72,5", "1.78", "--cups", "6", "--note", "morning"))

	e, err := testDB.LatestHealthEntry()
	require.NoError(t, err)
	assert.Equal(t, 72.5, e.WeightKg)
	assert.Equal(t, 1.78, e.HeightM)
	assert.Equal(t, 6, e.Cups)
	assert.Equal(t, "morning", e.Note)
	require.NotNil(t, e.BMI)
	assert.Equal(t, fitness.Normal, fitness.Classify(e.BMI))
}

func TestCheckinCmdRejectsBadInput(t *testing.T) {
	testDB := setupTestCLI(t)

	assert.Error(t, run(t, "checkin", "0", "1.78"))
	assert.Error(t, run(t, "checkin", "abc", "1.78"))
	assert.Error(t, run(t, "checkin", "72", "1.78", "--cups", "-1"))

	_, err := testDB.LatestHealthEntry()
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBMICmdNeedsNoDatabase(t *testing.T) {
	setupTestCLI(t)

	require.NoError(t, run(t, "bmi", "72", "1.8"))
	assert.Nil(t, repo)
}

func TestNeedsStorage(t *testing.T) {
	root := &cobra.Command{Use: "healthhub"}
	completion := &cobra.Command{Use: "completion"}
	bash := &cobra.Command{Use: "bash"}
	routine := &cobra.Command{Use: "routine"}
	show := &cobra.Command{Use: "show"}
	complete := &cobra.Command{Use: cobra.ShellCompRequestCmd}
	completion.AddCommand(bash)
	routine.AddCommand(show)
	root.AddCommand(completion, routine, complete)

	assert.False(t, needsStorage(completion))
	assert.False(t, needsStorage(bash))
	assert.False(t, needsStorage(complete))
	assert.True(t, needsStorage(routine))
	assert.True(t, needsStorage(show))
}

func TestCompletionCmdDoesNotOpenDatabase(t *testing.T) {
	setupTestCLI(t)
	dir := filepath.Join(t.TempDir(), "fresh")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	require.NoError(t, run(t, "--data-dir", dir, "completion", "bash"))

	assert.Contains(t, out.String(), "bash completion")
	assert.Nil(t, repo)
	_, err := os.Stat(filepath.Join(dir, "healthhub.db"))
	assert.True(t, os.IsNotExist(err), "database should not be created, stat err %v", err)
}

func TestExerciseAddCmd(t *testing.T) {
	testDB := setupTestCLI(t)
	_, err := testDB.AppendHealthEntry(80, 1.8, 0, "")
	require.NoError(t, err)

	require.NoError(t, run(t, "exercise", "add", "yoga", "--duration", "30"))

	log, err := testDB.ListExerciseLog(0)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "yoga", log[0].Name)
	assert.Equal(t, 30.0, log[0].DurationMin)
	assert.Equal(t, 3.0, log[0].MET)
	// 3 MET × 80 kg × 30 min / 60
	assert.InDelta(t, 120, log[0].Calories, 1e-9)
}

func TestExerciseAddCmdFallbackMET(t *testing.T) {
	testDB := setupTestCLI(t)

	require.NoError(t, run(t, "exercise", "add", "parkour", "-d", "10", "--weight", "60"))

	log, err := testDB.ListExerciseLog(0)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, fitness.FallbackMET, log[0].MET)
	assert.InDelta(t, 60, log[0].Calories, 1e-9)
}

func TestExerciseAddCmdRequiresDuration(t *testing.T) {
	testDB := setupTestCLI(t)

	assert.Error(t, run(t, "exercise", "add", "yoga"))

	log, err := testDB.ListExerciseLog(0)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestExerciseListCmd(t *testing.T) {
	testDB := setupTestCLI(t)
	_, err := testDB.AppendExerciseLog("yoga", 30, 105, 3)
	require.NoError(t, err)

	assert.NoError(t, run(t, "exercise", "list"))
	assert.NoError(t, run(t, "exercise", "list", "--today", "-n", "0"))
}

func TestExerciseClearCmd(t *testing.T) {
	testDB := setupTestCLI(t)
	_, err := testDB.AppendExerciseLog("yoga", 30, 105, 3)
	require.NoError(t, err)

	// Declined prompt keeps the log.
	rootCmd.SetIn(strings.NewReader("n\n"))
	require.NoError(t, run(t, "exercise", "clear"))
	log, err := testDB.ListExerciseLog(0)
	require.NoError(t, err)
	assert.Len(t, log, 1)

	rootCmd.SetIn(strings.NewReader("y\n"))
	require.NoError(t, run(t, "exercise", "clear"))
	log, err = testDB.ListExerciseLog(0)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestRoutineCmds(t *testing.T) {
	testDB := setupTestCLI(t)

	require.NoError(t, run(t, "routine", "create", "Manhã", "--type", "casa",
		"--item", "flexões:3:12", "--item", "yoga:0:0:15"))

	routines, err := testDB.ListRoutines()
	require.NoError(t, err)
	require.Len(t, routines, 1)
	r := routines[0]
	assert.Equal(t, "Manhã", r.Name)
	assert.Equal(t, "casa", r.Type)

	id := strconv.FormatInt(r.ID, 10)
	require.NoError(t, run(t, "routine", "add-item", "#"+id, "polichinelos:2:20"))

	items, err := testDB.ListRoutineItems(r.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "polichinelos", items[2].ExerciseName)

	require.NoError(t, run(t, "routine", "list"))
	require.NoError(t, run(t, "routine", "show", id))

	require.NoError(t, run(t, "routine", "complete", id))
	log, err := testDB.ListExerciseLog(0)
	require.NoError(t, err)
	assert.Len(t, log, 3)

	require.NoError(t, run(t, "routine", "delete", id, "--yes"))
	_, err = testDB.GetRoutine(r.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Logged sessions outlive the routine.
	log, err = testDB.ListExerciseLog(0)
	require.NoError(t, err)
	assert.Len(t, log, 3)
}

func TestRoutineCmdsUnknownRoutine(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "routine", "add-item", "99", "flexões:3:12")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = run(t, "routine", "complete", "99")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = run(t, "routine", "delete", "99", "--yes")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDashboardAndProgressCmds(t *testing.T) {
	testDB := setupTestCLI(t)

	// Empty database.
	require.NoError(t, run(t, "dashboard"))
	require.NoError(t, run(t, "progress"))

	_, err := testDB.AppendHealthEntry(80, 1.8, 4, "")
	require.NoError(t, err)
	_, err = testDB.AppendExerciseLog("yoga", 30, 120, 3)
	require.NoError(t, err)

	require.NoError(t, run(t, "dashboard"))
	require.NoError(t, run(t, "progress", "--top", "1"))
	require.NoError(t, run(t, "history"))
}

func TestExportImportCmds(t *testing.T) {
	testDB := setupTestCLI(t)
	_, err := testDB.AppendHealthEntry(80, 1.8, 4, "")
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, run(t, "export", "json", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"health_entries"`)

	exportOutput = ""
	assert.Error(t, run(t, "export", "csv"))
	assert.Error(t, run(t, "export", "markdown", "--since", "yesterday"))

	// Re-importing the same file adds nothing.
	exportSince = ""
	require.NoError(t, run(t, "import", out))
	entries, err := testDB.ListHealthEntries(0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBackupAndMigrateCmds(t *testing.T) {
	testDB := setupTestCLI(t)
	_, err := testDB.AppendExerciseLog("yoga", 30, 105, 3)
	require.NoError(t, err)

	other := filepath.Join(t.TempDir(), "other.db")
	src, err := storage.Open(other)
	require.NoError(t, err)
	_, err = src.AppendExerciseLog("natação", 40, 400, 8)
	require.NoError(t, err)
	require.NoError(t, src.Close())

	require.NoError(t, run(t, "migrate", "--from", other))
	log, err := testDB.ListExerciseLog(0)
	require.NoError(t, err)
	assert.Len(t, log, 2)

	migrateFrom = ""
	assert.Error(t, run(t, "migrate"))
	assert.Error(t, run(t, "migrate", "--from", filepath.Join(t.TempDir(), "missing.db")))

	migrateFrom = ""
	target := filepath.Join(t.TempDir(), "copy.db")
	require.NoError(t, run(t, "backup", target))
	copied, err := storage.Open(target)
	require.NoError(t, err)
	defer copied.Close()
	log, err = copied.ListExerciseLog(0)
	require.NoError(t, err)
	assert.Len(t, log, 2)
}
