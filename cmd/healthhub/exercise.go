// ABOUTME: CLI commands for the exercise log.
// ABOUTME: Handles logging sessions, listing, clearing, and the MET table.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/models"
	"github.com/spf13/cobra"
)

var (
	exerciseDuration float64
	exerciseMET      float64
	exerciseWeight   float64
	exerciseLimit    int
	exerciseToday    bool
	exerciseClearYes bool
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex", "e"},
	Short:   "Log and review exercise sessions",
	Long: `Log exercise sessions and review the exercise log.

Calories are estimated as MET × weight (kg) × hours. The MET is suggested
from the exercise name when not given, and the weight comes from your
latest check-in.

SUBCOMMANDS:

  add     Log a session
  list    List logged sessions
  clear   Delete every logged session
  mets    Show the MET table used for suggestions`,
}

var exerciseAddCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"a", "log"},
	Short:   "Log an exercise session",
	Long: `Log an exercise session.

Examples:
  healthhub exercise add yoga --duration 30
  healthhub exercise add "corrida (10 km/h)" -d 25
  healthhub exercise add remo -d 20 --met 7 --weight 80`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(strings.Join(args, " "))

		met := exerciseMET
		if met == 0 {
			suggested, ok := fitness.SuggestMET(name, repo.METTable())
			if ok {
				met = suggested
			} else {
				met = fitness.FallbackMET
				color.Yellow("No MET match for %q, using %.1f", name, met)
			}
		}

		weight := exerciseWeight
		if weight == 0 {
			w, err := repo.LatestWeight(cfg.GetDefaultWeightKg())
			if err != nil {
				return fmt.Errorf("failed to get latest weight: %w", err)
			}
			weight = w
		}

		calories, err := fitness.EstimateCalories(met, weight, exerciseDuration)
		if err != nil {
			return err
		}

		id, err := repo.AppendExerciseLog(name, exerciseDuration, calories, met)
		if err != nil {
			return fmt.Errorf("failed to log exercise: %w", err)
		}

		color.Green("✓ Logged %s", name)
		fmt.Printf("  %s %.0f min  %.0f kcal  MET %.1f\n",
			color.New(color.Faint).Sprintf("#%d", id),
			exerciseDuration, calories, met)

		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List logged exercise sessions",
	Long: `List logged exercise sessions, newest first.

EXAMPLES:

  healthhub exercise list           # Last 20 sessions
  healthhub exercise list -n 0      # Every session
  healthhub exercise list --today   # Sessions logged today`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []*models.ExerciseLogEntry
		var err error
		if exerciseToday {
			entries, err = repo.ListExerciseLogOn(time.Now())
		} else {
			entries, err = repo.ListExerciseLog(exerciseLimit)
		}
		if err != nil {
			return fmt.Errorf("failed to list exercise log: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No exercise logged.")
			return nil
		}

		faint := color.New(color.Faint)
		var totalMin, totalKcal float64
		for _, e := range entries {
			fmt.Printf("%s %s %s %5.1f min %6.0f kcal  MET %.1f\n",
				faint.Sprint(padRight(fmt.Sprintf("#%d", e.ID), 5)),
				faint.Sprint(e.EntryDateTime.Format("2006-01-02 15:04")),
				padRight(truncate(e.Name, 24), 24),
				e.DurationMin,
				e.Calories,
				e.MET)
			totalMin += e.DurationMin
			totalKcal += e.Calories
		}
		fmt.Printf("\n%d sessions, %.0f min, %.0f kcal\n", len(entries), totalMin, totalKcal)

		return nil
	},
}

var exerciseClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every logged exercise session",
	Long: `Delete every logged exercise session. Check-ins and routines are kept.

Examples:
  healthhub exercise clear        # Asks for confirmation
  healthhub exercise clear --yes  # No prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !exerciseClearYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete the whole exercise log?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Canceled.")
				return nil
			}
		}

		removed, err := repo.ClearExerciseLog()
		if err != nil {
			return fmt.Errorf("failed to clear exercise log: %w", err)
		}

		color.Green("✓ Removed %d exercise sessions", removed)
		return nil
	},
}

var exerciseMetsCmd = &cobra.Command{
	Use:   "mets",
	Short: "Show the MET table",
	Long: `Show the activity table used to suggest MET values.

An exercise matches the first entry whose first word appears in its name,
so "corrida leve" matches "corrida (8 km/h)". Unmatched names use 6.0.
Set met_table in the config to a YAML file to replace this table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range repo.METTable() {
			fmt.Printf("  %s %5.1f\n", padRight(e.Name, 26), e.MET)
		}
		fmt.Println(color.New(color.Faint).Sprintf("  %s %5.1f", padRight("(no match)", 26), fitness.FallbackMET))
		return nil
	},
}

func init() {
	exerciseAddCmd.Flags().Float64VarP(&exerciseDuration, "duration", "d", 0, "duration in minutes (required)")
	exerciseAddCmd.Flags().Float64Var(&exerciseMET, "met", 0, "MET value (default: suggested from name)")
	exerciseAddCmd.Flags().Float64Var(&exerciseWeight, "weight", 0, "body weight in kg (default: latest check-in)")
	_ = exerciseAddCmd.MarkFlagRequired("duration")

	exerciseListCmd.Flags().IntVarP(&exerciseLimit, "limit", "n", 20, "max number of results (0 for all)")
	exerciseListCmd.Flags().BoolVar(&exerciseToday, "today", false, "only sessions logged today")

	exerciseClearCmd.Flags().BoolVarP(&exerciseClearYes, "yes", "y", false, "skip confirmation prompt")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseClearCmd)
	exerciseCmd.AddCommand(exerciseMetsCmd)
	rootCmd.AddCommand(exerciseCmd)
}
