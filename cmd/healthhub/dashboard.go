// ABOUTME: CLI command showing today's snapshot.
// ABOUTME: Latest check-in with BMI and hydration, plus today's exercise.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthhub/internal/report"
	"github.com/harperreed/healthhub/internal/storage"
	"github.com/spf13/cobra"
)

const barWidth = 20

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"today", "dash"},
	Short:   "Show today's snapshot",
	Long: `Show the latest check-in with its BMI class and water progress, and
the exercise logged today with minutes per exercise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		latest, err := repo.LatestHealthEntry()
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to get latest check-in: %w", err)
		}

		todayLog, err := repo.ListExerciseLogOn(time.Now())
		if err != nil {
			return fmt.Errorf("failed to list today's exercise: %w", err)
		}

		printDashboard(report.Today(latest, todayLog))
		return nil
	},
}

func printDashboard(d report.Dashboard) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Println("Body")
	if d.Latest == nil {
		faint.Println("  No check-ins yet. Try: healthhub checkin <weight> <height>")
	} else {
		fmt.Printf("  %.1f kg, %.2f m  %s  %s\n",
			d.Latest.WeightKg, d.Latest.HeightM,
			formatBMI(d.Latest.BMI),
			faint.Sprint(d.Latest.EntryDate))
	}
	fmt.Println()

	bold.Println("Water")
	if h, ok := d.Hydration(cfg.GetCupML(), cfg.GetWaterGoalML()); ok {
		fmt.Printf("  %s %d/%d mL\n",
			report.Bar(float64(h.ConsumedML), float64(h.GoalML), barWidth),
			h.ConsumedML, h.GoalML)
	} else {
		faint.Println("  Nothing recorded.")
	}
	fmt.Println()

	bold.Println("Exercise today")
	if d.Sessions == 0 {
		faint.Println("  Nothing logged yet.")
		return
	}
	fmt.Printf("  %d sessions, %.0f min, %.0f kcal\n\n", d.Sessions, d.MinutesToday, d.CaloriesToday)
	printTotals(d.Distribution)
}

func printTotals(totals []report.ExerciseTotal) {
	if len(totals) == 0 {
		return
	}
	peak := totals[0].DurationMin
	for _, t := range totals {
		fmt.Printf("  %s %s %5.0f min %6.0f kcal\n",
			padRight(truncate(t.Name, 22), 22),
			report.Bar(t.DurationMin, peak, barWidth),
			t.DurationMin, t.Calories)
	}
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
