// ABOUTME: CLI command showing exercise totals and weight trend.
// ABOUTME: Highlights the most and least practiced exercises.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthhub/internal/models"
	"github.com/harperreed/healthhub/internal/report"
	"github.com/spf13/cobra"
)

var (
	progressTop     int
	progressCheckin int
)

var progressCmd = &cobra.Command{
	Use:     "progress",
	Aliases: []string{"stats"},
	Short:   "Show exercise totals and weight trend",
	Long: `Show total minutes and calories per exercise across the whole log,
the exercises that need more practice (smallest share of your most
practiced exercise), and the weight trend over recent check-ins.

EXAMPLES:

  healthhub progress           # Top 5, 5 to practice, last 7 check-ins
  healthhub progress --top 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := repo.ListExerciseLog(0)
		if err != nil {
			return fmt.Errorf("failed to list exercise log: %w", err)
		}
		entries, err := repo.ListHealthEntries(progressCheckin)
		if err != nil {
			return fmt.Errorf("failed to list check-ins: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		totals := report.Summarize(log)
		bold.Println("Most practiced")
		if len(totals) == 0 {
			faint.Println("  No exercise logged yet.")
		} else {
			printTotals(report.Top(totals, progressTop))
			fmt.Println()

			bold.Println("Needs practice")
			for _, s := range report.NeedsPractice(totals, report.NeedsPracticeCount) {
				fmt.Printf("  %s %3.0f%% of top\n", padRight(truncate(s.Name, 22), 22), s.Share*100)
			}
		}
		fmt.Println()

		bold.Println("Weight")
		if len(entries) == 0 {
			faint.Println("  No check-ins yet.")
			return nil
		}
		weights := recentWeights(entries)
		parts := make([]string, 0, len(weights))
		for _, w := range weights {
			parts = append(parts, fmt.Sprintf("%.1f", w))
		}
		fmt.Printf("  %s kg\n", strings.Join(parts, " → "))
		if len(weights) > 1 {
			change := weights[len(weights)-1] - weights[0]
			switch {
			case change < 0:
				color.Green("  %.1f kg over %d check-ins", change, len(weights))
			case change > 0:
				color.Yellow("  +%.1f kg over %d check-ins", change, len(weights))
			default:
				fmt.Printf("  No change over %d check-ins\n", len(weights))
			}
		}

		return nil
	},
}

// recentWeights returns weights oldest first for trend display.
func recentWeights(entries []*models.HealthEntry) []float64 {
	out := make([]float64, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i].WeightKg)
	}
	return out
}

func init() {
	progressCmd.Flags().IntVar(&progressTop, "top", report.TopCount, "number of exercises to rank")
	progressCmd.Flags().IntVar(&progressCheckin, "checkins", 7, "number of recent check-ins for the weight trend")
	rootCmd.AddCommand(progressCmd)
}
