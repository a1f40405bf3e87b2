// ABOUTME: CLI command for recording a body-metric check-in.
// ABOUTME: Stores weight, height, and water cups; BMI is derived on save.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/spf13/cobra"
)

var (
	checkinCups int
	checkinNote string
)

var checkinCmd = &cobra.Command{
	Use:     "checkin <weight-kg> <height-m>",
	Aliases: []string{"c", "add"},
	Short:   "Record weight, height, and water intake",
	Long: `Record a check-in. BMI is computed from weight and height and stored
with the entry, so later reads never recompute it.

A height of zero is accepted but the BMI is left empty and classified as
"invalid height".

Examples:
  healthhub checkin 72.5 1.78
  healthhub checkin 72.5 1.78 --cups 6
  healthhub checkin 80 1.8 --note "after holidays"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := parsePositive("weight", args[0])
		if err != nil {
			return err
		}
		height, err := parseFloat("height", args[1])
		if err != nil {
			return err
		}
		if checkinCups < 0 {
			return fmt.Errorf("cups must not be negative: %d", checkinCups)
		}

		id, err := repo.AppendHealthEntry(weight, height, checkinCups, checkinNote)
		if err != nil {
			return fmt.Errorf("failed to record check-in: %w", err)
		}

		bmi := fitness.ComputeBMI(weight, height)
		color.Green("✓ Recorded check-in")
		fmt.Printf("  %s %.1f kg  %s\n",
			color.New(color.Faint).Sprintf("#%d", id),
			weight,
			formatBMI(bmi))

		h := fitness.Hydration(checkinCups, cfg.GetCupML(), cfg.GetWaterGoalML())
		fmt.Printf("  water %d/%d mL", h.ConsumedML, h.GoalML)
		if h.RemainingML > 0 {
			fmt.Printf(" (%d mL to go)", h.RemainingML)
		}
		fmt.Println()

		return nil
	},
}

func init() {
	checkinCmd.Flags().IntVar(&checkinCups, "cups", 0, "cups of water drunk today")
	checkinCmd.Flags().StringVar(&checkinNote, "note", "", "note for the check-in")
	rootCmd.AddCommand(checkinCmd)
}
