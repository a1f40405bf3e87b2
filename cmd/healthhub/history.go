// ABOUTME: CLI command for listing past check-ins.
// ABOUTME: Shows weight, BMI class, and water per entry, newest first.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "List recent check-ins",
	Long: `List recent check-ins, newest first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  WEIGHT  HEIGHT  BMI (CLASS)  CUPS  (NOTE)

EXAMPLES:

  healthhub history          # Last 20 check-ins
  healthhub history -n 0     # Every check-in`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := repo.ListHealthEntries(historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list check-ins: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No check-ins found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			note := ""
			if e.Note != "" {
				note = faint.Sprintf(" (%s)", truncate(e.Note, 30))
			}
			fmt.Printf("%s %s %6.1f kg %4.2f m  %s  %d cups%s\n",
				faint.Sprint(padRight(fmt.Sprintf("#%d", e.ID), 5)),
				faint.Sprint(e.EntryDate),
				e.WeightKg,
				e.HeightM,
				formatBMI(e.BMI),
				e.Cups,
				note)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
