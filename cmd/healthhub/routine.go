// ABOUTME: CLI commands for managing exercise routines.
// ABOUTME: Handles create, add-item, list, show, complete, and delete subcommands.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/models"
	"github.com/spf13/cobra"
)

var (
	routineType  string
	routineItems []string
	routineYes   bool
)

var routineCmd = &cobra.Command{
	Use:     "routine",
	Aliases: []string{"r", "routines"},
	Short:   "Manage exercise routines",
	Long: `Manage reusable exercise routines.

A routine is a named list of exercises. Each item has sets and reps and,
optionally, a duration in minutes. Completing a routine logs every item to
the exercise log; items without a duration are estimated at 0.2 minutes
per repetition.

ITEM FORMAT:

  name:sets:reps[:minutes]

  "flexões:3:12"             3 sets of 12, about 7.2 minutes
  "corrida (8 km/h):0:0:20"  20 minutes

SUBCOMMANDS:

  create    Create a routine with its items
  add-item  Add an item to an existing routine
  list      List routines
  show      Show a routine with its items
  complete  Log every item of a routine
  delete    Delete a routine and its items`,
}

var routineCreateCmd = &cobra.Command{
	Use:     "create <name>",
	Aliases: []string{"new"},
	Short:   "Create a routine",
	Long: `Create a routine and its items in one step.

Examples:
  healthhub routine create "Manhã" --type casa --item "polichinelos:3:20" --item "yoga:0:0:15"
  healthhub routine create "Pernas" --type academia --item "agachamentos:4:12"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")

		items := make([]models.RoutineItem, 0, len(routineItems))
		for _, arg := range routineItems {
			it, err := parseItemArg(arg)
			if err != nil {
				return err
			}
			items = append(items, it)
		}

		r, err := repo.CreateRoutineWithItems(name, routineType, items)
		if err != nil {
			return fmt.Errorf("failed to create routine: %w", err)
		}

		color.Green("✓ Created routine %s", r.Name)
		fmt.Printf("  %s %d exercises\n",
			color.New(color.Faint).Sprintf("#%d", r.ID),
			len(r.Items))

		return nil
	},
}

var routineAddItemCmd = &cobra.Command{
	Use:   "add-item <routine-id> <name:sets:reps[:minutes]>",
	Short: "Add an exercise to a routine",
	Long: `Add an exercise to an existing routine.

Examples:
  healthhub routine add-item 3 "flexões:3:12"
  healthhub routine add-item 3 "pular corda:0:0:5"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		it, err := parseItemArg(args[1])
		if err != nil {
			return err
		}

		itemID, err := repo.AddRoutineItem(id, it.ExerciseName, it.Sets, it.Reps, it.DurationMin)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		color.Green("✓ Added %s to routine #%d", it.ExerciseName, id)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprintf("#%d", itemID), describeItem(it))
		return nil
	},
}

var routineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List routines",
	RunE: func(cmd *cobra.Command, args []string) error {
		routines, err := repo.ListRoutines()
		if err != nil {
			return fmt.Errorf("failed to list routines: %w", err)
		}

		if len(routines) == 0 {
			fmt.Println("No routines found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range routines {
			items, err := repo.ListRoutineItems(r.ID)
			if err != nil {
				return fmt.Errorf("failed to list routine items: %w", err)
			}
			fmt.Printf("%s %s %s %d exercises\n",
				faint.Sprint(padRight(fmt.Sprintf("#%d", r.ID), 5)),
				padRight(truncate(r.Name, 24), 24),
				padRight(r.Type, 10),
				len(items))
		}

		return nil
	},
}

var routineShowCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"s", "get"},
	Short:   "Show a routine with its items",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		r, err := repo.GetRoutine(id)
		if err != nil {
			return fmt.Errorf("failed to get routine: %w", err)
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s", color.New(color.Bold).Sprint(r.Name), faint.Sprintf("#%d", r.ID))
		if r.Type != "" {
			fmt.Printf(" (%s)", r.Type)
		}
		fmt.Println()
		fmt.Printf("  Created: %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"))

		if len(r.Items) == 0 {
			fmt.Println("  No exercises yet.")
			return nil
		}

		var minutes float64
		fmt.Println()
		for i, it := range r.Items {
			fmt.Printf("  %d. %s %s\n", i+1, padRight(it.ExerciseName, 24), describeItem(it))
			minutes += fitness.EffectiveDuration(it.DurationMin, it.Sets, it.Reps)
		}
		fmt.Printf("\n  About %.0f minutes\n", minutes)

		return nil
	},
}

var routineCompleteCmd = &cobra.Command{
	Use:     "complete <id>",
	Aliases: []string{"done"},
	Short:   "Log every item of a routine",
	Long: `Log every item of a routine to the exercise log, using your latest
check-in weight and the suggested MET for each exercise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		logged, err := repo.CompleteRoutine(id)
		if err != nil {
			return fmt.Errorf("failed to complete routine: %w", err)
		}

		if len(logged) == 0 {
			color.Yellow("Routine #%d has no exercises to log.", id)
			return nil
		}

		var minutes, kcal float64
		color.Green("✓ Completed routine #%d", id)
		for _, e := range logged {
			fmt.Printf("  %s %s %5.1f min %6.0f kcal\n",
				color.New(color.Faint).Sprintf("#%d", e.ID),
				padRight(truncate(e.Name, 24), 24),
				e.DurationMin, e.Calories)
			minutes += e.DurationMin
			kcal += e.Calories
		}
		fmt.Printf("  Total: %.0f min, %.0f kcal\n", minutes, kcal)

		return nil
	},
}

var routineDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm", "d"},
	Short:   "Delete a routine and its items",
	Long: `Delete a routine and all its items. Sessions already logged from the
routine stay in the exercise log.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if !routineYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete routine #%d?", id))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Canceled.")
				return nil
			}
		}

		if err := repo.DeleteRoutine(id); err != nil {
			return fmt.Errorf("failed to delete routine: %w", err)
		}

		color.Green("✓ Deleted routine #%d", id)
		return nil
	},
}

// parseItemArg parses "name:sets:reps[:minutes]". The name may itself
// contain colons; the numeric fields are taken from the right.
func parseItemArg(arg string) (models.RoutineItem, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 3 {
		return models.RoutineItem{}, fmt.Errorf("invalid item %q (use name:sets:reps[:minutes])", arg)
	}

	numeric := 2
	if len(parts) >= 4 {
		if _, err := parseFloat("minutes", parts[len(parts)-1]); err == nil {
			if _, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-3])); err == nil {
				numeric = 3
			}
		}
	}

	name := strings.TrimSpace(strings.Join(parts[:len(parts)-numeric], ":"))
	fields := parts[len(parts)-numeric:]

	sets, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || sets < 0 {
		return models.RoutineItem{}, fmt.Errorf("invalid sets in item %q", arg)
	}
	reps, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || reps < 0 {
		return models.RoutineItem{}, fmt.Errorf("invalid reps in item %q", arg)
	}

	var minutes float64
	if numeric == 3 {
		minutes, _ = parseFloat("minutes", fields[2])
		if minutes < 0 {
			return models.RoutineItem{}, fmt.Errorf("invalid minutes in item %q", arg)
		}
	}

	if name == "" {
		return models.RoutineItem{}, fmt.Errorf("missing exercise name in item %q", arg)
	}

	return models.NewRoutineItem(name, sets, reps, minutes), nil
}

func describeItem(it models.RoutineItem) string {
	switch {
	case it.DurationMin > 0 && it.Sets > 0:
		return fmt.Sprintf("%d×%d, %.0f min", it.Sets, it.Reps, it.DurationMin)
	case it.DurationMin > 0:
		return fmt.Sprintf("%.0f min", it.DurationMin)
	default:
		return fmt.Sprintf("%d×%d", it.Sets, it.Reps)
	}
}

func init() {
	routineCreateCmd.Flags().StringVarP(&routineType, "type", "t", "", "routine type (e.g. casa, academia)")
	routineCreateCmd.Flags().StringArrayVarP(&routineItems, "item", "i", nil, "exercise as name:sets:reps[:minutes] (repeatable)")

	routineDeleteCmd.Flags().BoolVarP(&routineYes, "yes", "y", false, "skip confirmation prompt")

	routineCmd.AddCommand(routineCreateCmd)
	routineCmd.AddCommand(routineAddItemCmd)
	routineCmd.AddCommand(routineListCmd)
	routineCmd.AddCommand(routineShowCmd)
	routineCmd.AddCommand(routineCompleteCmd)
	routineCmd.AddCommand(routineDeleteCmd)
	rootCmd.AddCommand(routineCmd)
}
