// ABOUTME: CLI command for computing BMI without storing anything.
// ABOUTME: Prints the value, its band, and the band thresholds.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/spf13/cobra"
)

var bmiCmd = &cobra.Command{
	Use:   "bmi <weight-kg> <height-m>",
	Short: "Calculate and classify BMI",
	Long: `Calculate BMI as weight / height² and classify it.

BANDS:

  below 18.5     underweight
  18.5 to 24.9   normal weight
  25 to 29.9     overweight
  30 to 34.9     obesity class I
  35 to 39.9     obesity class II
  40 and above   obesity class III

Examples:
  healthhub bmi 72.5 1.78`,
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

		bmi := fitness.ComputeBMI(weight, height)
		if bmi == nil {
			color.Yellow("Height must be greater than zero.")
			return nil
		}

		fmt.Println(formatBMI(bmi))
		return nil
	},
}

// formatBMI renders a BMI with its band, colored by severity.
func formatBMI(bmi *float64) string {
	class := fitness.Classify(bmi)
	if bmi == nil {
		return color.YellowString("BMI n/a (%s)", class)
	}

	text := fmt.Sprintf("BMI %.2f (%s)", *bmi, class)
	switch class {
	case fitness.Normal:
		return color.GreenString("%s", text)
	case fitness.Underweight, fitness.Overweight:
		return color.YellowString("%s", text)
	default:
		return color.RedString("%s", text)
	}
}

func init() {
	rootCmd.AddCommand(bmiCmd)
}
