// ABOUTME: CLI commands for exporting, importing, and backing up health data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthhub/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export health data",
	Long: `Export health data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include check-ins and exercise since this date (markdown only)

EXAMPLES:

  healthhub export json                        # Export all data as JSON
  healthhub export json -o backup.json         # Save to file
  healthhub export yaml                        # Export as YAML
  healthhub export markdown --since 2024-01-01 # Export data from 2024 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown", "md":
			var since *time.Time
			if exportSince != "" {
				t, perr := parseDate(exportSince)
				if perr != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			var md string
			md, err = storage.ExportMarkdown(repo, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import health data from JSON",
	Long: `Import health data from a JSON file written by 'healthhub export json'.

Records that already exist (same UID) are skipped, so importing the same
file twice is safe.

EXAMPLES:

  healthhub import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		summary, err := storage.ImportJSON(repo, data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		printSummary(summary)
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup <file>",
	Short: "Write a copy of the database",
	Long: `Write a consistent copy of the SQLite database to a new file. The target
must not exist.

EXAMPLES:

  healthhub backup ~/backups/healthhub-2024-06-01.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.Backup(args[0]); err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}
		color.Green("✓ Backed up to %s", args[0])
		return nil
	},
}

func printSummary(s *storage.ImportSummary) {
	fmt.Printf("  Check-ins:        %d\n", s.HealthEntries)
	fmt.Printf("  Exercise entries: %d\n", s.Exercises)
	fmt.Printf("  Routines:         %d (%d items)\n", s.Routines, s.RoutineItems)
	if s.Skipped > 0 {
		fmt.Println(color.New(color.Faint).Sprintf("  Skipped %d existing records", s.Skipped))
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
}
