// ABOUTME: CLI command for merging another healthhub database into this one.
// ABOUTME: Useful when consolidating data from a second machine or an old backup.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/healthhub/internal/config"
	"github.com/harperreed/healthhub/internal/storage"
	"github.com/spf13/cobra"
)

var migrateFrom string

var migrateCmd = &cobra.Command{
	Use:   "migrate --from <database>",
	Short: "Merge another healthhub database into this one",
	Long: `Copy every check-in, exercise session, and routine from another healthhub
database into the current one.

Records are matched by UID, so running the same migration twice adds
nothing the second time. The source database is only read.

USAGE:

  healthhub migrate --from ~/old-laptop/healthhub.db
  healthhub migrate --from ~/backups/healthhub-2024-06-01.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == "" {
			return fmt.Errorf("--from is required")
		}
		src := config.ExpandPath(migrateFrom)
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("source database: %w", err)
		}

		summary, err := storage.MigrateFile(src, repo)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Merged %s", src)
		printSummary(summary)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "path of the database to merge in")
	rootCmd.AddCommand(migrateCmd)
}
