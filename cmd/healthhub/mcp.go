// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/healthhub/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to interact with your health data through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "healthhub": {
        "command": "healthhub",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  record_health       Record weight, height, and water
  latest_health       Latest check-in with BMI and hydration
  calculate_bmi       Compute and classify BMI
  suggest_met         Suggest a MET value for an exercise
  log_exercise        Log an exercise session
  list_exercise_log   List logged sessions
  clear_exercise_log  Delete every logged session (confirm: true)
  create_routine      Create a routine with its exercises
  list_routines       List routines
  get_routine         Get a routine with its exercises
  complete_routine    Log every exercise of a routine
  delete_routine      Delete a routine and its exercises

AVAILABLE RESOURCES:

  healthhub://today       Today's dashboard
  healthhub://progress    Exercise totals and recent check-ins`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, mcp.Options{
			Version:         version,
			Log:             logger,
			CupML:           cfg.GetCupML(),
			WaterGoalML:     cfg.GetWaterGoalML(),
			DefaultWeightKg: cfg.GetDefaultWeightKg(),
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
