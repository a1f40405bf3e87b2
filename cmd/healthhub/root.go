// ABOUTME: Root Cobra command for healthhub CLI.
// ABOUTME: Loads config and manages the repository and logger via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/healthhub/internal/config"
	"github.com/harperreed/healthhub/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	repo   storage.Repository
	cfg    *config.Config
	logger = zap.NewNop()

	dataDirFlag string
	verbose     bool
)

// Commands that never touch the database. Subcommands inherit the entry
// of their parent, so "completion bash" is covered by "completion".
var noStorage = map[string]bool{
	"help":                          true,
	"bmi":                           true,
	"install-skill":                 true,
	"completion":                    true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

func needsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if noStorage[c.Name()] {
			return false
		}
	}
	return true
}

var rootCmd = &cobra.Command{
	Use:     "healthhub",
	Short:   "Personal health and exercise tracker",
	Version: version,
	Long: `Healthhub tracks body metrics, water intake, and exercise on your own machine.

WHAT IT TRACKS:

  Check-ins   weight, height, cups of water (BMI computed and classified)
  Exercise    sessions with duration, MET, and estimated calories
  Routines    reusable exercise lists you can log in one go

QUICK START:

  $ healthhub checkin 72.5 1.78 --cups 6         # Log today's check-in
  $ healthhub bmi 72.5 1.78                      # Just compute BMI
  $ healthhub exercise add yoga --duration 30    # Log a session
  $ healthhub dashboard                          # See today at a glance

ROUTINES:

  $ healthhub routine create "Casa" --type casa \
      --item "polichinelos:3:20" --item "corrida (8 km/h):0:0:15"
  $ healthhub routine complete 1                 # Log every exercise

MCP INTEGRATION:

  Run 'healthhub mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "healthhub": { "command": "healthhub", "args": ["mcp"] }
    }
  }

CONFIGURATION:

  Settings live in ~/.config/healthhub/config.json and can be overridden
  with HEALTHHUB_* environment variables (e.g. HEALTHHUB_DATA_DIR).

DATA STORAGE:

  Records are stored in SQLite at ~/.local/share/healthhub/healthhub.db.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDirFlag != "" {
			cfg.DataDir = dataDirFlag
		}
		if verbose {
			cfg.LogLevel = "debug"
		}

		logger, err = cfg.NewLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if !needsStorage(cmd) {
			return nil
		}

		repo, err = cfg.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		defer func() { _ = logger.Sync() }()
		return closeRepo()
	},
}

func closeRepo() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// PersistentPostRunE is skipped when RunE fails.
		_ = closeRepo()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory holding healthhub.db (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}
