// ABOUTME: Root Cobra command for the journey CLI.
// ABOUTME: Loads config, opens storage, and builds the service in PersistentPreRunE.
package main

import (
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/log"
	"github.com/harperreed/journey/internal/config"
	"github.com/harperreed/journey/internal/journey"
	"github.com/harperreed/journey/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	repo    storage.Repository
	svc     *journey.Service
	logger  *log.Logger
	verbose bool
)

// noStorage lists commands that run without opening a backend.
// Sync subcommands manage the charm store themselves.
var noStorage = map[string]bool{
	"help":          true,
	"completion":    true,
	"install-skill": true,
	"migrate":       true,
}

func needsStorage(cmd *cobra.Command) bool {
	if noStorage[cmd.Name()] {
		return false
	}
	for p := cmd.Parent(); p != nil; p = p.Parent() {
		if p.Name() == "sync" || p.Name() == "completion" {
			return false
		}
	}
	return true
}

var rootCmd = &cobra.Command{
	Use:   "journey",
	Short: "Daily belief check-ins and a year-long progress line",
	Long: `Journey tracks a daily belief check-in and turns it into a year-long line.

HOW SCORING WORKS:

  Each day you answer ten short prompts yes or no. Five are empowering
  beliefs (+1 for each yes) and five are shadow beliefs (-1 for each yes).
  The day's score is the difference, clamped to -10..+10. The journey is
  365 days long and the cumulative total carries across days you skip.

QUICK START:

  $ journey checkin                   # Answer today's prompts
  $ journey checkin --yes capable,growth
  $ journey series                    # See the line so far
  $ journey anchor                    # Where the next check-in goes

SELF-ASSESSMENT:

  $ journey survey questions          # Six domains, five questions each
  $ journey survey answer 1 3 agree   # Section 1, question 3
  $ journey survey strengths          # 0-100 strength per domain

STORAGE:

  Backends are sqlite (default), markdown, or charm (synced KV).
  Set "backend" in ~/.config/journey/config.json or JOURNEY_BACKEND.

MCP INTEGRATION:

  Run 'journey mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "journey": { "command": "journey", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if !needsStorage(cmd) {
			return nil
		}
		return openService()
	},
}

// Execute runs the root command and closes storage, even when the command fails.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeStorage(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func closeStorage() error {
	svc = nil
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger writes diagnostics to stderr; verbose lowers the level to debug.
func newLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "journey",
	})
}

// openService opens the configured backend and builds the service.
// The journey start defaults to today and is saved on first use.
func openService() error {
	today := civil.DateOf(time.Now().UTC())
	start, changed, err := cfg.EnsureJourneyStart(today)
	if err != nil {
		return err
	}
	if changed {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save journey start: %w", err)
		}
		logger.Info("journey started", "start", start)
	}

	repo, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	logger.Debug("opened storage", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

	svc = journey.New(repo, start, journey.WithLogger(logger))
	return nil
}
