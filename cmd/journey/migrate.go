// ABOUTME: CLI command for copying journey data between storage backends.
// ABOUTME: Moves check-ins and survey answers from one backend to another.
package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/harperreed/journey/internal/config"
	"github.com/harperreed/journey/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom  string
	migrateTo    string
	migrateForce bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy check-ins and survey answers from one storage backend to another.

BACKENDS:

  sqlite     Single database file (default)
  markdown   One file per check-in under the data directory
  charm      Charm KV, synced across devices

The destination must be empty unless --force is given; with --force,
records are merged by date and the source wins.

After migrating, set "backend" in the config file to use the new one.

EXAMPLES:

  journey migrate --from sqlite --to markdown
  journey migrate --from markdown --to charm --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(config.Backends, migrateFrom) {
			return fmt.Errorf("unknown source backend: %s", migrateFrom)
		}
		if !slices.Contains(config.Backends, migrateTo) {
			return fmt.Errorf("unknown destination backend: %s", migrateTo)
		}
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}

		src, err := cfg.OpenBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateFrom, err)
		}
		defer func() { _ = src.Close() }()

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		if !migrateForce {
			existing, err := dst.GetAllData()
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", migrateTo, err)
			}
			if len(existing.Checkins) > 0 || len(existing.SurveyAnswers) > 0 {
				return fmt.Errorf("%s already has data (%d check-ins, %d survey answers); use --force to merge",
					migrateTo, len(existing.Checkins), len(existing.SurveyAnswers))
			}
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		logger.Info("migrated", "from", migrateFrom, "to", migrateTo, "checkins", summary.Checkins)
		color.Green("✓ Migrated %s → %s", migrateFrom, migrateTo)
		fmt.Printf("  Check-ins: %d\n", summary.Checkins)
		fmt.Printf("  Survey answers: %d\n", summary.SurveyAnswers)
		if cfg.GetBackend() != migrateTo {
			color.Yellow("\nSet \"backend\": %q in %s to use it.", migrateTo, config.GetConfigPath())
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "sqlite", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "markdown", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "merge into a non-empty destination")
	rootCmd.AddCommand(migrateCmd)
}
