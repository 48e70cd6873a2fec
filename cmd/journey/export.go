// ABOUTME: CLI commands for exporting and importing journey data.
// ABOUTME: Supports JSON, YAML, and Markdown export; imports JSON or YAML backups.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/fatih/color"
	"github.com/harperreed/journey/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export journey data",
	Long: `Export journey data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include days since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  journey export json                         # Export all data as JSON
  journey export json -o backup.json          # Save to file
  journey export yaml                         # Export as YAML
  journey export markdown --since 2025-03-01  # Table from March onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		start := svc.JourneyStart()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(repo, &start)
		case "yaml":
			data, err = storage.ExportYAML(repo, &start)
		case "markdown":
			var since *civil.Date
			if exportSince != "" {
				d, err := civil.ParseDate(exportSince)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &d
			}
			md, err := storage.ExportMarkdown(repo, start, since)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
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
	Short: "Import journey data from a backup",
	Long: `Import journey data from a JSON or YAML backup file.

Check-ins are merged by date: an imported day replaces the stored one.
Every record is validated first; nothing is written if any is malformed.
Files ending in .yaml or .yml are read as YAML, everything else as JSON.

EXAMPLES:

  journey import backup.json
  journey import backup.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		var data *storage.ExportData
		if isYAMLFile(filename) {
			data, err = storage.ImportYAML(repo, raw)
		} else {
			data, err = storage.ImportJSON(repo, raw)
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  Check-ins: %d\n", len(data.Checkins))
		fmt.Printf("  Survey answers: %d\n", len(data.SurveyAnswers))
		if data.JourneyStart != "" && data.JourneyStart != svc.JourneyStart().String() {
			color.Yellow("⚠ Backup journey start %s differs from configured start %s", data.JourneyStart, svc.JourneyStart())
		}
		return nil
	},
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include days since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
