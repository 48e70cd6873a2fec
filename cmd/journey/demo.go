// ABOUTME: CLI command generating demo check-ins.
// ABOUTME: Writes consecutive random check-ins tagged as demo data.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	demoDays int
	demoSeed uint64
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate random demo check-ins",
	Long: `Generate random demo check-ins starting at the next open day.

Demo check-ins are tagged so 'journey reset --demo' can remove them
without touching your own. The same --seed gives the same answers.

EXAMPLES:

  journey demo --days 30
  journey demo --days 90 --seed 7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := svc.GenerateDemo(demoDays, demoSeed)
		if len(created) > 0 {
			first, last := created[0], created[len(created)-1]
			color.Green("✓ Generated %d demo check-ins (%s to %s)", len(created), first.Date, last.Date)
		}
		if err != nil {
			return fmt.Errorf("demo stopped: %w", err)
		}
		return nil
	},
}

func init() {
	demoCmd.Flags().IntVar(&demoDays, "days", 30, "number of days to generate")
	demoCmd.Flags().Uint64Var(&demoSeed, "seed", 1, "random seed")
	rootCmd.AddCommand(demoCmd)
}
