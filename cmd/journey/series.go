// ABOUTME: CLI command printing the dense journey series.
// ABOUTME: Shows day, score, cumulative, and a bar clamped to the display band.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/journey/internal/models"
	"github.com/harperreed/journey/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	seriesAll  bool
	seriesJSON bool
)

// barWidth is the number of cells on each side of the zero line.
const barWidth = 20

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Show the journey line",
	Long: `Show the journey line, one row per day.

By default only days up to the latest check-in are shown. Days without a
check-in score 0 and keep the running total. The bar is clamped to the
configured display band; the cumulative column is the true total.

EXAMPLES:

  journey series            # Days so far
  journey series --all      # All 365 days
  journey series --json     # Machine-readable`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var points []models.DensePoint
		var err error
		if seriesAll {
			points, err = svc.Series()
		} else {
			points, err = svc.SeriesToDate()
		}
		if err != nil {
			return err
		}

		if seriesJSON {
			if points == nil {
				points = []models.DensePoint{}
			}
			data, err := json.MarshalIndent(points, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(points) == 0 {
			fmt.Println("No check-ins yet. Run 'journey checkin' to start.")
			return nil
		}

		band := cfg.GetDisplayBand()
		faint := color.New(color.Faint).SprintFunc()
		fmt.Printf("%s  %s  %s  %s\n", padRight("DAY", 4), padRight("DATE", 10), padRight("SCORE", 5), "TOTAL")
		for _, p := range points {
			score := padRight(fmt.Sprintf("%+d", p.Score), 5)
			if !p.HasCheckin {
				score = faint(padRight("-", 5))
			}
			fmt.Printf("%s  %s  %s  %s  %s\n",
				padRight(fmt.Sprintf("%d", p.DayNumber), 4),
				p.Date,
				score,
				padRight(fmt.Sprintf("%+d", p.Cumulative), 5),
				renderBar(scoring.DisplayCumulative(p.Cumulative, band), band, barWidth))
		}
		return nil
	},
}

// renderBar draws value on a centered axis of width cells per side.
func renderBar(value, band float64, width int) string {
	if band <= 0 {
		return "|"
	}
	cells := int(math.Round(math.Abs(value) / band * float64(width)))
	cells = min(cells, width)
	blank := strings.Repeat(" ", width)
	switch {
	case value > 0:
		return blank + "|" + color.GreenString(strings.Repeat("█", cells))
	case value < 0:
		return strings.Repeat(" ", width-cells) + color.RedString(strings.Repeat("█", cells)) + "|"
	default:
		return blank + "|"
	}
}

func init() {
	seriesCmd.Flags().BoolVar(&seriesAll, "all", false, "show all 365 days")
	seriesCmd.Flags().BoolVar(&seriesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(seriesCmd)
}
