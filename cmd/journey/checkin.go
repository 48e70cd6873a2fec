// ABOUTME: CLI command for recording a daily belief check-in.
// ABOUTME: Asks each prompt interactively or takes the yes answers via --yes.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/fatih/color"
	"github.com/harperreed/journey/internal/models"
	"github.com/spf13/cobra"
)

var (
	checkinYes  string
	checkinDate string
)

var checkinCmd = &cobra.Command{
	Use:     "checkin",
	Aliases: []string{"c"},
	Short:   "Record today's belief check-in",
	Long: `Record a daily belief check-in.

Without --yes, each prompt is asked in turn; answer y or n.
With --yes, list the prompt IDs you agree with; every other prompt is a no.

The check-in goes to the next open day of the journey. Days can only be
written in order: once a day is recorded, earlier days are closed.

EXAMPLES:

  journey checkin                              # Answer interactively
  journey checkin --yes capable,growth         # Non-interactive
  journey checkin --yes "" --date 2025-01-03   # All no, explicit date

Run 'journey prompts' to see prompt IDs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompts := svc.Prompts()

		var date civil.Date
		if checkinDate != "" {
			d, err := civil.ParseDate(checkinDate)
			if err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", checkinDate)
			}
			date = d
		} else {
			anchor, err := svc.Anchor()
			if err != nil {
				return err
			}
			date = anchor.Suggested
		}

		var set *models.DailyResponseSet
		if cmd.Flags().Changed("yes") {
			yes, err := parseYesList(prompts, checkinYes)
			if err != nil {
				return err
			}
			set = models.NewDailyResponseSet(date)
			for _, p := range prompts {
				set.Answer(p.ID, yes[p.ID])
			}
		} else {
			fmt.Printf("Check-in for %s\n\n", date)
			answers, err := askResponses(prompts, os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			set = models.NewDailyResponseSet(date)
			set.Answers = answers
		}

		r, err := svc.RecordCheckin(set, models.SourceUser)
		if err != nil {
			return err
		}

		day := r.Date.DaysSince(svc.JourneyStart()) + 1
		color.Green("✓ Checked in for %s (day %d)", r.Date, day)
		fmt.Printf("  Score: %+d (%d empowering, %d shadow)\n", r.DailyScore, r.PositiveYesCount, r.NegativeYesCount)
		return nil
	},
}

// parseYesList turns "a,b,c" into a set of prompt IDs, rejecting unknown IDs.
func parseYesList(prompts []models.BeliefPrompt, list string) (map[string]bool, error) {
	yes := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := models.PromptByID(prompts, id); !ok {
			return nil, fmt.Errorf("unknown prompt: %s (run 'journey prompts')", id)
		}
		yes[id] = true
	}
	return yes, nil
}

// askResponses asks each prompt on out and reads y/n answers from in.
// Anything other than y or yes counts as no.
func askResponses(prompts []models.BeliefPrompt, in io.Reader, out io.Writer) (map[string]bool, error) {
	scanner := bufio.NewScanner(in)
	answers := make(map[string]bool, len(prompts))
	for i, p := range prompts {
		fmt.Fprintf(out, "%2d. %s [y/N]: ", i+1, p.Text)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read answer: %w", err)
			}
			return nil, fmt.Errorf("check-in canceled: %d of %d prompts answered", i, len(prompts))
		}
		reply := strings.ToLower(strings.TrimSpace(scanner.Text()))
		answers[p.ID] = reply == "y" || reply == "yes"
	}
	fmt.Fprintln(out)
	return answers, nil
}

func init() {
	checkinCmd.Flags().StringVar(&checkinYes, "yes", "", "comma-separated prompt IDs answered yes")
	checkinCmd.Flags().StringVar(&checkinDate, "date", "", "check-in date (YYYY-MM-DD, default: next open day)")
	rootCmd.AddCommand(checkinCmd)
}
