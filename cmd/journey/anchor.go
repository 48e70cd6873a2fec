// ABOUTME: CLI command showing where the next check-in will be written.
// ABOUTME: Prints the anchor candidate and the suggested write date.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var anchorCmd = &cobra.Command{
	Use:   "anchor",
	Short: "Show the next writable check-in date",
	Long: `Show the next writable check-in date.

  candidate   Earliest date a new check-in may use (day after the latest one)
  suggested   Date 'journey checkin' will use (today once the candidate is past)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		anchor, err := svc.Anchor()
		if err != nil {
			return err
		}

		start := svc.JourneyStart()
		faint := color.New(color.Faint).SprintFunc()
		fmt.Printf("Journey start: %s\n", start)
		fmt.Printf("Candidate:     %s %s\n", anchor.Candidate, faint(fmt.Sprintf("(day %d)", anchor.Candidate.DaysSince(start)+1)))
		fmt.Printf("Suggested:     %s %s\n", anchor.Suggested, faint(fmt.Sprintf("(day %d)", anchor.Suggested.DaysSince(start)+1)))
		if anchor.Suggested.After(anchor.Candidate) {
			color.Yellow("\n⚠ %d day(s) skipped; they will score 0", anchor.Suggested.DaysSince(anchor.Candidate))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(anchorCmd)
}
