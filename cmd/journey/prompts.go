// ABOUTME: CLI command listing the daily belief prompts.
// ABOUTME: Shows each prompt's ID, category, and text.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/journey/internal/models"
	"github.com/spf13/cobra"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List the daily check-in prompts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint).SprintFunc()
		for _, p := range svc.Prompts() {
			sign := color.GreenString("+1")
			if p.Category == models.CategoryShadow {
				sign = color.RedString("-1")
			}
			fmt.Printf("%s  %s  %s\n", sign, padRight(p.ID, 11), p.Text)
		}
		fmt.Println(faint("\nUse the IDs with 'journey checkin --yes id,id'."))
		return nil
	},
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	rootCmd.AddCommand(promptsCmd)
}
