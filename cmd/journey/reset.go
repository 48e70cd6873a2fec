// ABOUTME: CLI command deleting check-ins and optionally survey answers.
// ABOUTME: Asks for confirmation unless --yes is given.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	resetDemo    bool
	resetSurvey  bool
	resetConfirm bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete check-ins",
	Long: `Delete check-ins so the journey can start over.

  --demo     Only delete demo check-ins
  --survey   Also delete survey answers
  --yes      Skip the confirmation prompt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		what := "ALL check-ins"
		if resetDemo {
			what = "demo check-ins"
		}
		if resetSurvey {
			what += " and survey answers"
		}

		if !resetConfirm && !confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete %s?", what)) {
			fmt.Println("Canceled.")
			return nil
		}

		n, err := svc.Reset(resetDemo)
		if err != nil {
			return err
		}
		color.Green("✓ Deleted %d check-in(s)", n)

		if resetSurvey {
			if err := svc.ClearSurvey(); err != nil {
				return err
			}
			color.Green("✓ Survey answers cleared")
		}
		return nil
	},
}

// confirm asks a y/N question and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	reader := bufio.NewReader(in)
	line, _ := reader.ReadString('\n')
	reply := strings.ToLower(strings.TrimSpace(line))
	return reply == "y" || reply == "yes"
}

func init() {
	resetCmd.Flags().BoolVar(&resetDemo, "demo", false, "only delete demo check-ins")
	resetCmd.Flags().BoolVar(&resetSurvey, "survey", false, "also delete survey answers")
	resetCmd.Flags().BoolVarP(&resetConfirm, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(resetCmd)
}
