// ABOUTME: CLI commands for the six-domain Likert self-assessment.
// ABOUTME: Lists questions, records answers, and prints domain strengths.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/journey/internal/models"
	"github.com/spf13/cobra"
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Six-domain self-assessment",
	Long: `Six-domain self-assessment.

Each domain has five statements answered on a five-point scale:

  strongly_agree (sa)      +2
  agree (a)                +1
  unsure (u)                0
  disagree (d)             -1
  strongly_disagree (sd)   -2

A domain's strength is round((mean + 2) / 4 * 100), from 0 to 100.
Unanswered questions count as unsure.

EXAMPLES:

  journey survey questions               # List domains and statements
  journey survey answer 1 3 agree        # Domain 1, statement 3
  journey survey answer Purpose 2 sd     # Domain by title
  journey survey strengths               # Strength per domain`,
}

var surveyQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List survey domains and statements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint).SprintFunc()
		for i, section := range models.SurveySections {
			color.New(color.Bold).Printf("%d. %s\n", i+1, section.Title)
			fmt.Println(faint("   " + section.Subtitle))
			for j, q := range section.Questions {
				fmt.Printf("   %d) %s\n", j+1, q)
			}
			fmt.Println()
		}
		return nil
	},
}

var surveyAnswerCmd = &cobra.Command{
	Use:   "answer <section> <question> <value>",
	Short: "Answer one survey statement",
	Long: `Answer one survey statement.

<section> is a domain number (1-6) or title.
<question> is a statement number (1-5).
<value> is strongly_agree, agree, unsure, disagree, strongly_disagree
        or sa, a, u, d, sd.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, err := parseSection(args[0])
		if err != nil {
			return err
		}
		question, err := parseQuestion(args[1])
		if err != nil {
			return err
		}
		value, err := parseLikert(args[2])
		if err != nil {
			return err
		}

		a, err := svc.RecordSurveyAnswer(section, question, value)
		if err != nil {
			return err
		}

		color.Green("✓ %s %d: %s", models.SurveySections[a.SectionIndex].Title, a.QuestionIndex+1, a.Value)
		return nil
	},
}

var surveyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show recorded survey answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		survey, err := svc.Survey()
		if err != nil {
			return err
		}

		faint := color.New(color.Faint).SprintFunc()
		for i, section := range models.SurveySections {
			color.New(color.Bold).Printf("%d. %s\n", i+1, section.Title)
			for j, q := range section.Questions {
				answer := faint("unanswered")
				if v, ok := survey.Value(i, j); ok {
					answer = string(v)
				}
				fmt.Printf("   %d) %s  %s\n", j+1, padRight(answer, 17), q)
			}
		}
		fmt.Printf("\n%d of %d answered\n", survey.Len(), len(models.SurveySections)*models.QuestionsPerSection)
		return nil
	},
}

var surveyStrengthsCmd = &cobra.Command{
	Use:   "strengths",
	Short: "Show domain strengths (0-100)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		strengths, err := svc.Strengths()
		if err != nil {
			return err
		}
		for _, s := range strengths {
			filled := s.Percentage / 5
			bar := color.CyanString(strings.Repeat("█", filled)) + strings.Repeat("░", 20-filled)
			fmt.Printf("%s %s %3d%%\n", padRight(s.Label, 14), bar, s.Percentage)
		}
		return nil
	},
}

var surveyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all survey answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := svc.ClearSurvey(); err != nil {
			return err
		}
		color.Green("✓ Survey answers cleared")
		return nil
	},
}

// parseSection accepts a 1-based domain number or a case-insensitive title.
func parseSection(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(models.SurveySections) {
			return 0, fmt.Errorf("section must be 1-%d, got %d", len(models.SurveySections), n)
		}
		return n - 1, nil
	}
	for i, section := range models.SurveySections {
		if strings.EqualFold(section.Title, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown section: %s", s)
}

// parseQuestion accepts a 1-based statement number.
func parseQuestion(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > models.QuestionsPerSection {
		return 0, fmt.Errorf("question must be 1-%d, got %s", models.QuestionsPerSection, s)
	}
	return n - 1, nil
}

var likertAliases = map[string]models.LikertValue{
	"sa": models.StronglyAgree,
	"a":  models.Agree,
	"u":  models.Unsure,
	"d":  models.Disagree,
	"sd": models.StronglyDisagree,
}

// parseLikert accepts a full agreement level or its short alias.
func parseLikert(s string) (models.LikertValue, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if v, ok := likertAliases[s]; ok {
		return v, nil
	}
	if models.IsValidLikertValue(s) {
		return models.LikertValue(s), nil
	}
	return "", fmt.Errorf("unknown answer: %s (use sa, a, u, d, sd)", s)
}

func init() {
	surveyCmd.AddCommand(surveyQuestionsCmd)
	surveyCmd.AddCommand(surveyAnswerCmd)
	surveyCmd.AddCommand(surveyShowCmd)
	surveyCmd.AddCommand(surveyStrengthsCmd)
	surveyCmd.AddCommand(surveyClearCmd)
	rootCmd.AddCommand(surveyCmd)
}
