// ABOUTME: MCP tool implementations for the journey tracker.
// ABOUTME: Check-ins, anchor lookup, the dense series, survey answers, and resets.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/models"
	"github.com/harperreed/journey/internal/scoring"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_checkin",
		Description: "Record today's belief check-in from the prompt IDs answered yes",
	}, s.handleRecordCheckin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "next_anchor",
		Description: "Show the earliest date a check-in may be written for and the suggested date",
	}, s.handleNextAnchor)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_series",
		Description: "Get the day-by-day score and cumulative total for the journey year",
	}, s.handleGetSeries)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_survey_answer",
		Description: "Answer one self-assessment question on the five-point agreement scale",
	}, s.handleRecordSurveyAnswer)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_strengths",
		Description: "Get the 0-100 strength for each self-assessment domain",
	}, s.handleGetStrengths)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_prompts",
		Description: "List the daily belief prompts with their IDs and categories",
	}, s.handleListPrompts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_checkins",
		Description: "Delete check-ins, either all of them or only generated demo data",
	}, s.handleResetCheckins)
}

// Tool input/output types

type emptyInput struct{}

type recordCheckinInput struct {
	Yes  []string `json:"yes" jsonschema:"IDs of the prompts answered yes; every other prompt counts as no"`
	Date string   `json:"date,omitempty" jsonschema:"Check-in date as YYYY-MM-DD; defaults to the suggested date"`
}

type checkinOutput struct {
	Date             string `json:"date"`
	DayNumber        int    `json:"day_number"`
	PositiveYesCount int    `json:"positive_yes_count"`
	NegativeYesCount int    `json:"negative_yes_count"`
	DailyScore       int    `json:"daily_score"`
	Message          string `json:"message"`
}

type anchorOutput struct {
	JourneyStart string `json:"journey_start"`
	Candidate    string `json:"candidate"`
	Suggested    string `json:"suggested"`
	Today        string `json:"today"`
}

type getSeriesInput struct {
	All bool `json:"all,omitempty" jsonschema:"Return all 365 days instead of stopping at the latest check-in"`
}

type pointOutput struct {
	Date       string  `json:"date"`
	DayNumber  int     `json:"day_number"`
	Score      int     `json:"score"`
	Cumulative int     `json:"cumulative"`
	Display    float64 `json:"display"`
	HasCheckin bool    `json:"has_checkin"`
}

type seriesOutput struct {
	JourneyStart string        `json:"journey_start"`
	Checkins     int           `json:"checkins"`
	Cumulative   int           `json:"cumulative"`
	Points       []pointOutput `json:"points"`
}

type surveyAnswerInput struct {
	Section  int    `json:"section" jsonschema:"Section index from 0 (Self-Worth) to 5 (Vitality)"`
	Question int    `json:"question" jsonschema:"Question index within the section from 0 to 4"`
	Value    string `json:"value" jsonschema:"One of strongly_agree agree unsure disagree strongly_disagree"`
}

type surveyAnswerOutput struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Points  int    `json:"points"`
	Message string `json:"message"`
}

type strengthsOutput struct {
	Answered  int                     `json:"answered"`
	Total     int                     `json:"total"`
	Strengths []models.DomainStrength `json:"strengths"`
}

type promptsOutput struct {
	Prompts []models.BeliefPrompt `json:"prompts"`
}

type resetInput struct {
	DemoOnly bool `json:"demo_only,omitempty" jsonschema:"Only delete check-ins created by the demo generator"`
}

type resetOutput struct {
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleRecordCheckin(ctx context.Context, req *mcp.CallToolRequest, input recordCheckinInput) (*mcp.CallToolResult, checkinOutput, error) {
	set := &models.DailyResponseSet{Answers: make(map[string]bool)}
	if input.Date != "" {
		d, err := civil.ParseDate(input.Date)
		if err != nil {
			return nil, checkinOutput{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", input.Date)
		}
		set.Date = d
	}

	for _, id := range input.Yes {
		id = strings.TrimSpace(id)
		if _, ok := models.PromptByID(s.svc.Prompts(), id); !ok {
			return nil, checkinOutput{}, fmt.Errorf("unknown prompt: %s", id)
		}
		set.Answer(id, true)
	}

	r, err := s.svc.RecordCheckin(set, models.SourceUser)
	if err != nil {
		return nil, checkinOutput{}, fmt.Errorf("failed to record check-in: %w", err)
	}

	day := scoring.DayNumber(s.svc.JourneyStart(), r.Date)
	return nil, checkinOutput{
		Date:             r.Date.String(),
		DayNumber:        day,
		PositiveYesCount: r.PositiveYesCount,
		NegativeYesCount: r.NegativeYesCount,
		DailyScore:       r.DailyScore,
		Message:          fmt.Sprintf("Recorded day %d (%s): score %+d", day, r.Date, r.DailyScore),
	}, nil
}

func (s *Server) handleNextAnchor(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, anchorOutput, error) {
	anchor, err := s.svc.Anchor()
	if err != nil {
		return nil, anchorOutput{}, fmt.Errorf("failed to resolve anchor: %w", err)
	}

	return nil, anchorOutput{
		JourneyStart: s.svc.JourneyStart().String(),
		Candidate:    anchor.Candidate.String(),
		Suggested:    anchor.Suggested.String(),
		Today:        s.svc.Today().String(),
	}, nil
}

func (s *Server) handleGetSeries(ctx context.Context, req *mcp.CallToolRequest, input getSeriesInput) (*mcp.CallToolResult, seriesOutput, error) {
	out, err := s.series(input.All)
	if err != nil {
		return nil, seriesOutput{}, err
	}
	return nil, out, nil
}

// series builds the series payload shared by the tool and the resource.
func (s *Server) series(all bool) (seriesOutput, error) {
	var points []models.DensePoint
	var err error
	if all {
		points, err = s.svc.Series()
	} else {
		points, err = s.svc.SeriesToDate()
	}
	if err != nil {
		return seriesOutput{}, fmt.Errorf("failed to build series: %w", err)
	}

	out := seriesOutput{
		JourneyStart: s.svc.JourneyStart().String(),
		Points:       make([]pointOutput, 0, len(points)),
	}
	for _, p := range points {
		if p.HasCheckin {
			out.Checkins++
		}
		out.Cumulative = p.Cumulative
		out.Points = append(out.Points, pointOutput{
			Date:       p.Date.String(),
			DayNumber:  p.DayNumber,
			Score:      p.Score,
			Cumulative: p.Cumulative,
			Display:    scoring.DisplayCumulative(p.Cumulative, s.band),
			HasCheckin: p.HasCheckin,
		})
	}
	return out, nil
}

func (s *Server) handleRecordSurveyAnswer(ctx context.Context, req *mcp.CallToolRequest, input surveyAnswerInput) (*mcp.CallToolResult, surveyAnswerOutput, error) {
	a, err := s.svc.RecordSurveyAnswer(input.Section, input.Question, models.LikertValue(input.Value))
	if err != nil {
		return nil, surveyAnswerOutput{}, fmt.Errorf("failed to record answer: %w", err)
	}

	section := models.SurveySections[a.SectionIndex]
	return nil, surveyAnswerOutput{
		Key:     a.Key(),
		Value:   string(a.Value),
		Points:  models.LikertPoints[a.Value],
		Message: fmt.Sprintf("%s Q%d: %s", section.Title, a.QuestionIndex+1, a.Value),
	}, nil
}

func (s *Server) handleGetStrengths(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, strengthsOutput, error) {
	out, err := s.strengths()
	if err != nil {
		return nil, strengthsOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) strengths() (strengthsOutput, error) {
	survey, err := s.svc.Survey()
	if err != nil {
		return strengthsOutput{}, fmt.Errorf("failed to load survey: %w", err)
	}
	return strengthsOutput{
		Answered:  survey.Len(),
		Total:     len(models.SurveySections) * models.QuestionsPerSection,
		Strengths: survey.DomainStrengths(),
	}, nil
}

func (s *Server) handleListPrompts(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, promptsOutput, error) {
	return nil, promptsOutput{Prompts: s.svc.Prompts()}, nil
}

func (s *Server) handleResetCheckins(ctx context.Context, req *mcp.CallToolRequest, input resetInput) (*mcp.CallToolResult, resetOutput, error) {
	n, err := s.svc.Reset(input.DemoOnly)
	if err != nil {
		return nil, resetOutput{}, fmt.Errorf("failed to reset: %w", err)
	}

	what := "check-ins"
	if input.DemoOnly {
		what = "demo check-ins"
	}
	return nil, resetOutput{
		Deleted: n,
		Message: fmt.Sprintf("Deleted %d %s", n, what),
	}, nil
}
