// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Drives the handlers directly against a SQLite-backed journey service.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/journey"
	"github.com/harperreed/journey/internal/models"
	"github.com/harperreed/journey/internal/scoring"
	"github.com/harperreed/journey/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

var journeyStart = civil.Date{Year: 2025, Month: time.January, Day: 1}

// setupTestServer creates a server over a temp database with the clock pinned to today.
func setupTestServer(t *testing.T, today civil.Date) *Server {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "journey.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := func() time.Time {
		return time.Date(today.Year, today.Month, today.Day, 9, 0, 0, 0, time.UTC)
	}
	svc := journey.New(db, journeyStart, journey.WithClock(clock))

	server, err := NewServer(svc, 0)
	require.NoError(t, err)
	return server
}

func readResource(t *testing.T, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) map[string]any {
	t.Helper()
	res, err := handler(context.Background(), &mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &out))
	return out
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t, journeyStart)
	require.NotNil(t, server.mcpServer)
	require.NotNil(t, server.svc)
	require.Equal(t, scoring.DefaultDisplayBand, server.band)
}

func TestHandleRecordCheckin(t *testing.T) {
	server := setupTestServer(t, journeyStart)
	ctx := context.Background()

	_, out, err := server.handleRecordCheckin(ctx, &mcp.CallToolRequest{}, recordCheckinInput{
		Yes: []string{"capable", "growth", "alone"},
	})
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", out.Date)
	require.Equal(t, 1, out.DayNumber)
	require.Equal(t, 2, out.PositiveYesCount)
	require.Equal(t, 1, out.NegativeYesCount)
	require.Equal(t, 1, out.DailyScore)
	require.Contains(t, out.Message, "day 1")
}

func TestHandleRecordCheckinErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     recordCheckinInput
		errSubstr string
	}{
		{"unknown prompt", recordCheckinInput{Yes: []string{"nope"}}, "unknown prompt"},
		{"bad date", recordCheckinInput{Date: "01/02/2025"}, "invalid date"},
		{"before start", recordCheckinInput{Date: "2024-12-31"}, "out-of-order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupTestServer(t, journeyStart)
			_, _, err := server.handleRecordCheckin(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestHandleRecordCheckinOutOfOrderIsTyped(t *testing.T) {
	server := setupTestServer(t, journeyStart.AddDays(20))
	ctx := context.Background()

	_, _, err := server.handleRecordCheckin(ctx, &mcp.CallToolRequest{}, recordCheckinInput{Date: "2025-01-10"})
	require.NoError(t, err)

	_, _, err = server.handleRecordCheckin(ctx, &mcp.CallToolRequest{}, recordCheckinInput{Date: "2025-01-05"})
	var ooo *scoring.OutOfOrderWriteError
	require.True(t, errors.As(err, &ooo))
	require.Equal(t, "2025-01-11", ooo.Earliest.String())
}

func TestHandleNextAnchor(t *testing.T) {
	today := civil.Date{Year: 2025, Month: time.March, Day: 1}
	server := setupTestServer(t, today)
	ctx := context.Background()

	_, out, err := server.handleNextAnchor(ctx, &mcp.CallToolRequest{}, emptyInput{})
	require.NoError(t, err)
	require.Equal(t, "2025-01-01", out.Candidate)
	require.Equal(t, "2025-03-01", out.Suggested)
	require.Equal(t, "2025-03-01", out.Today)
	require.Equal(t, "2025-01-01", out.JourneyStart)
}

func TestHandleGetSeries(t *testing.T) {
	server := setupTestServer(t, journeyStart.AddDays(10))
	ctx := context.Background()

	_, empty, err := server.handleGetSeries(ctx, &mcp.CallToolRequest{}, getSeriesInput{})
	require.NoError(t, err)
	require.Empty(t, empty.Points)
	require.NotNil(t, empty.Points)

	_, _, err = server.handleRecordCheckin(ctx, &mcp.CallToolRequest{}, recordCheckinInput{
		Date: "2025-01-01", Yes: []string{"capable", "worthy", "growth"},
	})
	require.NoError(t, err)
	_, _, err = server.handleRecordCheckin(ctx, &mcp.CallToolRequest{}, recordCheckinInput{
		Date: "2025-01-03", Yes: []string{"not-enough", "imposter", "control", "alone", "scarcity"},
	})
	require.NoError(t, err)

	_, out, err := server.handleGetSeries(ctx, &mcp.CallToolRequest{}, getSeriesInput{})
	require.NoError(t, err)
	require.Len(t, out.Points, 3)
	require.Equal(t, 2, out.Checkins)
	require.Equal(t, -2, out.Cumulative)
	require.False(t, out.Points[1].HasCheckin)
	require.Equal(t, 3, out.Points[1].Cumulative)

	_, full, err := server.handleGetSeries(ctx, &mcp.CallToolRequest{}, getSeriesInput{All: true})
	require.NoError(t, err)
	require.Len(t, full.Points, scoring.SeriesLength)
	require.Equal(t, -2, full.Points[364].Cumulative)
}

func TestSeriesDisplayClamp(t *testing.T) {
	server := setupTestServer(t, journeyStart.AddDays(30))
	server.band = 4
	ctx := context.Background()

	for _, d := range []string{"2025-01-01", "2025-01-02"} {
		_, _, err := server.handleRecordCheckin(ctx, &mcp.CallToolRequest{}, recordCheckinInput{
			Date: d, Yes: []string{"capable", "worthy", "growth"},
		})
		require.NoError(t, err)
	}

	_, out, err := server.handleGetSeries(ctx, &mcp.CallToolRequest{}, getSeriesInput{})
	require.NoError(t, err)
	require.Equal(t, 6, out.Points[1].Cumulative)
	require.Equal(t, 4.0, out.Points[1].Display)
}

func TestHandleRecordSurveyAnswer(t *testing.T) {
	server := setupTestServer(t, journeyStart)
	ctx := context.Background()

	_, out, err := server.handleRecordSurveyAnswer(ctx, &mcp.CallToolRequest{}, surveyAnswerInput{
		Section: 5, Question: 4, Value: "strongly_disagree",
	})
	require.NoError(t, err)
	require.Equal(t, "5_4", out.Key)
	require.Equal(t, -2, out.Points)
	require.Contains(t, out.Message, "Vitality Q5")

	_, _, err = server.handleRecordSurveyAnswer(ctx, &mcp.CallToolRequest{}, surveyAnswerInput{
		Section: 0, Question: 0, Value: "kinda",
	})
	var malformed *scoring.MalformedRecordError
	require.True(t, errors.As(err, &malformed))
}

func TestHandleGetStrengths(t *testing.T) {
	server := setupTestServer(t, journeyStart)
	ctx := context.Background()

	_, out, err := server.handleGetStrengths(ctx, &mcp.CallToolRequest{}, emptyInput{})
	require.NoError(t, err)
	require.Zero(t, out.Answered)
	require.Equal(t, 30, out.Total)
	require.Len(t, out.Strengths, 6)
	for _, ds := range out.Strengths {
		require.Equal(t, 50, ds.Percentage, "unanswered sections sit at the midpoint")
	}

	for q := range models.QuestionsPerSection {
		_, _, err := server.handleRecordSurveyAnswer(ctx, &mcp.CallToolRequest{}, surveyAnswerInput{
			Section: 2, Question: q, Value: "strongly_agree",
		})
		require.NoError(t, err)
	}

	_, out, err = server.handleGetStrengths(ctx, &mcp.CallToolRequest{}, emptyInput{})
	require.NoError(t, err)
	require.Equal(t, 5, out.Answered)
	require.Equal(t, models.DomainStrength{Label: "Relationships", Percentage: 100}, out.Strengths[2])
}

func TestHandleListPrompts(t *testing.T) {
	server := setupTestServer(t, journeyStart)

	_, out, err := server.handleListPrompts(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	require.NoError(t, err)
	require.Len(t, out.Prompts, len(models.DefaultPrompts))
}

func TestHandleResetCheckins(t *testing.T) {
	server := setupTestServer(t, journeyStart.AddDays(30))
	ctx := context.Background()

	_, err := server.svc.GenerateDemo(3, 1)
	require.NoError(t, err)
	_, _, err = server.handleRecordCheckin(ctx, &mcp.CallToolRequest{}, recordCheckinInput{Date: "2025-01-10"})
	require.NoError(t, err)

	_, out, err := server.handleResetCheckins(ctx, &mcp.CallToolRequest{}, resetInput{DemoOnly: true})
	require.NoError(t, err)
	require.Equal(t, 3, out.Deleted)
	require.Contains(t, out.Message, "demo")

	_, out, err = server.handleResetCheckins(ctx, &mcp.CallToolRequest{}, resetInput{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Deleted)
}

func TestHandleSeriesResource(t *testing.T) {
	server := setupTestServer(t, journeyStart)
	_, _, err := server.handleRecordCheckin(context.Background(), &mcp.CallToolRequest{}, recordCheckinInput{Yes: []string{"capable"}})
	require.NoError(t, err)

	out := readResource(t, server.handleSeriesResource)
	require.Equal(t, "2025-01-01", out["journey_start"])
	require.Len(t, out["points"], 1)
}

func TestHandleStrengthsResource(t *testing.T) {
	server := setupTestServer(t, journeyStart)

	out := readResource(t, server.handleStrengthsResource)
	require.Len(t, out["strengths"], 6)
}

func TestHandleTodayResource(t *testing.T) {
	server := setupTestServer(t, journeyStart)

	out := readResource(t, server.handleTodayResource)
	require.Equal(t, "2025-01-01", out["date"])
	require.Equal(t, false, out["checked_in"])
	require.Equal(t, true, out["can_check_in"])

	_, _, err := server.handleRecordCheckin(context.Background(), &mcp.CallToolRequest{}, recordCheckinInput{Yes: []string{"worthy"}})
	require.NoError(t, err)

	out = readResource(t, server.handleTodayResource)
	require.Equal(t, true, out["checked_in"])
	require.Equal(t, false, out["can_check_in"])
	require.Equal(t, "2025-01-02", out["candidate"])
}
