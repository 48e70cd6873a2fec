// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Tests answer parsing, bar rendering, command flags, and end-to-end check-ins.
package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/models"
	"github.com/harperreed/journey/internal/scoring"
	"github.com/harperreed/journey/internal/storage"
)

func TestParseYesList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "capable", want: []string{"capable"}},
		{name: "several with spaces", input: "capable, imposter ,growth", want: []string{"capable", "imposter", "growth"}},
		{name: "trailing comma", input: "worthy,", want: []string{"worthy"}},
		{name: "unknown id", input: "capable,flying", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yes, err := parseYesList(models.DefaultPrompts, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseYesList(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseYesList(%q) unexpected error: %v", tt.input, err)
			}
			if len(yes) != len(tt.want) {
				t.Errorf("parseYesList(%q) returned %d IDs, want %d", tt.input, len(yes), len(tt.want))
			}
			for _, id := range tt.want {
				if !yes[id] {
					t.Errorf("parseYesList(%q) missing %q", tt.input, id)
				}
			}
		})
	}
}

func TestAskResponses(t *testing.T) {
	prompts := models.DefaultPrompts[:3]
	in := strings.NewReader("y\nNo\n YES \n")
	var out bytes.Buffer

	answers, err := askResponses(prompts, in, &out)
	if err != nil {
		t.Fatalf("askResponses failed: %v", err)
	}

	want := map[string]bool{"capable": true, "worthy": false, "growth": true}
	for id, v := range want {
		if answers[id] != v {
			t.Errorf("answers[%q] = %v, want %v", id, answers[id], v)
		}
	}
	if !strings.Contains(out.String(), prompts[0].Text) {
		t.Error("Expected prompt text in output")
	}
}

func TestAskResponsesShortInput(t *testing.T) {
	_, err := askResponses(models.DefaultPrompts, strings.NewReader("y\n"), &bytes.Buffer{})
	if err == nil {
		t.Error("Expected error when input ends early")
	}
}

func TestParseSection(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"6", 5, false},
		{"Purpose", 3, false},
		{"self-worth", 0, false},
		{"0", 0, true},
		{"7", 0, true},
		{"Happiness", 0, true},
	}

	for _, tt := range tests {
		got, err := parseSection(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseSection(%q) expected error, got %d", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSection(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSection(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseQuestion(t *testing.T) {
	if got, err := parseQuestion("5"); err != nil || got != 4 {
		t.Errorf("parseQuestion(5) = %d, %v; want 4, nil", got, err)
	}
	for _, bad := range []string{"0", "6", "two", ""} {
		if _, err := parseQuestion(bad); err == nil {
			t.Errorf("parseQuestion(%q) expected error", bad)
		}
	}
}

func TestParseLikert(t *testing.T) {
	tests := []struct {
		input string
		want  models.LikertValue
	}{
		{"sa", models.StronglyAgree},
		{"A", models.Agree},
		{"u", models.Unsure},
		{"disagree", models.Disagree},
		{"strongly-disagree", models.StronglyDisagree},
		{"Strongly_Agree", models.StronglyAgree},
	}

	for _, tt := range tests {
		got, err := parseLikert(tt.input)
		if err != nil {
			t.Errorf("parseLikert(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLikert(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := parseLikert("maybe"); err == nil {
		t.Error("Expected error for unknown answer")
	}
}

func TestRenderBar(t *testing.T) {
	zero := renderBar(0, 36.5, 10)
	if zero != strings.Repeat(" ", 10)+"|" {
		t.Errorf("renderBar(0) = %q", zero)
	}

	full := renderBar(36.5, 36.5, 10)
	if strings.Count(full, "█") != 10 {
		t.Errorf("Expected 10 cells at the band edge, got %q", full)
	}

	neg := renderBar(-36.5, 36.5, 10)
	if !strings.HasSuffix(neg, "|") || strings.Count(neg, "█") != 10 {
		t.Errorf("Expected a full bar left of the axis, got %q", neg)
	}

	if got := renderBar(5, 0, 10); got != "|" {
		t.Errorf("renderBar with zero band = %q, want |", got)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"abc", 5, "abc  "},
		{"abcde", 5, "abcde"},
		{"abcdef", 3, "abcdef"},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := confirm(strings.NewReader(tt.input), &bytes.Buffer{}, "Continue?"); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsYAMLFile(t *testing.T) {
	for name, want := range map[string]bool{
		"backup.yaml": true,
		"backup.YML":  true,
		"backup.json": false,
		"backup":      false,
	} {
		if got := isYAMLFile(name); got != want {
			t.Errorf("isYAMLFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "journey" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "journey")
	}
	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}
	if rootCmd.PersistentFlags().Lookup("verbose") == nil {
		t.Error("Expected --verbose flag")
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"checkin", "anchor", "series", "prompts", "survey", "demo", "reset", "export", "import", "migrate", "mcp", "sync", "install-skill"}
	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("Expected %s command to be registered", name)
		}
	}
}

func TestCheckinCmdFlags(t *testing.T) {
	for _, name := range []string{"yes", "date"} {
		if checkinCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected --%s flag on checkin", name)
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	want := map[string]bool{"json": true, "yaml": true, "markdown": true}
	if len(exportCmd.ValidArgs) != len(want) {
		t.Errorf("Expected %d valid args, got %d", len(want), len(exportCmd.ValidArgs))
	}
	for _, arg := range exportCmd.ValidArgs {
		if !want[arg] {
			t.Errorf("Unexpected valid arg %q", arg)
		}
	}
}

func TestNeedsStorage(t *testing.T) {
	if !needsStorage(checkinCmd) {
		t.Error("checkin should open storage")
	}
	if !needsStorage(resetCmd) {
		t.Error("reset should open storage")
	}
	if needsStorage(installSkillCmd) {
		t.Error("install-skill should not open storage")
	}
	if needsStorage(migrateCmd) {
		t.Error("migrate should not open storage")
	}
	if needsStorage(syncStatusCmd) || needsStorage(syncResetCmd) {
		t.Error("sync subcommands should not open storage")
	}
}

// setupTestCLI points config and data at temp directories and pins the journey start.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	configHome := t.TempDir()
	dataHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("JOURNEY_BACKEND", "")

	configDir := filepath.Join(configHome, "journey")
	if err := os.MkdirAll(configDir, 0750); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	cfgJSON := []byte(`{"journey_start": "2025-01-01"}`)
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), cfgJSON, 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	checkinYes = ""
	checkinDate = ""

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	return filepath.Join(dataHome, "journey", "journey.db")
}

// runCLI executes the root command with args and closes storage afterwards.
func runCLI(args ...string) error {
	rootCmd.SetArgs(args)
	return Execute()
}

func openTestDB(t *testing.T, path string) *storage.DB {
	t.Helper()
	db, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCheckinCmdWithDB(t *testing.T) {
	dbPath := setupTestCLI(t)

	if err := runCLI("checkin", "--yes", "capable,growth,imposter", "--date", "2025-01-01"); err != nil {
		t.Fatalf("checkin command failed: %v", err)
	}

	db := openTestDB(t, dbPath)
	r, err := db.GetCheckin(civil.Date{Year: 2025, Month: 1, Day: 1})
	if err != nil {
		t.Fatalf("GetCheckin failed: %v", err)
	}
	if r.DailyScore != 1 {
		t.Errorf("Expected score +1, got %d", r.DailyScore)
	}
	if r.PositiveYesCount != 2 || r.NegativeYesCount != 1 {
		t.Errorf("Expected counts 2/1, got %d/%d", r.PositiveYesCount, r.NegativeYesCount)
	}
	if r.Source != models.SourceUser {
		t.Errorf("Expected user source, got %s", r.Source)
	}
}

func TestCheckinCmdRejectsBackdated(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI("checkin", "--yes", "capable", "--date", "2025-01-05"); err != nil {
		t.Fatalf("first checkin failed: %v", err)
	}

	err := runCLI("checkin", "--yes", "capable", "--date", "2025-01-03")
	var ooo *scoring.OutOfOrderWriteError
	if !errors.As(err, &ooo) {
		t.Fatalf("Expected OutOfOrderWriteError, got %v", err)
	}
	if ooo.Earliest.String() != "2025-01-06" {
		t.Errorf("Expected earliest 2025-01-06, got %s", ooo.Earliest)
	}
}

func TestCheckinCmdInvalidDate(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI("checkin", "--yes", "", "--date", "01/02/2025"); err == nil {
		t.Error("Expected error for invalid date")
	}
}

func TestSurveyAnswerCmdWithDB(t *testing.T) {
	dbPath := setupTestCLI(t)

	if err := runCLI("survey", "answer", "Purpose", "2", "sa"); err != nil {
		t.Fatalf("survey answer failed: %v", err)
	}

	db := openTestDB(t, dbPath)
	answers, err := db.ListSurveyAnswers()
	if err != nil {
		t.Fatalf("ListSurveyAnswers failed: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("Expected 1 answer, got %d", len(answers))
	}
	if answers[0].SectionIndex != 3 || answers[0].QuestionIndex != 1 || answers[0].Value != models.StronglyAgree {
		t.Errorf("Unexpected answer %+v", answers[0])
	}
}

func TestDemoAndResetCmd(t *testing.T) {
	dbPath := setupTestCLI(t)

	if err := runCLI("demo", "--days", "5", "--seed", "42"); err != nil {
		t.Fatalf("demo failed: %v", err)
	}

	db := openTestDB(t, dbPath)
	records, err := db.ListCheckins(nil)
	if err != nil {
		t.Fatalf("ListCheckins failed: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("Expected 5 demo check-ins, got %d", len(records))
	}
	if records[0].Date.String() != "2025-01-01" || records[4].Date.String() != "2025-01-05" {
		t.Errorf("Expected consecutive days from the journey start, got %s..%s", records[0].Date, records[4].Date)
	}

	if err := runCLI("reset", "--demo", "--yes"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	records, err = db.ListCheckins(nil)
	if err != nil {
		t.Fatalf("ListCheckins failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected demo check-ins removed, %d remain", len(records))
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI("checkin", "--yes", "capable,worthy", "--date", "2025-01-01"); err != nil {
		t.Fatalf("checkin failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "backup.yaml")
	exportOutput = ""
	if err := runCLI("export", "yaml", "-o", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	exportOutput = ""

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !strings.Contains(string(raw), "2025-01-01") {
		t.Error("Expected check-in date in export")
	}

	if err := runCLI("import", out); err != nil {
		t.Fatalf("import failed: %v", err)
	}
}

func TestExportCmdUnknownFormat(t *testing.T) {
	setupTestCLI(t)

	if err := runCLI("export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
