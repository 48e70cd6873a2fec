// ABOUTME: Export and import functionality for journey data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and validated, date-merged imports.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/harperreed/journey/internal/models"
	"github.com/harperreed/journey/internal/scoring"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for journey data.
type ExportData struct {
	Version       string                  `json:"version"`
	ExportedAt    time.Time               `json:"exported_at"`
	Tool          string                  `json:"tool"`
	JourneyStart  string                  `json:"journey_start,omitempty"`
	Checkins      []*models.CheckinRecord `json:"checkins"`
	SurveyAnswers []*models.SurveyAnswer  `json:"survey_answers"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return CollectExportData(d)
}

// ImportData merges an export into the database.
func (d *DB) ImportData(data *ExportData) error {
	return ImportRecords(d, data)
}

// CollectExportData reads every check-in and survey answer from a repository.
// Backends use it to implement GetAllData.
func CollectExportData(repo Repository) (*ExportData, error) {
	checkins, err := repo.ListCheckins(nil)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}

	answers, err := repo.ListSurveyAnswers()
	if err != nil {
		return nil, fmt.Errorf("list survey answers: %w", err)
	}

	return &ExportData{
		Version:       ExportVersion,
		ExportedAt:    time.Now().UTC(),
		Tool:          "journey",
		Checkins:      checkins,
		SurveyAnswers: answers,
	}, nil
}

// ImportRecords validates an export and writes it through repo.
// Check-ins are merged by date: an imported record replaces a stored one for the same day,
// and a later entry in the export wins over an earlier one.
// Nothing is written when any record is malformed.
func ImportRecords(repo Repository, data *ExportData) error {
	if data == nil {
		return errors.New("import: no data")
	}

	for _, r := range data.Checkins {
		if err := scoring.ValidateRecord(r); err != nil {
			return fmt.Errorf("import checkin: %w", err)
		}
	}
	for _, a := range data.SurveyAnswers {
		if err := scoring.ValidateAnswer(a); err != nil {
			return fmt.Errorf("import survey answer: %w", err)
		}
	}

	for _, r := range scoring.MergeByDate(nil, data.Checkins) {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
		if err := repo.UpsertCheckin(r); err != nil {
			return fmt.Errorf("import checkin %s: %w", r.Date, err)
		}
	}

	for _, a := range data.SurveyAnswers {
		if a.AnsweredAt.IsZero() {
			a.AnsweredAt = time.Now().UTC()
		}
		if err := repo.SaveSurveyAnswer(a); err != nil {
			return fmt.Errorf("import survey answer %s: %w", a.Key(), err)
		}
	}

	return nil
}

// exportWithStart loads the export and stamps the journey start when known.
func exportWithStart(repo Repository, journeyStart *civil.Date) (*ExportData, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	if journeyStart != nil {
		data.JourneyStart = journeyStart.String()
	}
	return data, nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository, journeyStart *civil.Date) ([]byte, error) {
	data, err := exportWithStart(repo, journeyStart)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, raw []byte) (*ExportData, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if err := repo.ImportData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

type yamlExport struct {
	Version       string        `yaml:"version"`
	ExportedAt    string        `yaml:"exported_at"`
	Tool          string        `yaml:"tool"`
	JourneyStart  string        `yaml:"journey_start,omitempty"`
	Checkins      []yamlCheckin `yaml:"checkins"`
	SurveyAnswers []yamlAnswer  `yaml:"survey_answers"`
}

type yamlCheckin struct {
	ID        string `yaml:"id"`
	Date      string `yaml:"date"`
	Positive  int    `yaml:"positive_yes_count"`
	Negative  int    `yaml:"negative_yes_count"`
	Score     int    `yaml:"daily_score"`
	Source    string `yaml:"source"`
	CreatedAt string `yaml:"created_at"`
}

type yamlAnswer struct {
	Section    int    `yaml:"section"`
	Question   int    `yaml:"question"`
	Value      string `yaml:"value"`
	AnsweredAt string `yaml:"answered_at"`
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository, journeyStart *civil.Date) ([]byte, error) {
	data, err := exportWithStart(repo, journeyStart)
	if err != nil {
		return nil, err
	}

	out := yamlExport{
		Version:       data.Version,
		ExportedAt:    data.ExportedAt.Format(time.RFC3339),
		Tool:          data.Tool,
		JourneyStart:  data.JourneyStart,
		Checkins:      make([]yamlCheckin, 0, len(data.Checkins)),
		SurveyAnswers: make([]yamlAnswer, 0, len(data.SurveyAnswers)),
	}
	for _, r := range data.Checkins {
		out.Checkins = append(out.Checkins, yamlCheckin{
			ID:        r.ID.String(),
			Date:      r.Date.String(),
			Positive:  r.PositiveYesCount,
			Negative:  r.NegativeYesCount,
			Score:     r.DailyScore,
			Source:    string(r.Source),
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	for _, a := range data.SurveyAnswers {
		out.SurveyAnswers = append(out.SurveyAnswers, yamlAnswer{
			Section:    a.SectionIndex,
			Question:   a.QuestionIndex,
			Value:      string(a.Value),
			AnsweredAt: a.AnsweredAt.UTC().Format(time.RFC3339Nano),
		})
	}

	return yaml.Marshal(out)
}

// ImportYAML imports data from YAML bytes produced by ExportYAML.
func ImportYAML(repo Repository, raw []byte) (*ExportData, error) {
	var in yamlExport
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}

	data := &ExportData{
		Version:      in.Version,
		Tool:         in.Tool,
		JourneyStart: in.JourneyStart,
	}
	data.ExportedAt, _ = time.Parse(time.RFC3339, in.ExportedAt)

	for _, c := range in.Checkins {
		date, err := civil.ParseDate(c.Date)
		if err != nil {
			return nil, &scoring.MalformedRecordError{Field: "date", Reason: fmt.Sprintf("unparseable date %q", c.Date)}
		}
		id, _ := uuid.Parse(c.ID)
		createdAt, _ := time.Parse(time.RFC3339Nano, c.CreatedAt)
		data.Checkins = append(data.Checkins, &models.CheckinRecord{
			ID:               id,
			Date:             date,
			PositiveYesCount: c.Positive,
			NegativeYesCount: c.Negative,
			DailyScore:       c.Score,
			Source:           models.Source(c.Source),
			CreatedAt:        createdAt,
		})
	}
	for _, a := range in.SurveyAnswers {
		answeredAt, _ := time.Parse(time.RFC3339Nano, a.AnsweredAt)
		data.SurveyAnswers = append(data.SurveyAnswers, &models.SurveyAnswer{
			SectionIndex:  a.Section,
			QuestionIndex: a.Question,
			Value:         models.LikertValue(a.Value),
			AnsweredAt:    answeredAt,
		})
	}

	if err := repo.ImportData(data); err != nil {
		return nil, err
	}
	return data, nil
}

// ExportMarkdown renders the journey as a Markdown report: the dense series from
// journeyStart through the latest check-in, then the survey domain strengths.
// When since is set, days before it are left out of the table but still count toward the cumulative.
func ExportMarkdown(repo Repository, journeyStart civil.Date, since *civil.Date) (string, error) {
	checkins, err := repo.ListCheckins(nil)
	if err != nil {
		return "", err
	}
	answers, err := repo.ListSurveyAnswers()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Journey Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Journey start: %s\n\n", journeyStart))

	sb.WriteString("## Daily Scores\n\n")
	latest, ok := scoring.LatestDate(checkins)
	if !ok {
		sb.WriteString("No check-ins recorded.\n\n")
	} else {
		points := scoring.SeriesThrough(scoring.BuildDenseSeries(journeyStart, checkins), latest)
		sb.WriteString("| Day | Date | Score | Cumulative |\n")
		sb.WriteString("|-----|------|-------|------------|\n")
		for _, p := range points {
			if since != nil && p.Date.Before(*since) {
				continue
			}
			score := "-"
			if p.HasCheckin {
				score = fmt.Sprintf("%+d", p.Score)
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %d |\n", p.DayNumber, p.Date, score, p.Cumulative))
		}
		sb.WriteString("\n")
	}

	survey, err := scoring.SurveyFromAnswers(answers)
	if err != nil {
		return "", err
	}
	sb.WriteString("## Domain Strengths\n\n")
	sb.WriteString("| Domain | Strength |\n")
	sb.WriteString("|--------|----------|\n")
	for _, ds := range survey.DomainStrengths() {
		sb.WriteString(fmt.Sprintf("| %s | %d%% |\n", ds.Label, ds.Percentage))
	}

	return sb.String(), nil
}
