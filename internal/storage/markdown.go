// ABOUTME: MarkdownStore: file-based journey storage with YAML frontmatter.
// ABOUTME: One file per check-in date under checkins/YYYY/MM and a survey.yaml for answers.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/harperreed/journey/internal/models"
	"gopkg.in/yaml.v3"
)

// MarkdownStore provides file-based storage for journey data using markdown files.
type MarkdownStore struct {
	dataDir string
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

func (s *MarkdownStore) checkinsDir() string {
	return filepath.Join(s.dataDir, "checkins")
}

func (s *MarkdownStore) surveyPath() string {
	return filepath.Join(s.dataDir, "survey.yaml")
}

// checkinFilePath returns checkins/YYYY/MM/YYYY-MM-DD.md. The date is the file identity.
func (s *MarkdownStore) checkinFilePath(date civil.Date) string {
	return filepath.Join(s.checkinsDir(),
		fmt.Sprintf("%04d", date.Year),
		fmt.Sprintf("%02d", int(date.Month)),
		date.String()+".md")
}

// checkinFrontmatter holds the YAML frontmatter of a check-in file.
type checkinFrontmatter struct {
	ID               string `yaml:"id"`
	Date             string `yaml:"date"`
	PositiveYesCount int    `yaml:"positive_yes_count"`
	NegativeYesCount int    `yaml:"negative_yes_count"`
	DailyScore       int    `yaml:"daily_score"`
	Source           string `yaml:"source"`
	CreatedAt        string `yaml:"created_at"`
}

func checkinToFrontmatter(r *models.CheckinRecord) checkinFrontmatter {
	return checkinFrontmatter{
		ID:               r.ID.String(),
		Date:             r.Date.String(),
		PositiveYesCount: r.PositiveYesCount,
		NegativeYesCount: r.NegativeYesCount,
		DailyScore:       r.DailyScore,
		Source:           string(r.Source),
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func checkinFromFrontmatter(fm *checkinFrontmatter) (*models.CheckinRecord, error) {
	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("parse checkin ID %q: %w", fm.ID, err)
	}
	date, err := civil.ParseDate(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", fm.Date, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fm.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", fm.CreatedAt, err)
	}

	return &models.CheckinRecord{
		ID:               id,
		Date:             date,
		PositiveYesCount: fm.PositiveYesCount,
		NegativeYesCount: fm.NegativeYesCount,
		DailyScore:       fm.DailyScore,
		Source:           models.Source(fm.Source),
		CreatedAt:        createdAt,
	}, nil
}

// readCheckinFile reads a check-in from a markdown file.
func readCheckinFile(path string) (*models.CheckinRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	header, _ := parseFrontmatter(string(data))
	if header == "" {
		return nil, fmt.Errorf("no frontmatter in %s", path)
	}

	var fm checkinFrontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	return checkinFromFrontmatter(&fm)
}

// checkinBody renders the human-readable part of a check-in file.
func checkinBody(r *models.CheckinRecord) string {
	return fmt.Sprintf("\n# Check-in %s\n\nEmpowering yes: %d\nShadow yes: %d\nScore: %+d\n",
		r.Date, r.PositiveYesCount, r.NegativeYesCount, r.DailyScore)
}

// UpsertCheckin writes the check-in file for its date, replacing any existing one.
func (s *MarkdownStore) UpsertCheckin(r *models.CheckinRecord) error {
	fm := checkinToFrontmatter(r)
	content, err := renderFrontmatter(&fm, checkinBody(r))
	if err != nil {
		return fmt.Errorf("render checkin file: %w", err)
	}
	return atomicWrite(s.checkinFilePath(r.Date), []byte(content))
}

// GetCheckin reads the check-in for a date.
func (s *MarkdownStore) GetCheckin(date civil.Date) (*models.CheckinRecord, error) {
	r, err := readCheckinFile(s.checkinFilePath(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: checkin %s", ErrNotFound, date)
		}
		return nil, err
	}
	return r, nil
}

// walkCheckinFiles walks all check-in markdown files and calls fn for each.
func (s *MarkdownStore) walkCheckinFiles(fn func(path string, r *models.CheckinRecord) error) error {
	dir := s.checkinsDir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		r, err := readCheckinFile(path)
		if err != nil {
			return fmt.Errorf("read checkin file %s: %w", path, err)
		}
		return fn(path, r)
	})
}

// ListCheckins returns check-ins matching the filter, oldest first.
func (s *MarkdownStore) ListCheckins(filter *CheckinFilter) ([]*models.CheckinRecord, error) {
	var records []*models.CheckinRecord
	err := s.walkCheckinFiles(func(_ string, r *models.CheckinRecord) error {
		if filter.Matches(r) {
			records = append(records, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

// DeleteCheckins removes check-in files. A nil source removes all of them.
func (s *MarkdownStore) DeleteCheckins(source *models.Source) (int, error) {
	var paths []string
	err := s.walkCheckinFiles(func(path string, r *models.CheckinRecord) error {
		if source == nil || r.Source == *source {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for i, path := range paths {
		if err := os.Remove(path); err != nil {
			return i, fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return len(paths), nil
}

// surveyFile is the on-disk layout of survey.yaml.
type surveyFile struct {
	Answers []surveyAnswerEntry `yaml:"answers"`
}

type surveyAnswerEntry struct {
	Section    int    `yaml:"section"`
	Question   int    `yaml:"question"`
	Value      string `yaml:"value"`
	AnsweredAt string `yaml:"answered_at"`
}

func (s *MarkdownStore) readSurvey() ([]*models.SurveyAnswer, error) {
	data, err := os.ReadFile(s.surveyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read survey: %w", err)
	}

	var sf surveyFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse survey: %w", err)
	}

	answers := make([]*models.SurveyAnswer, 0, len(sf.Answers))
	for _, e := range sf.Answers {
		answeredAt, _ := time.Parse(time.RFC3339Nano, e.AnsweredAt)
		answers = append(answers, &models.SurveyAnswer{
			SectionIndex:  e.Section,
			QuestionIndex: e.Question,
			Value:         models.LikertValue(e.Value),
			AnsweredAt:    answeredAt,
		})
	}
	return answers, nil
}

func (s *MarkdownStore) writeSurvey(answers []*models.SurveyAnswer) error {
	sort.Slice(answers, func(i, j int) bool {
		if answers[i].SectionIndex != answers[j].SectionIndex {
			return answers[i].SectionIndex < answers[j].SectionIndex
		}
		return answers[i].QuestionIndex < answers[j].QuestionIndex
	})

	sf := surveyFile{Answers: make([]surveyAnswerEntry, 0, len(answers))}
	for _, a := range answers {
		sf.Answers = append(sf.Answers, surveyAnswerEntry{
			Section:    a.SectionIndex,
			Question:   a.QuestionIndex,
			Value:      string(a.Value),
			AnsweredAt: a.AnsweredAt.UTC().Format(time.RFC3339Nano),
		})
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("encode survey: %w", err)
	}
	return atomicWrite(s.surveyPath(), data)
}

// SaveSurveyAnswer stores an answer, replacing any earlier answer for the same question.
func (s *MarkdownStore) SaveSurveyAnswer(a *models.SurveyAnswer) error {
	answers, err := s.readSurvey()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range answers {
		if existing.Key() == a.Key() {
			answers[i] = a
			replaced = true
			break
		}
	}
	if !replaced {
		answers = append(answers, a)
	}
	return s.writeSurvey(answers)
}

// ListSurveyAnswers returns every stored answer ordered by section and question.
func (s *MarkdownStore) ListSurveyAnswers() ([]*models.SurveyAnswer, error) {
	return s.readSurvey()
}

// ClearSurveyAnswers removes the survey file.
func (s *MarkdownStore) ClearSurveyAnswers() error {
	if err := os.Remove(s.surveyPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear survey: %w", err)
	}
	return nil
}

// GetAllData retrieves all data for export.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	return CollectExportData(s)
}

// ImportData merges an export into the store.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	return ImportRecords(s, data)
}
