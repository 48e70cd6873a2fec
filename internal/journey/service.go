// ABOUTME: Journey service tying scoring to storage.
// ABOUTME: Serializes check-in writes so resolve, check, and upsert happen as one step.
package journey

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/log"
	"github.com/harperreed/journey/internal/models"
	"github.com/harperreed/journey/internal/scoring"
	"github.com/harperreed/journey/internal/storage"
)

// MaxDemoDays bounds a single demo batch to one series length.
const MaxDemoDays = scoring.SeriesLength

// Service is the entry point for every journey operation the CLI and MCP server expose.
type Service struct {
	repo    storage.Repository
	prompts []models.BeliefPrompt
	start   civil.Date
	now     func() time.Time
	log     *log.Logger

	// mu serializes check-in writes.
	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithPrompts replaces the default prompt catalog.
func WithPrompts(prompts []models.BeliefPrompt) Option {
	return func(s *Service) { s.prompts = prompts }
}

// WithClock sets the clock used to derive today's date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New creates a Service over repo with journeyStart as day 1.
func New(repo storage.Repository, journeyStart civil.Date, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		prompts: models.DefaultPrompts,
		start:   journeyStart,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	s.log = s.log.With("service", "journey")
	return s
}

// JourneyStart returns day 1 of the series.
func (s *Service) JourneyStart() civil.Date {
	return s.start
}

// Prompts returns the prompt catalog in display order.
func (s *Service) Prompts() []models.BeliefPrompt {
	return s.prompts
}

// Today returns the UTC calendar date of the service clock.
func (s *Service) Today() civil.Date {
	return civil.DateOf(s.now().UTC())
}

// Anchor resolves where the next check-in goes.
func (s *Service) Anchor() (scoring.Anchor, error) {
	records, err := s.repo.ListCheckins(nil)
	if err != nil {
		return scoring.Anchor{}, fmt.Errorf("list checkins: %w", err)
	}
	return scoring.ResolveAnchor(records, s.start, s.Today()), nil
}

// RecordCheckin scores a response set and stores it as the check-in for its date.
// A zero set date means the suggested anchor date. Writes dated before the anchor
// candidate fail with *scoring.OutOfOrderWriteError.
func (s *Service) RecordCheckin(set *models.DailyResponseSet, source models.Source) (*models.CheckinRecord, error) {
	if set == nil {
		set = &models.DailyResponseSet{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.repo.ListCheckins(nil)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}

	date := set.Date
	if date.IsZero() {
		date = scoring.ResolveAnchor(records, s.start, s.Today()).Suggested
	}

	if err := scoring.CheckWriteDate(records, s.start, date); err != nil {
		s.log.Warn("rejected check-in", "date", date, "err", err)
		return nil, err
	}

	tally := scoring.ScoreResponses(s.prompts, set)
	r := tally.Apply(models.NewCheckinRecord(date).WithSource(source).WithCreatedAt(s.now().UTC()))
	if err := scoring.ValidateRecord(r); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertCheckin(r); err != nil {
		return nil, fmt.Errorf("save checkin: %w", err)
	}

	s.log.Debug("recorded check-in", "date", r.Date, "score", r.DailyScore, "source", r.Source)
	return r, nil
}

// Checkins returns every stored check-in, oldest first.
func (s *Service) Checkins() ([]*models.CheckinRecord, error) {
	return s.repo.ListCheckins(nil)
}

// Series builds the dense year from the stored check-ins.
func (s *Service) Series() ([]models.DensePoint, error) {
	records, err := s.repo.ListCheckins(nil)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	if len(records) == 0 {
		s.log.Debug("no check-ins yet", "start", s.start)
	}
	return scoring.BuildDenseSeries(s.start, records), nil
}

// SeriesToDate builds the dense year and trims it to the latest check-in.
// It returns nil when there are no check-ins.
func (s *Service) SeriesToDate() ([]models.DensePoint, error) {
	records, err := s.repo.ListCheckins(nil)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	latest, ok := scoring.LatestDate(records)
	if !ok {
		s.log.Debug("no check-ins yet", "start", s.start)
		return nil, nil
	}
	return scoring.SeriesThrough(scoring.BuildDenseSeries(s.start, records), latest), nil
}

// GenerateDemo writes days of random check-ins tagged demo, starting at the anchor
// candidate. It goes through RecordCheckin so the forward-only rule still applies.
// The same seed produces the same answers.
func (s *Service) GenerateDemo(days int, seed uint64) ([]*models.CheckinRecord, error) {
	if days <= 0 || days > MaxDemoDays {
		return nil, fmt.Errorf("demo days must be between 1 and %d, got %d", MaxDemoDays, days)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	created := make([]*models.CheckinRecord, 0, days)

	for range days {
		anchor, err := s.Anchor()
		if err != nil {
			return created, err
		}

		set := models.NewDailyResponseSet(anchor.Candidate)
		for _, p := range s.prompts {
			set.Answer(p.ID, rng.IntN(2) == 1)
		}

		r, err := s.RecordCheckin(set, models.SourceDemo)
		if err != nil {
			var ooo *scoring.OutOfOrderWriteError
			if errors.As(err, &ooo) {
				// Another writer moved the anchor between resolve and write.
				s.log.Warn("demo batch interrupted", "written", len(created), "err", err)
			}
			return created, err
		}
		created = append(created, r)
	}

	s.log.Info("generated demo check-ins", "count", len(created), "seed", seed)
	return created, nil
}

// Reset deletes check-ins. With demoOnly it removes only demo data.
func (s *Service) Reset(demoOnly bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var source *models.Source
	if demoOnly {
		demo := models.SourceDemo
		source = &demo
	}

	n, err := s.repo.DeleteCheckins(source)
	if err != nil {
		return n, fmt.Errorf("reset checkins: %w", err)
	}
	s.log.Info("reset check-ins", "deleted", n, "demo_only", demoOnly)
	return n, nil
}

// RecordSurveyAnswer validates and stores one Likert answer.
func (s *Service) RecordSurveyAnswer(section, question int, value models.LikertValue) (*models.SurveyAnswer, error) {
	a := models.NewSurveyAnswer(section, question, value)
	a.AnsweredAt = s.now().UTC()
	if err := scoring.ValidateAnswer(a); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSurveyAnswer(a); err != nil {
		return nil, fmt.Errorf("save survey answer: %w", err)
	}
	s.log.Debug("recorded survey answer", "key", a.Key(), "value", a.Value)
	return a, nil
}

// Survey rebuilds the survey aggregate from stored answers.
func (s *Service) Survey() (*scoring.Survey, error) {
	answers, err := s.repo.ListSurveyAnswers()
	if err != nil {
		return nil, fmt.Errorf("list survey answers: %w", err)
	}
	return scoring.SurveyFromAnswers(answers)
}

// Strengths returns the per-section domain strengths.
func (s *Service) Strengths() ([]models.DomainStrength, error) {
	survey, err := s.Survey()
	if err != nil {
		return nil, err
	}
	return survey.DomainStrengths(), nil
}

// ClearSurvey removes every stored survey answer.
func (s *Service) ClearSurvey() error {
	if err := s.repo.ClearSurveyAnswers(); err != nil {
		return fmt.Errorf("clear survey: %w", err)
	}
	s.log.Info("cleared survey answers")
	return nil
}
