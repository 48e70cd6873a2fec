// ABOUTME: Survey aggregator converting Likert answers into points and domain strengths.
// ABOUTME: The Survey value is owned by its caller; nothing here is global.
package scoring

import (
	"fmt"
	"math"

	"github.com/harperreed/journey/internal/models"
)

// Survey holds the latest answer per "{section}_{question}" key.
// A Survey is not safe for concurrent mutation.
type Survey struct {
	answers map[string]models.LikertValue
}

// NewSurvey returns an empty survey.
func NewSurvey() *Survey {
	return &Survey{answers: make(map[string]models.LikertValue)}
}

// SurveyFromAnswers replays stored answers in order. Later answers for the
// same key overwrite earlier ones.
func SurveyFromAnswers(answers []*models.SurveyAnswer) (*Survey, error) {
	s := NewSurvey()
	for _, a := range answers {
		if a == nil {
			continue
		}
		if err := s.RecordAnswer(a.SectionIndex, a.QuestionIndex, a.Value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RecordAnswer stores an answer, replacing any previous answer for the same question.
func (s *Survey) RecordAnswer(section, question int, value models.LikertValue) error {
	a := models.SurveyAnswer{SectionIndex: section, QuestionIndex: question, Value: value}
	if err := ValidateAnswer(&a); err != nil {
		return err
	}
	s.answers[a.Key()] = value
	return nil
}

// Answered reports whether the question has an answer. Unanswered questions
// still count as 0 points everywhere else.
func (s *Survey) Answered(section, question int) bool {
	_, ok := s.answers[models.AnswerKey(section, question)]
	return ok
}

// Value returns the recorded answer for a question.
func (s *Survey) Value(section, question int) (models.LikertValue, bool) {
	v, ok := s.answers[models.AnswerKey(section, question)]
	return v, ok
}

// Len returns the number of answered questions.
func (s *Survey) Len() int {
	return len(s.answers)
}

// TotalPoints sums the points of every recorded answer.
func (s *Survey) TotalPoints() int {
	total := 0
	for _, v := range s.answers {
		total += models.LikertPoints[v]
	}
	return total
}

// SectionPoints returns one value per question of the titled section.
func (s *Survey) SectionPoints(title string) ([]int, error) {
	idx, ok := models.SectionIndexByTitle(title)
	if !ok {
		return nil, fmt.Errorf("unknown survey section: %q", title)
	}
	return s.SectionPointsAt(idx), nil
}

// SectionPointsAt returns one value per question of the section at index.
// Unanswered questions are 0.
func (s *Survey) SectionPointsAt(index int) []int {
	points := make([]int, models.QuestionsPerSection)
	for q := range points {
		if v, ok := s.Value(index, q); ok {
			points[q] = models.LikertPoints[v]
		}
	}
	return points
}

// DomainStrengths returns a strength per section in table order.
func (s *Survey) DomainStrengths() []models.DomainStrength {
	strengths := make([]models.DomainStrength, len(models.SurveySections))
	for i, sec := range models.SurveySections {
		strengths[i] = models.DomainStrength{
			Label:      sec.Title,
			Percentage: DomainStrengthPercent(s.SectionPointsAt(i)),
		}
	}
	return strengths
}

// DomainStrengthPercent rescales the mean of per-question points from [-2, 2]
// onto [0, 100], rounded to the nearest integer. An empty slice has mean 0.
func DomainStrengthPercent(points []int) int {
	mean := 0.0
	if len(points) > 0 {
		sum := 0
		for _, p := range points {
			sum += p
		}
		mean = float64(sum) / float64(len(points))
	}
	pct := (mean + 2) / 4 * 100
	return int(math.Round(max(0, min(pct, 100))))
}
