// ABOUTME: Survey answer operations for SQLite storage.
// ABOUTME: One row per section/question; saving again overwrites the answer.
package storage

import (
	"fmt"
	"time"

	"github.com/harperreed/journey/internal/models"
)

// SaveSurveyAnswer stores an answer, replacing any earlier answer for the same question.
func (d *DB) SaveSurveyAnswer(a *models.SurveyAnswer) error {
	query := `
		INSERT INTO survey_answers (section_index, question_index, value, answered_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(section_index, question_index) DO UPDATE SET
			value = excluded.value,
			answered_at = excluded.answered_at
	`
	_, err := d.db.Exec(query,
		a.SectionIndex,
		a.QuestionIndex,
		string(a.Value),
		a.AnsweredAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save survey answer: %w", err)
	}
	return nil
}

// ListSurveyAnswers returns every stored answer ordered by section and question.
func (d *DB) ListSurveyAnswers() ([]*models.SurveyAnswer, error) {
	rows, err := d.db.Query(`
		SELECT section_index, question_index, value, answered_at
		FROM survey_answers
		ORDER BY section_index, question_index
	`)
	if err != nil {
		return nil, fmt.Errorf("list survey answers: %w", err)
	}
	defer rows.Close()

	var answers []*models.SurveyAnswer
	for rows.Next() {
		var a models.SurveyAnswer
		var value, answeredAt string
		if err := rows.Scan(&a.SectionIndex, &a.QuestionIndex, &value, &answeredAt); err != nil {
			return nil, fmt.Errorf("scan survey answer: %w", err)
		}
		a.Value = models.LikertValue(value)
		a.AnsweredAt, _ = time.Parse(time.RFC3339Nano, answeredAt)
		answers = append(answers, &a)
	}
	return answers, rows.Err()
}

// ClearSurveyAnswers removes every stored answer.
func (d *DB) ClearSurveyAnswers() error {
	if _, err := d.db.Exec("DELETE FROM survey_answers"); err != nil {
		return fmt.Errorf("clear survey answers: %w", err)
	}
	return nil
}
