// ABOUTME: Check-in and survey operations for Charm KV storage.
// ABOUTME: Check-ins are keyed by date so a second write for a day replaces the first.
package charm

import (
	"encoding/json"
	"fmt"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/models"
	"github.com/harperreed/journey/internal/storage"
)

// Compile-time check that Client implements storage.Repository.
var _ storage.Repository = (*Client)(nil)

// CheckinKey returns the KV key for a check-in date.
func CheckinKey(date civil.Date) string {
	return CheckinPrefix + date.String()
}

// AnswerKey returns the KV key for a survey answer.
func AnswerKey(section, question int) string {
	return AnswerPrefix + models.AnswerKey(section, question)
}

// UpsertCheckin stores a check-in under its date key.
func (c *Client) UpsertCheckin(r *models.CheckinRecord) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal checkin: %w", err)
	}
	if err := c.set(CheckinKey(r.Date), data); err != nil {
		return fmt.Errorf("upsert checkin: %w", err)
	}
	return nil
}

// GetCheckin retrieves the check-in for a date.
func (c *Client) GetCheckin(date civil.Date) (*models.CheckinRecord, error) {
	data, ok, err := c.get(CheckinKey(date))
	if err != nil {
		return nil, fmt.Errorf("get checkin: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: checkin %s", storage.ErrNotFound, date)
	}

	r, err := unmarshalJSON[models.CheckinRecord](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal checkin: %w", err)
	}
	return r, nil
}

// ListCheckins retrieves check-ins matching the filter, oldest first.
func (c *Client) ListCheckins(filter *storage.CheckinFilter) ([]*models.CheckinRecord, error) {
	allData, err := c.listByPrefix(CheckinPrefix)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}

	var records []*models.CheckinRecord
	for _, data := range allData {
		r, err := unmarshalJSON[models.CheckinRecord](data)
		if err != nil {
			continue // Skip invalid entries
		}
		if filter.Matches(r) {
			records = append(records, r)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
	return records, nil
}

// DeleteCheckins removes check-ins. A nil source removes all of them.
func (c *Client) DeleteCheckins(source *models.Source) (int, error) {
	var match func([]byte) bool
	if source != nil {
		match = func(val []byte) bool {
			r, err := unmarshalJSON[models.CheckinRecord](val)
			return err == nil && r.Source == *source
		}
	}

	n, err := c.deleteWhere(CheckinPrefix, match)
	if err != nil {
		return n, fmt.Errorf("delete checkins: %w", err)
	}
	return n, nil
}

// SaveSurveyAnswer stores an answer, replacing any earlier answer for the same question.
func (c *Client) SaveSurveyAnswer(a *models.SurveyAnswer) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal survey answer: %w", err)
	}
	if err := c.set(AnswerKey(a.SectionIndex, a.QuestionIndex), data); err != nil {
		return fmt.Errorf("save survey answer: %w", err)
	}
	return nil
}

// ListSurveyAnswers returns every stored answer ordered by section and question.
func (c *Client) ListSurveyAnswers() ([]*models.SurveyAnswer, error) {
	allData, err := c.listByPrefix(AnswerPrefix)
	if err != nil {
		return nil, fmt.Errorf("list survey answers: %w", err)
	}

	var answers []*models.SurveyAnswer
	for _, data := range allData {
		a, err := unmarshalJSON[models.SurveyAnswer](data)
		if err != nil {
			continue
		}
		answers = append(answers, a)
	}

	sort.Slice(answers, func(i, j int) bool {
		if answers[i].SectionIndex != answers[j].SectionIndex {
			return answers[i].SectionIndex < answers[j].SectionIndex
		}
		return answers[i].QuestionIndex < answers[j].QuestionIndex
	})
	return answers, nil
}

// ClearSurveyAnswers removes every stored answer.
func (c *Client) ClearSurveyAnswers() error {
	if _, err := c.deleteWhere(AnswerPrefix, nil); err != nil {
		return fmt.Errorf("clear survey answers: %w", err)
	}
	return nil
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	return storage.CollectExportData(c)
}

// ImportData merges an export into the KV store.
func (c *Client) ImportData(data *storage.ExportData) error {
	return storage.ImportRecords(c, data)
}
