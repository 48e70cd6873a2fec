// ABOUTME: Repository interface for journey data storage.
// ABOUTME: Defines the contract for check-in upserts and survey answer persistence.
package storage

import (
	"errors"

	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// CheckinFilter narrows ListCheckins. Nil fields match everything.
type CheckinFilter struct {
	From   *civil.Date
	To     *civil.Date
	Source *models.Source
}

// Matches reports whether a record passes the filter.
func (f *CheckinFilter) Matches(r *models.CheckinRecord) bool {
	if f == nil {
		return true
	}
	if f.From != nil && r.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && r.Date.After(*f.To) {
		return false
	}
	if f.Source != nil && r.Source != *f.Source {
		return false
	}
	return true
}

// Repository defines the storage interface for journey data.
// Check-ins are keyed by date: UpsertCheckin replaces any record for the same date.
type Repository interface {
	// Check-in operations
	UpsertCheckin(r *models.CheckinRecord) error
	GetCheckin(date civil.Date) (*models.CheckinRecord, error)
	ListCheckins(filter *CheckinFilter) ([]*models.CheckinRecord, error)
	DeleteCheckins(source *models.Source) (int, error)

	// Survey operations
	SaveSurveyAnswer(a *models.SurveyAnswer) error
	ListSurveyAnswers() ([]*models.SurveyAnswer, error)
	ClearSurveyAnswers() error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
