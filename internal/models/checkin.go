// ABOUTME: CheckinRecord model and Source tag for daily belief check-ins.
// ABOUTME: Also defines DensePoint, the derived per-day projection of check-ins.
package models

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Source records who produced a check-in.
type Source string

const (
	SourceUser Source = "user"
	SourceDemo Source = "demo"
)

// IsValidSource checks if a string is a known check-in source.
func IsValidSource(s string) bool {
	return s == string(SourceUser) || s == string(SourceDemo)
}

// CheckinRecord is one day's scored check-in. Date is the unique key.
type CheckinRecord struct {
	ID               uuid.UUID  `json:"id"`
	Date             civil.Date `json:"date"`
	PositiveYesCount int        `json:"positive_yes_count" validate:"min=0"`
	NegativeYesCount int        `json:"negative_yes_count" validate:"min=0"`
	DailyScore       int        `json:"daily_score" validate:"min=-10,max=10"`
	Source           Source     `json:"source" validate:"oneof=user demo"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewCheckinRecord creates a user check-in with generated UUID and current timestamp.
// The score fields are left for the caller to fill from a scoring tally.
func NewCheckinRecord(date civil.Date) *CheckinRecord {
	return &CheckinRecord{
		ID:        uuid.New(),
		Date:      date,
		Source:    SourceUser,
		CreatedAt: time.Now().UTC(),
	}
}

// WithSource sets the record source.
func (r *CheckinRecord) WithSource(s Source) *CheckinRecord {
	r.Source = s
	return r
}

// WithCounts sets the yes counts and the daily score.
func (r *CheckinRecord) WithCounts(positive, negative, score int) *CheckinRecord {
	r.PositiveYesCount = positive
	r.NegativeYesCount = negative
	r.DailyScore = score
	return r
}

// WithCreatedAt sets a custom creation timestamp.
func (r *CheckinRecord) WithCreatedAt(t time.Time) *CheckinRecord {
	r.CreatedAt = t
	return r
}

// DensePoint is one day of the gap-free yearly series.
type DensePoint struct {
	Date       civil.Date `json:"date"`
	DayNumber  int        `json:"day_number"`
	Score      int        `json:"score"`
	Cumulative int        `json:"cumulative"`
	HasCheckin bool       `json:"has_checkin"`
}
