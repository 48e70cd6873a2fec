// ABOUTME: Forward-only anchor resolution for new check-ins.
// ABOUTME: Computes the earliest writable date and rejects backdated writes.
package scoring

import (
	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/models"
)

// Anchor is the resolved placement for the next check-in.
type Anchor struct {
	// Candidate is the earliest date a new record may be written for.
	Candidate civil.Date `json:"candidate"`
	// Suggested is the date to pre-fill: Candidate, or today once Candidate is in the past.
	Suggested civil.Date `json:"suggested"`
}

// LatestDate returns the most recent record date.
func LatestDate(records []*models.CheckinRecord) (civil.Date, bool) {
	var latest civil.Date
	found := false
	for _, r := range records {
		if r == nil {
			continue
		}
		if !found || r.Date.After(latest) {
			latest = r.Date
			found = true
		}
	}
	return latest, found
}

// NextAnchorDate returns the day after the latest record, or the journey start
// when there are no records. It never returns a date before the journey start.
func NextAnchorDate(records []*models.CheckinRecord, journeyStart civil.Date) civil.Date {
	latest, ok := LatestDate(records)
	if !ok {
		return journeyStart
	}
	candidate := latest.AddDays(1)
	if candidate.Before(journeyStart) {
		return journeyStart
	}
	return candidate
}

// SuggestedWriteDate falls back to today when the candidate is already in the past.
func SuggestedWriteDate(candidate, today civil.Date) civil.Date {
	if candidate.Before(today) {
		return today
	}
	return candidate
}

// ResolveAnchor computes both the candidate and the suggested write date.
func ResolveAnchor(records []*models.CheckinRecord, journeyStart, today civil.Date) Anchor {
	candidate := NextAnchorDate(records, journeyStart)
	return Anchor{
		Candidate: candidate,
		Suggested: SuggestedWriteDate(candidate, today),
	}
}

// CheckWriteDate rejects a write dated before the anchor candidate.
func CheckWriteDate(records []*models.CheckinRecord, journeyStart, date civil.Date) error {
	earliest := NextAnchorDate(records, journeyStart)
	if date.Before(earliest) {
		return &OutOfOrderWriteError{Attempted: date, Earliest: earliest}
	}
	return nil
}
