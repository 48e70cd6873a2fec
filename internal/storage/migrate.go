// ABOUTME: Data migration between journey storage backends.
// ABOUTME: Copies check-ins and survey answers from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Checkins      int
	SurveyAnswers int
}

// MigrateData copies all data from src to dst storage.
// Check-ins keep their dates, so migrating into a non-empty destination
// overwrites matching days rather than duplicating them.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	checkins, err := src.ListCheckins(nil)
	if err != nil {
		return nil, fmt.Errorf("list source checkins: %w", err)
	}
	for _, r := range checkins {
		if err := dst.UpsertCheckin(r); err != nil {
			return nil, fmt.Errorf("copy checkin %s: %w", r.Date, err)
		}
		summary.Checkins++
	}

	answers, err := src.ListSurveyAnswers()
	if err != nil {
		return nil, fmt.Errorf("list source survey answers: %w", err)
	}
	for _, a := range answers {
		if err := dst.SaveSurveyAnswer(a); err != nil {
			return nil, fmt.Errorf("copy survey answer %s: %w", a.Key(), err)
		}
		summary.SurveyAnswers++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
