// ABOUTME: Tests for Repository interface implementations.
// ABOUTME: Runs the same check-in and survey contract against SQLite and markdown backends.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/models"
)

func day(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func checkin(date civil.Date, pos, neg int) *models.CheckinRecord {
	score := pos - neg
	return models.NewCheckinRecord(date).WithCounts(pos, neg, score)
}

// backends returns a fresh instance of every Repository implementation.
func backends(t *testing.T) map[string]Repository {
	t.Helper()
	return map[string]Repository{
		"sqlite":   setupTestDB(t),
		"markdown": setupTestMarkdownStore(t),
	}
}

func TestUpsertAndGetCheckin(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := checkin(day(2025, 1, 1), 4, 1)
			if err := repo.UpsertCheckin(r); err != nil {
				t.Fatalf("UpsertCheckin failed: %v", err)
			}

			got, err := repo.GetCheckin(r.Date)
			if err != nil {
				t.Fatalf("GetCheckin failed: %v", err)
			}
			if got.ID != r.ID {
				t.Errorf("ID mismatch: got %v, want %v", got.ID, r.ID)
			}
			if got.Date != r.Date {
				t.Errorf("Date mismatch: got %v, want %v", got.Date, r.Date)
			}
			if got.PositiveYesCount != 4 || got.NegativeYesCount != 1 || got.DailyScore != 3 {
				t.Errorf("counts mismatch: got %+v", got)
			}
			if got.Source != models.SourceUser {
				t.Errorf("Source mismatch: got %v, want %v", got.Source, models.SourceUser)
			}
			if !got.CreatedAt.Equal(r.CreatedAt) {
				t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, r.CreatedAt)
			}
		})
	}
}

func TestUpsertCheckinReplacesSameDate(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			d := day(2025, 1, 1)
			if err := repo.UpsertCheckin(checkin(d, 1, 0)); err != nil {
				t.Fatalf("UpsertCheckin failed: %v", err)
			}
			replacement := checkin(d, 0, 5)
			if err := repo.UpsertCheckin(replacement); err != nil {
				t.Fatalf("UpsertCheckin replacement failed: %v", err)
			}

			all, err := repo.ListCheckins(nil)
			if err != nil {
				t.Fatalf("ListCheckins failed: %v", err)
			}
			if len(all) != 1 {
				t.Fatalf("expected 1 checkin after replace, got %d", len(all))
			}
			if all[0].DailyScore != -5 || all[0].ID != replacement.ID {
				t.Errorf("expected replacement record, got %+v", all[0])
			}
		})
	}
}

func TestGetCheckinNotFound(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.GetCheckin(day(2030, 6, 1))
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestListCheckinsOrderAndFilter(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			// Insert out of order to check sorting.
			for _, d := range []civil.Date{day(2025, 1, 3), day(2025, 1, 1), day(2025, 2, 1)} {
				if err := repo.UpsertCheckin(checkin(d, 1, 0)); err != nil {
					t.Fatalf("UpsertCheckin failed: %v", err)
				}
			}
			demo := checkin(day(2025, 1, 2), 0, 1).WithSource(models.SourceDemo)
			if err := repo.UpsertCheckin(demo); err != nil {
				t.Fatalf("UpsertCheckin failed: %v", err)
			}

			all, err := repo.ListCheckins(nil)
			if err != nil {
				t.Fatalf("ListCheckins failed: %v", err)
			}
			want := []civil.Date{day(2025, 1, 1), day(2025, 1, 2), day(2025, 1, 3), day(2025, 2, 1)}
			if len(all) != len(want) {
				t.Fatalf("expected %d checkins, got %d", len(want), len(all))
			}
			for i, d := range want {
				if all[i].Date != d {
					t.Errorf("position %d: got %v, want %v", i, all[i].Date, d)
				}
			}

			from, to := day(2025, 1, 2), day(2025, 1, 31)
			ranged, err := repo.ListCheckins(&CheckinFilter{From: &from, To: &to})
			if err != nil {
				t.Fatalf("ListCheckins with range failed: %v", err)
			}
			if len(ranged) != 2 {
				t.Errorf("expected 2 checkins in range, got %d", len(ranged))
			}

			src := models.SourceDemo
			demos, err := repo.ListCheckins(&CheckinFilter{Source: &src})
			if err != nil {
				t.Fatalf("ListCheckins by source failed: %v", err)
			}
			if len(demos) != 1 || demos[0].Date != demo.Date {
				t.Errorf("expected the single demo checkin, got %v", demos)
			}
		})
	}
}

func TestDeleteCheckins(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_ = repo.UpsertCheckin(checkin(day(2025, 1, 1), 1, 0))
			_ = repo.UpsertCheckin(checkin(day(2025, 1, 2), 1, 0).WithSource(models.SourceDemo))
			_ = repo.UpsertCheckin(checkin(day(2025, 1, 3), 1, 0).WithSource(models.SourceDemo))

			src := models.SourceDemo
			n, err := repo.DeleteCheckins(&src)
			if err != nil {
				t.Fatalf("DeleteCheckins(demo) failed: %v", err)
			}
			if n != 2 {
				t.Errorf("expected 2 demo checkins deleted, got %d", n)
			}

			left, _ := repo.ListCheckins(nil)
			if len(left) != 1 || left[0].Source != models.SourceUser {
				t.Errorf("expected only the user checkin to remain, got %v", left)
			}

			n, err = repo.DeleteCheckins(nil)
			if err != nil {
				t.Fatalf("DeleteCheckins(all) failed: %v", err)
			}
			if n != 1 {
				t.Errorf("expected 1 checkin deleted, got %d", n)
			}
		})
	}
}

func TestSurveyAnswers(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := repo.SaveSurveyAnswer(models.NewSurveyAnswer(1, 2, models.Agree)); err != nil {
				t.Fatalf("SaveSurveyAnswer failed: %v", err)
			}
			if err := repo.SaveSurveyAnswer(models.NewSurveyAnswer(0, 4, models.Disagree)); err != nil {
				t.Fatalf("SaveSurveyAnswer failed: %v", err)
			}
			// Overwrite the first answer.
			if err := repo.SaveSurveyAnswer(models.NewSurveyAnswer(1, 2, models.StronglyAgree)); err != nil {
				t.Fatalf("SaveSurveyAnswer overwrite failed: %v", err)
			}

			answers, err := repo.ListSurveyAnswers()
			if err != nil {
				t.Fatalf("ListSurveyAnswers failed: %v", err)
			}
			if len(answers) != 2 {
				t.Fatalf("expected 2 answers, got %d", len(answers))
			}
			if answers[0].Key() != "0_4" || answers[1].Key() != "1_2" {
				t.Errorf("unexpected order: %s, %s", answers[0].Key(), answers[1].Key())
			}
			if answers[1].Value != models.StronglyAgree {
				t.Errorf("expected overwritten value, got %v", answers[1].Value)
			}

			if err := repo.ClearSurveyAnswers(); err != nil {
				t.Fatalf("ClearSurveyAnswers failed: %v", err)
			}
			answers, _ = repo.ListSurveyAnswers()
			if len(answers) != 0 {
				t.Errorf("expected no answers after clear, got %d", len(answers))
			}
		})
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "journey-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "nested", "dir", "journey.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Path() != dbPath {
		t.Errorf("Path mismatch: got %s, want %s", db.Path(), dbPath)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestCheckConstraintRejectsBadScore(t *testing.T) {
	db := setupTestDB(t)

	r := checkin(day(2025, 1, 1), 0, 0)
	r.DailyScore = 42
	if err := db.UpsertCheckin(r); err == nil {
		t.Error("expected CHECK constraint to reject out-of-range score")
	}
}

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "journey-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, "journey.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
