// ABOUTME: Check-in operations for SQLite storage.
// ABOUTME: Upserts by date so a later write for the same day replaces the earlier one.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/harperreed/journey/internal/models"
)

const checkinColumns = `date, id, positive_yes_count, negative_yes_count, daily_score, source, created_at`

// UpsertCheckin inserts a check-in or replaces the record for the same date.
func (d *DB) UpsertCheckin(r *models.CheckinRecord) error {
	query := `
		INSERT INTO checkins (` + checkinColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			id = excluded.id,
			positive_yes_count = excluded.positive_yes_count,
			negative_yes_count = excluded.negative_yes_count,
			daily_score = excluded.daily_score,
			source = excluded.source,
			created_at = excluded.created_at
	`
	_, err := d.db.Exec(query,
		r.Date.String(),
		r.ID.String(),
		r.PositiveYesCount,
		r.NegativeYesCount,
		r.DailyScore,
		string(r.Source),
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert checkin: %w", err)
	}
	return nil
}

// GetCheckin retrieves the check-in for a date.
func (d *DB) GetCheckin(date civil.Date) (*models.CheckinRecord, error) {
	row := d.db.QueryRow(`SELECT `+checkinColumns+` FROM checkins WHERE date = ?`, date.String())
	r, err := scanCheckin(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: checkin %s", ErrNotFound, date)
		}
		return nil, err
	}
	return r, nil
}

// ListCheckins retrieves check-ins matching the filter, oldest first.
func (d *DB) ListCheckins(filter *CheckinFilter) ([]*models.CheckinRecord, error) {
	var where []string
	var args []interface{}

	if filter != nil {
		if filter.From != nil {
			where = append(where, "date >= ?")
			args = append(args, filter.From.String())
		}
		if filter.To != nil {
			where = append(where, "date <= ?")
			args = append(args, filter.To.String())
		}
		if filter.Source != nil {
			where = append(where, "source = ?")
			args = append(args, string(*filter.Source))
		}
	}

	query := `SELECT ` + checkinColumns + ` FROM checkins`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date ASC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()

	var records []*models.CheckinRecord
	for rows.Next() {
		r, err := scanCheckin(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteCheckins removes check-ins. A nil source removes all of them.
func (d *DB) DeleteCheckins(source *models.Source) (int, error) {
	var result sql.Result
	var err error
	if source == nil {
		result, err = d.db.Exec("DELETE FROM checkins")
	} else {
		result, err = d.db.Exec("DELETE FROM checkins WHERE source = ?", string(*source))
	}
	if err != nil {
		return 0, fmt.Errorf("delete checkins: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete checkins: %w", err)
	}
	return int(affected), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCheckin scans a single row into a CheckinRecord.
func scanCheckin(row rowScanner) (*models.CheckinRecord, error) {
	var r models.CheckinRecord
	var dateStr, idStr, source, createdAt string

	err := row.Scan(&dateStr, &idStr, &r.PositiveYesCount, &r.NegativeYesCount, &r.DailyScore, &source, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan checkin: %w", err)
	}

	r.Date, err = civil.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("parse checkin date %q: %w", dateStr, err)
	}
	r.ID, _ = uuid.Parse(idStr)
	r.Source = models.Source(source)
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	return &r, nil
}
