// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the date-keyed checkins table and the survey_answers table.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS checkins (
		date TEXT PRIMARY KEY,
		id TEXT NOT NULL,
		positive_yes_count INTEGER NOT NULL CHECK (positive_yes_count >= 0),
		negative_yes_count INTEGER NOT NULL CHECK (negative_yes_count >= 0),
		daily_score INTEGER NOT NULL CHECK (daily_score BETWEEN -10 AND 10),
		source TEXT NOT NULL CHECK (source IN ('user', 'demo')),
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS survey_answers (
		section_index INTEGER NOT NULL,
		question_index INTEGER NOT NULL,
		value TEXT NOT NULL,
		answered_at DATETIME NOT NULL,
		PRIMARY KEY (section_index, question_index)
	);

	CREATE INDEX IF NOT EXISTS idx_checkins_source ON checkins(source);
	`

	_, err := d.db.Exec(schema)
	return err
}
