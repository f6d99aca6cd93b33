package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS intervals (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT NOT NULL,
			day        DATE NOT NULL,
			start_time TIME NOT NULL,
			end_time   TIME NOT NULL,
			status     TEXT DEFAULT 'pending' CHECK(status IN ('pending', 'active', 'done')),
			color_tag  TEXT DEFAULT '',
			tags       TEXT DEFAULT '',
			notes      TEXT DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_intervals_day ON intervals(day);
		CREATE INDEX IF NOT EXISTS idx_intervals_status ON intervals(status);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating intervals table: %w", err)
	}

	return nil
}
