// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/newbeginning12/flashcal/internal/interval"
)

// SQLite implements interval.Repository using SQLite.
//
// Overlapping intervals are legal here: the grid resolves visual conflicts
// at render time, so storage never rejects a slot.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const insertQuery = `
	INSERT INTO intervals (
		title, day, start_time, end_time, status, color_tag, tags, notes, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectColumns = `
	SELECT id, title, day, start_time, end_time, status, color_tag, tags, notes, created_at
	FROM intervals
`

// CreateInterval adds a new interval to the repository and sets its ID.
func (s *SQLite) CreateInterval(ctx context.Context, iv *interval.Interval) error {
	if err := iv.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, insertQuery,
		iv.Title,
		iv.Day.Format("2006-01-02"),
		iv.Start,
		iv.End,
		iv.Status,
		iv.ColorTag,
		strings.Join(iv.Tags, ","),
		iv.Notes,
		iv.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting interval: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	iv.ID = id

	return nil
}

// CreateIntervals adds multiple intervals in a batch using a transaction.
func (s *SQLite) CreateIntervals(ctx context.Context, ivs []*interval.Interval) error {
	if len(ivs) == 0 {
		return nil
	}

	for _, iv := range ivs {
		if err := iv.Validate(); err != nil {
			return fmt.Errorf("interval %q: %w", iv.Title, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, iv := range ivs {
		result, err := stmt.ExecContext(ctx,
			iv.Title,
			iv.Day.Format("2006-01-02"),
			iv.Start,
			iv.End,
			iv.Status,
			iv.ColorTag,
			strings.Join(iv.Tags, ","),
			iv.Notes,
			iv.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting interval %q: %w", iv.Title, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		iv.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// GetInterval retrieves an interval by ID. Returns nil if not found.
func (s *SQLite) GetInterval(ctx context.Context, id int64) (*interval.Interval, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+`WHERE id = ?`, id)

	iv, err := scanInterval(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying interval: %w", err)
	}
	return iv, nil
}

// ListIntervalsByDateRange returns all intervals scheduled within the date
// range (inclusive), ordered by day and start time.
func (s *SQLite) ListIntervalsByDateRange(ctx context.Context, start, end time.Time) ([]*interval.Interval, error) {
	query := selectColumns + `
		WHERE day >= ? AND day <= ?
		ORDER BY day, start_time, id
	`

	rows, err := s.db.QueryContext(ctx, query, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying intervals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ivs []*interval.Interval
	for rows.Next() {
		iv, err := scanInterval(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning interval: %w", err)
		}
		ivs = append(ivs, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating intervals: %w", err)
	}

	return ivs, nil
}

// MoveInterval reschedules an interval to a new day and start time,
// preserving its duration. The interval is clamped so it never crosses
// midnight.
func (s *SQLite) MoveInterval(ctx context.Context, id int64, newDay time.Time, newStart string) error {
	iv, err := s.GetInterval(ctx, id)
	if err != nil {
		return fmt.Errorf("getting interval: %w", err)
	}
	if iv == nil {
		return interval.ErrIntervalNotFound
	}

	startMin := interval.TimeToMinutes(newStart)
	endMin := startMin + iv.Duration()
	if endMin > interval.MinutesPerDay {
		endMin = interval.MinutesPerDay
		startMin = endMin - iv.Duration()
		if startMin < 0 {
			startMin = 0
		}
	}

	query := `UPDATE intervals SET day = ?, start_time = ?, end_time = ? WHERE id = ?`
	_, err = s.db.ExecContext(ctx, query,
		newDay.Format("2006-01-02"),
		interval.MinutesToTime(startMin),
		endTime(endMin),
		id,
	)
	if err != nil {
		return fmt.Errorf("moving interval: %w", err)
	}
	return nil
}

// SetStatus updates an interval's status.
func (s *SQLite) SetStatus(ctx context.Context, id int64, status interval.Status) error {
	if !status.Valid() {
		return interval.ErrInvalidStatus
	}

	result, err := s.db.ExecContext(ctx, `UPDATE intervals SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("setting status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return interval.ErrIntervalNotFound
	}

	return nil
}

// UpdateInterval updates an interval's title, times, notes, color and tags.
func (s *SQLite) UpdateInterval(ctx context.Context, iv *interval.Interval) error {
	if err := iv.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE intervals
		SET title = ?, day = ?, start_time = ?, end_time = ?, color_tag = ?, tags = ?, notes = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		iv.Title,
		iv.Day.Format("2006-01-02"),
		iv.Start,
		iv.End,
		iv.ColorTag,
		strings.Join(iv.Tags, ","),
		iv.Notes,
		iv.ID,
	)
	if err != nil {
		return fmt.Errorf("updating interval: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return interval.ErrIntervalNotFound
	}

	return nil
}

// DeleteInterval removes an interval.
func (s *SQLite) DeleteInterval(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM intervals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting interval: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return interval.ErrIntervalNotFound
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInterval(row scanner) (*interval.Interval, error) {
	var (
		iv        interval.Interval
		day       string
		tags      string
		createdAt string
	)

	err := row.Scan(
		&iv.ID,
		&iv.Title,
		&day,
		&iv.Start,
		&iv.End,
		&iv.Status,
		&iv.ColorTag,
		&tags,
		&iv.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	iv.Day, err = parseDate(day)
	if err != nil {
		return nil, fmt.Errorf("parsing day: %w", err)
	}

	iv.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	if tags != "" {
		iv.Tags = strings.Split(tags, ",")
	}

	return &iv, nil
}

// endTime formats an end minute that may be exactly midnight. MinutesToTime
// clamps 1440 to 23:59, which would shave a minute off full-day intervals.
func endTime(m int) string {
	if m >= interval.MinutesPerDay {
		return "24:00"
	}
	return interval.MinutesToTime(m)
}

// parseDate parses a date string in various formats SQLite might return.
// Date-only values (midnight) are parsed in local timezone to match
// time.Now() behavior.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}

	// SQLite returns DATE columns as "2006-01-02T00:00:00Z"; extract the
	// date and treat it as local midnight.
	if len(s) == 20 && s[10] == 'T' && s[19] == 'Z' {
		if t, err := time.ParseInLocation("2006-01-02", s[:10], time.Local); err == nil {
			return t, nil
		}
	}

	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}
