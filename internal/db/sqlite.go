// Package db provides the SQLite meeting store.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/IMNJL/AI-chef/internal/dateutil"
	"github.com/IMNJL/AI-chef/internal/meeting"
)

// Meeting statuses.
const (
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

const timestampLayout = time.RFC3339

// SQLite implements meeting.Store using SQLite.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite store and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// List returns confirmed meetings that overlap any day in [from, to],
// ordered by start time. Days are taken in the locations of from and to.
func (s *SQLite) List(ctx context.Context, from, to time.Time) ([]meeting.Meeting, error) {
	query := `
		SELECT id, title, starts_at, ends_at, location, external_link
		FROM meetings
		WHERE starts_utc < ? AND ends_utc > ?
		  AND status = ?
		ORDER BY starts_utc, id
	`

	rows, err := s.db.QueryContext(ctx, query,
		utcStamp(dateutil.AddDays(dateutil.StartOfDay(to), 1)),
		utcStamp(dateutil.StartOfDay(from)),
		StatusConfirmed,
	)
	if err != nil {
		return nil, storeErr("querying meetings", err)
	}
	defer func() { _ = rows.Close() }()

	var ms []meeting.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating meetings", err)
	}

	return ms, nil
}

// Get retrieves a confirmed meeting by id.
func (s *SQLite) Get(ctx context.Context, id string) (*meeting.Meeting, error) {
	m, err := getMeeting(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create stores a new confirmed meeting with a fresh id.
func (s *SQLite) Create(ctx context.Context, d meeting.Draft) (*meeting.Meeting, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	m := d.Meeting(uuid.NewString())
	now := s.now().UTC().Format(timestampLayout)

	query := `
		INSERT INTO meetings (
			id, title, starts_at, ends_at, starts_utc, ends_utc, day_date,
			location, external_link, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		m.ID,
		m.Title,
		m.StartsAt.Format(timestampLayout),
		m.EndsAt.Format(timestampLayout),
		utcStamp(m.StartsAt),
		utcStamp(m.EndsAt),
		dayDate(m.StartsAt),
		nullable(m.Location),
		nullable(m.ExternalLink),
		StatusConfirmed,
		now,
		now,
	)
	if err != nil {
		return nil, storeErr("inserting meeting", err)
	}

	return &m, nil
}

// Update applies the non-nil fields of p. The merged meeting must still end
// after it starts.
func (s *SQLite) Update(ctx context.Context, id string, p meeting.Patch) error {
	if p.IsEmpty() {
		return meeting.ErrEmptyPatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getMeeting(ctx, tx, id)
	if err != nil {
		return err
	}

	m := p.Apply(current)
	if err := m.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE meetings
		SET title = ?, starts_at = ?, ends_at = ?, starts_utc = ?, ends_utc = ?, day_date = ?,
		    location = ?, external_link = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, query,
		m.Title,
		m.StartsAt.Format(timestampLayout),
		m.EndsAt.Format(timestampLayout),
		utcStamp(m.StartsAt),
		utcStamp(m.EndsAt),
		dayDate(m.StartsAt),
		nullable(m.Location),
		nullable(m.ExternalLink),
		s.now().UTC().Format(timestampLayout),
		id,
	)
	if err != nil {
		return storeErr("updating meeting", err)
	}

	if err := tx.Commit(); err != nil {
		return storeErr("committing transaction", err)
	}
	return nil
}

// Delete marks a meeting as canceled. Canceled meetings are kept but never
// listed again.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	query := `UPDATE meetings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`

	result, err := s.db.ExecContext(ctx, query,
		StatusCanceled,
		s.now().UTC().Format(timestampLayout),
		id,
		StatusConfirmed,
	)
	if err != nil {
		return storeErr("canceling meeting", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("meeting %s: %w", id, meeting.ErrNotFound)
	}

	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getMeeting(ctx context.Context, q queryer, id string) (meeting.Meeting, error) {
	query := `
		SELECT id, title, starts_at, ends_at, location, external_link
		FROM meetings
		WHERE id = ? AND status = ?
	`
	m, err := scanMeeting(q.QueryRowContext(ctx, query, id, StatusConfirmed))
	if errors.Is(err, sql.ErrNoRows) {
		return meeting.Meeting{}, fmt.Errorf("meeting %s: %w", id, meeting.ErrNotFound)
	}
	return m, err
}

func scanMeeting(row scanner) (meeting.Meeting, error) {
	var (
		m            meeting.Meeting
		startsAt     string
		endsAt       string
		location     sql.NullString
		externalLink sql.NullString
	)

	err := row.Scan(&m.ID, &m.Title, &startsAt, &endsAt, &location, &externalLink)
	if errors.Is(err, sql.ErrNoRows) {
		return meeting.Meeting{}, err
	}
	if err != nil {
		return meeting.Meeting{}, storeErr("scanning meeting", err)
	}

	m.StartsAt, err = parseTimestamp(startsAt)
	if err != nil {
		return meeting.Meeting{}, storeErr("parsing starts_at", err)
	}
	m.EndsAt, err = parseTimestamp(endsAt)
	if err != nil {
		return meeting.Meeting{}, storeErr("parsing ends_at", err)
	}
	m.Location = location.String
	m.ExternalLink = externalLink.String

	return m, nil
}

// parseTimestamp parses a stored timestamp, keeping its offset. Rows written
// by older tools may use the space-separated SQLite form, read as UTC.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		timestampLayout,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}

// utcStamp is the sortable UTC form used by the range columns.
func utcStamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// dayDate is the calendar date of t in its own offset.
func dayDate(t time.Time) string {
	return t.Format(dateutil.DateLayout)
}

func nullable(s string) any {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return s
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", meeting.ErrStore, op, err)
}

var _ meeting.Store = (*SQLite)(nil)
