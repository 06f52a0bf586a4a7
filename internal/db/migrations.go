package db

import "fmt"

// migrations are applied in order. The index of the last applied entry plus
// one is kept in PRAGMA user_version.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS meetings (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		starts_at     TEXT NOT NULL,
		ends_at       TEXT NOT NULL,
		starts_utc    TEXT NOT NULL,
		day_date      DATE NOT NULL,
		location      TEXT,
		external_link TEXT,
		status        TEXT NOT NULL DEFAULT 'confirmed' CHECK(status IN ('confirmed', 'canceled')),
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_meetings_day ON meetings(day_date);
	CREATE INDEX IF NOT EXISTS idx_meetings_status ON meetings(status);
	`,
	// ends_utc lets List select every meeting that overlaps a range.
	`
	ALTER TABLE meetings ADD COLUMN ends_utc TEXT NOT NULL DEFAULT '';
	UPDATE meetings SET ends_utc = strftime('%Y-%m-%dT%H:%M:%SZ', ends_at);
	CREATE INDEX IF NOT EXISTS idx_meetings_span ON meetings(starts_utc, ends_utc);
	`,
}

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("applying migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := s.db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("recording schema version %d: %w", i+1, err)
		}
	}

	return nil
}

// SchemaVersion returns the applied schema version.
func (s *SQLite) SchemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version)
	return version, err
}
