package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per capture session
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,

		// Count events table - one row per finger-count transition
		`CREATE TABLE IF NOT EXISTS count_events (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			count INTEGER NOT NULL,
			previous_count INTEGER NOT NULL,
			at_ms INTEGER NOT NULL
		)`,

		// Index for listing a session's events in order
		`CREATE INDEX IF NOT EXISTS idx_count_events_session_id ON count_events(session_id, at_ms)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
