package session

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per recorded tracking run
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			frames INTEGER NOT NULL DEFAULT 0,
			note TEXT NOT NULL DEFAULT ''
		)`,

		// Session frames table - the observations and resulting control
		// state for every processed detection frame
		`CREATE TABLE IF NOT EXISTS session_frames (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			sequence INTEGER NOT NULL,
			captured_at DATETIME NOT NULL,
			hands TEXT NOT NULL,
			state TEXT NOT NULL
		)`,

		// Indexes for replay queries
		`CREATE INDEX IF NOT EXISTS idx_session_frames_session_id ON session_frames(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_session_frames_sequence ON session_frames(session_id, sequence)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
