package session

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Frame is one recorded detection frame: the observations that entered
// the pipeline and the control state they produced, both stored as JSON.
type Frame struct {
	ID         int64           `json:"id"`
	SessionID  string          `json:"session_id"`
	Sequence   int             `json:"sequence"`
	CapturedAt time.Time       `json:"captured_at"`
	Hands      json.RawMessage `json:"hands"`
	State      json.RawMessage `json:"state"`
}

// FrameRepository provides operations for recorded frames.
type FrameRepository struct {
	db *sql.DB
}

// Frames returns the frame repository for this store.
func (s *Store) Frames() *FrameRepository {
	return &FrameRepository{db: s.db}
}

// Append inserts a batch of frames for a session in a single transaction.
// It also bumps the frame count on the session.
func (r *FrameRepository) Append(sessionID string, frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO session_frames (session_id, sequence, captured_at, hands, state) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(sessionID, f.Sequence, f.CapturedAt, string(f.Hands), string(f.State)); err != nil {
			return err
		}
	}

	// Keep the session's frame count current even if the run never
	// finishes cleanly
	_, err = tx.Exec(`UPDATE sessions SET frames = frames + ? WHERE id = ?`,
		len(frames), sessionID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetBySessionID retrieves all frames for a session in recording order.
func (r *FrameRepository) GetBySessionID(sessionID string) ([]Frame, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, sequence, captured_at, hands, state
		 FROM session_frames
		 WHERE session_id = ?
		 ORDER BY sequence`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var hands, state string
		if err := rows.Scan(&f.ID, &f.SessionID, &f.Sequence, &f.CapturedAt, &hands, &state); err != nil {
			return nil, err
		}
		f.Hands = json.RawMessage(hands)
		f.State = json.RawMessage(state)
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return frames, nil
}

// DeleteBySessionID removes all frames for a given session.
func (r *FrameRepository) DeleteBySessionID(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM session_frames WHERE session_id = ?`, sessionID)
	return err
}
