package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
)

// defaultFlushEvery is how many frames the recorder buffers before
// writing a batch. At active detection rate this is about two seconds.
const defaultFlushEvery = 30

// Recorder captures each processed detection frame of a live run. Frames
// are buffered and flushed in batches so the detection loop does not wait
// on a disk write per frame.
type Recorder struct {
	store *Store

	mu         sync.Mutex
	sessionID  string
	seq        int
	buf        []Frame
	flushEvery int
}

// NewRecorder returns a recorder writing to the given store.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store, flushEvery: defaultFlushEvery}
}

// Start opens a new session and returns its ID. Starting while a session
// is active stops the previous one first.
func (r *Recorder) Start(note string) (string, error) {
	if err := r.Stop(); err != nil {
		return "", err
	}

	id := uuid.New().String()
	sess := &Session{ID: id, StartedAt: time.Now(), Note: note}
	if err := r.store.Sessions().Create(sess); err != nil {
		return "", err
	}

	r.mu.Lock()
	r.sessionID = id
	r.seq = 0
	r.buf = r.buf[:0]
	r.mu.Unlock()
	return id, nil
}

// Record appends one detection frame to the active session. A no-op when
// no session is active.
func (r *Recorder) Record(capturedAt time.Time, hands []detector.HandObservation, state control.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessionID == "" {
		return nil
	}

	handsJSON, err := json.Marshal(hands)
	if err != nil {
		return err
	}
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return err
	}

	r.buf = append(r.buf, Frame{
		Sequence:   r.seq,
		CapturedAt: capturedAt,
		Hands:      handsJSON,
		State:      stateJSON,
	})
	r.seq++

	if len(r.buf) >= r.flushEvery {
		return r.flushLocked()
	}
	return nil
}

func (r *Recorder) flushLocked() error {
	if len(r.buf) == 0 {
		return nil
	}
	if err := r.store.Frames().Append(r.sessionID, r.buf); err != nil {
		return err
	}
	r.buf = r.buf[:0]
	return nil
}

// Stop flushes buffered frames and closes the active session. A no-op
// when nothing is recording.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessionID == "" {
		return nil
	}

	if err := r.flushLocked(); err != nil {
		return err
	}
	err := r.store.Sessions().Finish(r.sessionID, time.Now())
	r.sessionID = ""
	r.seq = 0
	return err
}

// Active reports whether a session is currently being recorded.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID != ""
}

// SessionID returns the active session's ID, or empty when idle.
func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}
