package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// ReplayDetector plays a recorded session back through the pipeline as if
// the observations were coming from a live detector. The frame argument is
// ignored; pair it with a mock camera. Once a non-looping replay runs out
// of frames it keeps reporting empty hands.
type ReplayDetector struct {
	mu     sync.Mutex
	frames [][]detector.HandObservation
	pos    int
	loop   bool
}

// NewReplayDetector loads every recorded frame of the given session.
func NewReplayDetector(store *Store, sessionID string, loop bool) (*ReplayDetector, error) {
	if _, err := store.Sessions().GetByID(sessionID); err != nil {
		return nil, err
	}

	recorded, err := store.Frames().GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	frames := make([][]detector.HandObservation, 0, len(recorded))
	for _, f := range recorded {
		var hands []detector.HandObservation
		if err := json.Unmarshal(f.Hands, &hands); err != nil {
			return nil, fmt.Errorf("failed to decode frame %d: %w", f.Sequence, err)
		}
		frames = append(frames, hands)
	}

	return &ReplayDetector{frames: frames, loop: loop}, nil
}

// Detect returns the next recorded frame's observations.
func (d *ReplayDetector) Detect(frame *gocv.Mat, ts time.Time) ([]detector.HandObservation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pos >= len(d.frames) {
		if !d.loop || len(d.frames) == 0 {
			return nil, nil
		}
		d.pos = 0
	}

	hands := d.frames[d.pos]
	d.pos++
	return hands, nil
}

// Done reports whether a non-looping replay has run out of frames.
func (d *ReplayDetector) Done() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.loop && d.pos >= len(d.frames)
}

// Close releases nothing; replays hold no external resources.
func (d *ReplayDetector) Close() error {
	return nil
}
