// Package gesture converts per-frame hand observations into discrete
// gesture events: palm position, pinch distance and a pinch classification.
package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// DefaultPinchThreshold is the normalized thumb-to-index distance below
// which a hand counts as pinching. Tunable at runtime.
const DefaultPinchThreshold = 0.05

// Event is the interpreted gesture for one hand in one frame. It is
// ephemeral: produced per observation and consumed immediately by the
// control reducer.
type Event struct {
	// Handedness is the physical hand label from the detector.
	Handedness string

	// PalmX, PalmY are the palm center in mirrored visual coordinates:
	// x is flipped so the event matches what the user sees in the
	// self-view feed.
	PalmX float64
	PalmY float64

	// PinchDistance is the thumb-tip to index-tip distance in normalized
	// image space.
	PinchDistance float64

	// IsPinching is true when PinchDistance is below the threshold.
	IsPinching bool
}

// Interpret converts one hand observation into a gesture event.
//
// The palm position is taken from the middle-finger MCP landmark, a stable
// palm-center point that jitters far less than any fingertip. Pinch distance
// is measured between thumb tip and index tip in x/y only; landmark z is
// model-relative depth and not comparable at this scale. A non-positive
// threshold falls back to DefaultPinchThreshold.
//
// Interpret is pure: no temporal state, and each hand in a frame is
// processed independently of the other. Malformed observations are rejected
// with an error wrapping detector.ErrMalformed so the caller can skip just
// that hand.
func Interpret(obs detector.HandObservation, pinchThreshold float64) (Event, error) {
	if err := obs.Validate(); err != nil {
		return Event{}, err
	}

	if pinchThreshold <= 0 {
		pinchThreshold = DefaultPinchThreshold
	}

	palm := obs.Points[detector.MiddleMCP]
	pinch := dist2D(obs.Points[detector.ThumbTip], obs.Points[detector.IndexTip])

	return Event{
		Handedness:    obs.Handedness,
		PalmX:         1 - palm.X, // mirror to match the self-view
		PalmY:         palm.Y,
		PinchDistance: pinch,
		IsPinching:    pinch < pinchThreshold,
	}, nil
}

func dist2D(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
