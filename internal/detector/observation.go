// Package detector provides hand landmark detection interfaces and types
// for the gesture pipeline.
package detector

import (
	"errors"
	"fmt"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Handedness labels as emitted by the landmark model. They identify the
// person's physical hand, independent of where it appears in the mirrored
// self-view.
const (
	HandLeft  = "Left"
	HandRight = "Right"
)

// ErrMalformed marks an observation that fails validation. Malformed hands
// are skipped individually; the rest of the frame still processes.
var ErrMalformed = errors.New("malformed observation")

// Point3D represents a 3D point in space with x, y, z coordinates.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandObservation is one detected hand in a single frame: 21 landmarks in
// [0,1] normalized image space plus a handedness label and a confidence
// score. Observations are produced fresh each frame and never retained.
type HandObservation struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Validate reports whether the observation is usable by the gesture
// interpreter. It checks the handedness label, that the confidence score is
// a sane probability, and that every coordinate is a finite number.
// Coordinates slightly outside [0,1] are allowed; the model emits those when
// a hand is partially out of frame.
func (o *HandObservation) Validate() error {
	if o.Handedness != HandLeft && o.Handedness != HandRight {
		return fmt.Errorf("%w: unknown handedness %q", ErrMalformed, o.Handedness)
	}
	if o.Score < 0 || o.Score > 1 || math.IsNaN(o.Score) {
		return fmt.Errorf("%w: score %f out of range", ErrMalformed, o.Score)
	}
	for i, p := range o.Points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return fmt.Errorf("%w: landmark %d is not finite", ErrMalformed, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
