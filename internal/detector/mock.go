package detector

import (
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandObservation
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandObservation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat, ts time.Time) ([]HandObservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// thumbSide returns the x direction the thumb points for a hand as seen in
// the raw (unmirrored) camera image.
func thumbSide(handedness string) float64 {
	if handedness == HandLeft {
		return -1
	}
	return 1
}

// PinchObservation returns a preset observation of a pinching hand with its
// palm center (middle MCP) at the given raw image coordinates. Thumb tip and
// index tip sit ~0.014 apart, well inside the pinch threshold.
func PinchObservation(handedness string, palmX, palmY float64) HandObservation {
	obs := baseHand(handedness, palmX, palmY)
	s := thumbSide(handedness)

	// Thumb curls in to meet the index finger
	obs.Points[ThumbCMC] = Point3D{X: palmX + s*0.06, Y: palmY + 0.06, Z: 0.0}
	obs.Points[ThumbMCP] = Point3D{X: palmX + s*0.06, Y: palmY + 0.01, Z: 0.0}
	obs.Points[ThumbIP] = Point3D{X: palmX + s*0.04, Y: palmY - 0.03, Z: 0.0}
	obs.Points[ThumbTip] = Point3D{X: palmX + s*0.02, Y: palmY - 0.06, Z: 0.0}

	// Index finger bends down to the thumb
	obs.Points[IndexPIP] = Point3D{X: palmX + s*0.05, Y: palmY - 0.08, Z: 0.0}
	obs.Points[IndexDIP] = Point3D{X: palmX + s*0.04, Y: palmY - 0.08, Z: 0.0}
	obs.Points[IndexTip] = Point3D{X: palmX + s*0.03, Y: palmY - 0.07, Z: 0.0}

	return obs
}

// OpenHandObservation returns a preset observation of a spread hand with its
// palm center at the given raw image coordinates. Thumb tip and index tip
// are ~0.16 apart, far outside the pinch threshold.
func OpenHandObservation(handedness string, palmX, palmY float64) HandObservation {
	obs := baseHand(handedness, palmX, palmY)
	s := thumbSide(handedness)

	// Thumb extended to the side
	obs.Points[ThumbCMC] = Point3D{X: palmX + s*0.06, Y: palmY + 0.07, Z: 0.0}
	obs.Points[ThumbMCP] = Point3D{X: palmX + s*0.09, Y: palmY + 0.03, Z: 0.0}
	obs.Points[ThumbIP] = Point3D{X: palmX + s*0.11, Y: palmY, Z: 0.0}
	obs.Points[ThumbTip] = Point3D{X: palmX + s*0.12, Y: palmY - 0.02, Z: 0.0}

	// Index finger extended upward
	obs.Points[IndexPIP] = Point3D{X: palmX + s*0.04, Y: palmY - 0.07, Z: 0.0}
	obs.Points[IndexDIP] = Point3D{X: palmX + s*0.03, Y: palmY - 0.11, Z: 0.0}
	obs.Points[IndexTip] = Point3D{X: palmX + s*0.02, Y: palmY - 0.14, Z: 0.0}

	return obs
}

// ObservationWithPinch returns an observation whose thumb-to-index distance
// is exactly the given value, for tests that exercise the scale mapping.
func ObservationWithPinch(handedness string, palmX, palmY, pinch float64) HandObservation {
	obs := baseHand(handedness, palmX, palmY)

	obs.Points[ThumbTip] = Point3D{X: palmX - pinch/2, Y: palmY - 0.08, Z: 0.0}
	obs.Points[IndexTip] = Point3D{X: palmX + pinch/2, Y: palmY - 0.08, Z: 0.0}

	return obs
}

// baseHand lays out a neutral 21-point hand around a palm center. Fixture
// functions adjust the thumb and index chains on top of it.
func baseHand(handedness string, palmX, palmY float64) HandObservation {
	obs := HandObservation{
		Handedness: handedness,
		Score:      0.95,
	}
	s := thumbSide(handedness)

	obs.Points[Wrist] = Point3D{X: palmX, Y: palmY + 0.12, Z: 0.0}

	// Knuckle row, thumb side to pinky side
	obs.Points[IndexMCP] = Point3D{X: palmX + s*0.05, Y: palmY - 0.01, Z: 0.0}
	obs.Points[MiddleMCP] = Point3D{X: palmX, Y: palmY, Z: 0.0}
	obs.Points[RingMCP] = Point3D{X: palmX - s*0.05, Y: palmY, Z: 0.0}
	obs.Points[PinkyMCP] = Point3D{X: palmX - s*0.09, Y: palmY + 0.02, Z: 0.0}

	// Thumb resting beside the palm
	obs.Points[ThumbCMC] = Point3D{X: palmX + s*0.06, Y: palmY + 0.07, Z: 0.0}
	obs.Points[ThumbMCP] = Point3D{X: palmX + s*0.08, Y: palmY + 0.03, Z: 0.0}
	obs.Points[ThumbIP] = Point3D{X: palmX + s*0.09, Y: palmY, Z: 0.0}
	obs.Points[ThumbTip] = Point3D{X: palmX + s*0.10, Y: palmY - 0.02, Z: 0.0}

	// Index finger
	obs.Points[IndexPIP] = Point3D{X: palmX + s*0.05, Y: palmY - 0.06, Z: 0.0}
	obs.Points[IndexDIP] = Point3D{X: palmX + s*0.05, Y: palmY - 0.10, Z: 0.0}
	obs.Points[IndexTip] = Point3D{X: palmX + s*0.05, Y: palmY - 0.13, Z: 0.0}

	// Middle finger
	obs.Points[MiddlePIP] = Point3D{X: palmX, Y: palmY - 0.07, Z: 0.0}
	obs.Points[MiddleDIP] = Point3D{X: palmX, Y: palmY - 0.12, Z: 0.0}
	obs.Points[MiddleTip] = Point3D{X: palmX, Y: palmY - 0.15, Z: 0.0}

	// Ring finger
	obs.Points[RingPIP] = Point3D{X: palmX - s*0.05, Y: palmY - 0.06, Z: 0.0}
	obs.Points[RingDIP] = Point3D{X: palmX - s*0.05, Y: palmY - 0.10, Z: 0.0}
	obs.Points[RingTip] = Point3D{X: palmX - s*0.05, Y: palmY - 0.13, Z: 0.0}

	// Pinky finger
	obs.Points[PinkyPIP] = Point3D{X: palmX - s*0.09, Y: palmY - 0.03, Z: 0.0}
	obs.Points[PinkyDIP] = Point3D{X: palmX - s*0.09, Y: palmY - 0.06, Z: 0.0}
	obs.Points[PinkyTip] = Point3D{X: palmX - s*0.09, Y: palmY - 0.09, Z: 0.0}

	return obs
}
