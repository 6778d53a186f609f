// Package control folds gesture events into the session's control state:
// the rotation, scale and position of the rendered globe. One State exists
// per running session; it is created with defaults at session start, never
// reset mid-session, and only ever nudged by the reducer.
package control

// Scale bounds for the globe. No gesture can push scale outside them.
const (
	MinScale = 0.5
	MaxScale = 3.5
)

// Mapping factors from visual palm coordinates onto the globe.
const (
	// rotationYFactor spreads horizontal palm travel over ±3 radians.
	rotationYFactor = 6.0
	// rotationXFactor spreads vertical palm travel over ±2 radians.
	rotationXFactor = 4.0
	// scaleBase and scalePerPinch map pinch distance to scale before
	// clamping: scale = scaleBase + distance*scalePerPinch.
	scaleBase     = 0.5
	scalePerPinch = 10.0
)

// State is the session's single long-lived control state. Rotation is in
// radians, position in world units. Writes happen only in the detection
// loop, through a Cell.
type State struct {
	RotationX float64 `json:"rotationX"`
	RotationY float64 `json:"rotationY"`
	Scale     float64 `json:"scale"`
	PositionX float64 `json:"positionX"`
	PositionY float64 `json:"positionY"`
}

// DefaultState returns the session-start state: identity rotation, unit
// scale, centered position.
func DefaultState() State {
	return State{Scale: 1}
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
