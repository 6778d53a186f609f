package control

import (
	"fmt"
	"math"
)

// Viewport describes the camera geometry of the rendered scene. Palm drag
// is mapped into world units through it, so a drag across the full frame
// always carries the globe across the full visible area regardless of
// window shape.
type Viewport struct {
	FOVDegrees float64 `json:"fovDegrees"`
	Aspect     float64 `json:"aspect"`
	Distance   float64 `json:"distance"`
}

// DefaultViewport matches the dashboard's camera: 75 degree vertical FOV,
// 16:9 aspect, globe 5 units from the camera.
func DefaultViewport() Viewport {
	return Viewport{FOVDegrees: 75, Aspect: 16.0 / 9.0, Distance: 5}
}

// Height returns the visible world height at the globe's distance.
func (v Viewport) Height() float64 {
	return 2 * v.Distance * math.Tan(v.FOVDegrees*math.Pi/360)
}

// Width returns the visible world width at the globe's distance.
func (v Viewport) Width() float64 {
	return v.Height() * v.Aspect
}

// Validate rejects geometry that would collapse or invert the mapping.
func (v Viewport) Validate() error {
	if math.IsNaN(v.FOVDegrees) || v.FOVDegrees <= 0 || v.FOVDegrees >= 180 {
		return fmt.Errorf("fov must be in (0, 180) degrees, got %v", v.FOVDegrees)
	}
	if math.IsNaN(v.Aspect) || v.Aspect <= 0 {
		return fmt.Errorf("aspect must be positive, got %v", v.Aspect)
	}
	if math.IsNaN(v.Distance) || v.Distance <= 0 {
		return fmt.Errorf("distance must be positive, got %v", v.Distance)
	}
	return nil
}
