package control

import (
	"sync"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
)

// Reducer folds one frame's gesture events into the control state. Roles
// are fixed by handedness: the left hand drags position and only while
// pinching, the right hand steers rotation and scale on every frame it is
// visible. A frame with no events leaves the state untouched.
type Reducer struct {
	cell *Cell

	mu       sync.RWMutex
	viewport Viewport
	status   GestureStatus
}

// NewReducer wires a reducer to the session's state cell. The viewport is
// used to convert palm travel into world units for position drags.
func NewReducer(cell *Cell, viewport Viewport) *Reducer {
	if viewport.Validate() != nil {
		viewport = DefaultViewport()
	}
	return &Reducer{cell: cell, viewport: viewport, status: emptyStatus()}
}

// Apply folds the frame's events into the state and rebuilds the HUD
// status. Events arrive in detection order; if two carry the same
// handedness the later one wins. Called only from the detection loop.
func (r *Reducer) Apply(events []gesture.Event) {
	r.mu.RLock()
	vp := r.viewport
	r.mu.RUnlock()

	status := emptyStatus()
	if len(events) > 0 {
		r.cell.Update(func(s *State) {
			for _, e := range events {
				switch e.Handedness {
				case detector.HandLeft:
					status.Left = applyLeft(s, e, vp)
				case detector.HandRight:
					status.Right = applyRight(s, e)
				}
			}
		})
	}

	r.mu.Lock()
	r.status = status
	r.mu.Unlock()
}

// applyLeft maps the palm onto world position while the pinch is held.
// Without a pinch the hand is tracked but moves nothing.
func applyLeft(s *State, e gesture.Event, vp Viewport) HandStatus {
	if !e.IsPinching {
		return HandStatus{Present: true, Mode: ModeIdle}
	}
	width := vp.Width()
	height := vp.Height()
	s.PositionX = clamp((e.PalmX-0.5)*width, -width/2, width/2)
	s.PositionY = clamp(-(e.PalmY-0.5)*height, -height/2, height/2)
	return HandStatus{Present: true, Mode: ModeDragging}
}

// applyRight maps the palm onto rotation and the pinch distance onto scale.
func applyRight(s *State, e gesture.Event) HandStatus {
	s.RotationY = clamp((e.PalmX-0.5)*rotationYFactor, -rotationYFactor/2, rotationYFactor/2)
	s.RotationX = clamp((e.PalmY-0.5)*rotationXFactor, -rotationXFactor/2, rotationXFactor/2)
	s.Scale = scaleFor(e.PinchDistance)
	return HandStatus{Present: true, Mode: ModeRotate}
}

// scaleFor maps a pinch distance to a globe scale, clamped to the scale
// bounds. Fingers touching gives 0.5, fully spread saturates at 3.5.
func scaleFor(pinchDistance float64) float64 {
	return clamp(scaleBase+pinchDistance*scalePerPinch, MinScale, MaxScale)
}

// Status returns the HUD record from the most recent Apply.
func (r *Reducer) Status() GestureStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Viewport returns the viewport used for position mapping.
func (r *Reducer) Viewport() Viewport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.viewport
}

// SetViewport swaps the position-mapping geometry, typically when the
// dashboard window is resized. Takes effect on the next frame.
func (r *Reducer) SetViewport(vp Viewport) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.viewport = vp
	r.mu.Unlock()
	return nil
}
