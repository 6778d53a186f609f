package config

import (
	"fmt"
	"sync"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/render"
)

// Tuning holds the gesture parameters adjustable at runtime through the
// tuning API, without restarting the session.
type Tuning struct {
	PinchThreshold float64 `json:"pinch_threshold"`
	PositionAlpha  float64 `json:"position_alpha"`
	ScaleAlpha     float64 `json:"scale_alpha"`
	RotationAlpha  float64 `json:"rotation_alpha"`
}

// DefaultTuning mirrors the interpreter's pinch threshold and the render
// driver's smoothing factors.
func DefaultTuning() Tuning {
	rc := render.DefaultConfig()
	return Tuning{
		PinchThreshold: gesture.DefaultPinchThreshold,
		PositionAlpha:  rc.PositionAlpha,
		ScaleAlpha:     rc.ScaleAlpha,
		RotationAlpha:  rc.RotationAlpha,
	}
}

// RenderConfig converts the smoothing alphas for the render driver.
func (t Tuning) RenderConfig() render.Config {
	return render.Config{
		PositionAlpha: t.PositionAlpha,
		ScaleAlpha:    t.ScaleAlpha,
		RotationAlpha: t.RotationAlpha,
	}
}

// Validate rejects parameters outside their working ranges.
func (t Tuning) Validate() error {
	if t.PinchThreshold <= 0 || t.PinchThreshold >= 0.5 {
		return fmt.Errorf("pinch_threshold must be in (0, 0.5), got %v", t.PinchThreshold)
	}
	if err := checkAlpha("position_alpha", t.PositionAlpha); err != nil {
		return err
	}
	if err := checkAlpha("scale_alpha", t.ScaleAlpha); err != nil {
		return err
	}
	return checkAlpha("rotation_alpha", t.RotationAlpha)
}

func checkAlpha(name string, v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %v", name, v)
	}
	return nil
}

// Tuner shares the live tuning between the detection loop, the render
// loop and the tuning API.
type Tuner struct {
	mu      sync.RWMutex
	current Tuning
}

// NewTuner seeds a tuner, falling back to defaults if the initial values
// do not validate.
func NewTuner(initial Tuning) *Tuner {
	if initial.Validate() != nil {
		initial = DefaultTuning()
	}
	return &Tuner{current: initial}
}

// Current returns the live tuning values.
func (t *Tuner) Current() Tuning {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Update replaces the live tuning. Invalid values are rejected whole;
// there are no partial updates.
func (t *Tuner) Update(next Tuning) error {
	if err := next.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	t.current = next
	t.mu.Unlock()
	return nil
}
