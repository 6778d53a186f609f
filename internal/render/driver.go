// Package render keeps the presentation side of a session: the smoothed
// pose chased toward the control state each tick, the geographic region
// facing the viewer, the ambient overlay motion and the achieved frame
// rate. The render loop owns everything here; nothing in this package
// writes back into the control state.
package render

import (
	"time"

	"github.com/ayusman/mudra/internal/control"
)

// Config holds the per-channel smoothing alphas. Position chases faster
// than rotation and scale so drags feel direct while the globe itself
// feels heavy.
type Config struct {
	PositionAlpha float64 `json:"position_alpha"`
	ScaleAlpha    float64 `json:"scale_alpha"`
	RotationAlpha float64 `json:"rotation_alpha"`
}

// DefaultConfig returns the tuned smoothing factors.
func DefaultConfig() Config {
	return Config{PositionAlpha: 0.2, ScaleAlpha: 0.1, RotationAlpha: 0.1}
}

// normalized replaces alphas outside (0, 1] with their defaults.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.PositionAlpha <= 0 || c.PositionAlpha > 1 {
		c.PositionAlpha = def.PositionAlpha
	}
	if c.ScaleAlpha <= 0 || c.ScaleAlpha > 1 {
		c.ScaleAlpha = def.ScaleAlpha
	}
	if c.RotationAlpha <= 0 || c.RotationAlpha > 1 {
		c.RotationAlpha = def.RotationAlpha
	}
	return c
}

// Smoothed is the pose handed to the presentation layer each tick.
type Smoothed struct {
	RotationX    float64 `json:"rotationX"`
	RotationY    float64 `json:"rotationY"`
	Scale        float64 `json:"scale"`
	PositionX    float64 `json:"positionX"`
	PositionY    float64 `json:"positionY"`
	ActiveRegion string  `json:"activeRegion"`
}

// Driver advances the smoothed pose toward the control state. Only the
// render loop touches it, so it carries no lock.
type Driver struct {
	pose Smoothed
}

// NewDriver seeds the smoothed pose from the session's starting state.
func NewDriver(initial control.State) *Driver {
	return &Driver{pose: Smoothed{
		RotationX:    initial.RotationX,
		RotationY:    initial.RotationY,
		Scale:        initial.Scale,
		PositionX:    initial.PositionX,
		PositionY:    initial.PositionY,
		ActiveRegion: Region(initial.RotationY),
	}}
}

// Step moves each channel a fixed fraction of its remaining distance to
// the target. A tick with no elapsed time returns the pose unchanged, so
// a stalled clock cannot double-apply smoothing. The region label is
// rederived from the smoothed yaw on every step.
func (d *Driver) Step(target control.State, elapsed time.Duration, cfg Config) Smoothed {
	if elapsed <= 0 {
		return d.pose
	}
	cfg = cfg.normalized()
	d.pose.PositionX = approach(d.pose.PositionX, target.PositionX, cfg.PositionAlpha)
	d.pose.PositionY = approach(d.pose.PositionY, target.PositionY, cfg.PositionAlpha)
	d.pose.Scale = approach(d.pose.Scale, target.Scale, cfg.ScaleAlpha)
	d.pose.RotationX = approach(d.pose.RotationX, target.RotationX, cfg.RotationAlpha)
	d.pose.RotationY = approach(d.pose.RotationY, target.RotationY, cfg.RotationAlpha)
	d.pose.ActiveRegion = Region(d.pose.RotationY)
	return d.pose
}

// Pose returns the current smoothed pose without advancing it.
func (d *Driver) Pose() Smoothed {
	return d.pose
}

func approach(current, target, alpha float64) float64 {
	return current + (target-current)*alpha
}
