package render

import (
	"math"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/control"
)

const epsilon = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

const tick = 33 * time.Millisecond

func TestNewDriverSeedsFromState(t *testing.T) {
	initial := control.State{RotationY: math.Pi, Scale: 2, PositionX: 1.5}
	d := NewDriver(initial)

	pose := d.Pose()
	if !floatEquals(pose.RotationY, math.Pi) {
		t.Errorf("expected rotationY pi, got %v", pose.RotationY)
	}
	if pose.Scale != 2 {
		t.Errorf("expected scale 2, got %v", pose.Scale)
	}
	if pose.PositionX != 1.5 {
		t.Errorf("expected positionX 1.5, got %v", pose.PositionX)
	}
	if pose.ActiveRegion != RegionPacific {
		t.Errorf("expected region %q at half turn, got %q", RegionPacific, pose.ActiveRegion)
	}
}

func TestStepMovesFractionOfRemainingDistance(t *testing.T) {
	d := NewDriver(control.DefaultState())
	target := control.State{Scale: 2, PositionX: 10}

	pose := d.Step(target, tick, DefaultConfig())

	// Scale starts at 1 and chases 2 with alpha 0.1.
	if !floatEquals(pose.Scale, 1.1) {
		t.Errorf("expected scale 1.1 after one step, got %v", pose.Scale)
	}
	// Position starts at 0 and chases 10 with alpha 0.2.
	if !floatEquals(pose.PositionX, 2) {
		t.Errorf("expected positionX 2 after one step, got %v", pose.PositionX)
	}
}

func TestStepUsesDistinctAlphasPerChannel(t *testing.T) {
	d := NewDriver(control.DefaultState())
	target := control.State{RotationX: 1, RotationY: 1, Scale: 2, PositionX: 1, PositionY: 1}

	pose := d.Step(target, tick, DefaultConfig())

	if !floatEquals(pose.PositionX, 0.2) || !floatEquals(pose.PositionY, 0.2) {
		t.Errorf("expected position to move 0.2 of the way, got (%v, %v)", pose.PositionX, pose.PositionY)
	}
	if !floatEquals(pose.RotationX, 0.1) || !floatEquals(pose.RotationY, 0.1) {
		t.Errorf("expected rotation to move 0.1 of the way, got (%v, %v)", pose.RotationX, pose.RotationY)
	}
	if !floatEquals(pose.Scale, 1.1) {
		t.Errorf("expected scale to move 0.1 of the way, got %v", pose.Scale)
	}
}

func TestStepZeroElapsedIsNoop(t *testing.T) {
	d := NewDriver(control.DefaultState())
	target := control.State{RotationY: 2, Scale: 3, PositionX: 5}

	moved := d.Step(target, tick, DefaultConfig())

	if got := d.Step(target, 0, DefaultConfig()); got != moved {
		t.Errorf("zero elapsed changed pose from %+v to %+v", moved, got)
	}
	if got := d.Step(target, -5*time.Millisecond, DefaultConfig()); got != moved {
		t.Errorf("negative elapsed changed pose from %+v to %+v", moved, got)
	}
}

func TestStepConvergesWithinOnePercent(t *testing.T) {
	d := NewDriver(control.DefaultState())
	target := control.State{RotationY: 1, Scale: 1}

	for i := 0; i < 50; i++ {
		d.Step(target, tick, DefaultConfig())
	}

	// Fifty steps at alpha 0.1 leave under 1% of the gap: 0.9^50 < 0.01.
	if diff := math.Abs(d.Pose().RotationY - 1); diff >= 0.01 {
		t.Errorf("expected rotationY within 1%% of target after 50 steps, off by %v", diff)
	}
}

func TestStepAlphaOneSnapsToTarget(t *testing.T) {
	d := NewDriver(control.DefaultState())
	target := control.State{RotationX: -1, RotationY: 2.5, Scale: 3, PositionX: 4, PositionY: -4}
	snap := Config{PositionAlpha: 1, ScaleAlpha: 1, RotationAlpha: 1}

	pose := d.Step(target, tick, snap)

	if pose.RotationX != target.RotationX || pose.RotationY != target.RotationY ||
		pose.Scale != target.Scale || pose.PositionX != target.PositionX ||
		pose.PositionY != target.PositionY {
		t.Errorf("alpha 1 should snap to %+v, got %+v", target, pose)
	}
}

func TestStepBadAlphasFallBackToDefaults(t *testing.T) {
	d := NewDriver(control.DefaultState())
	target := control.State{PositionX: 1, Scale: 2}
	bad := Config{PositionAlpha: -1, ScaleAlpha: 2, RotationAlpha: 0}

	pose := d.Step(target, tick, bad)

	if !floatEquals(pose.PositionX, 0.2) {
		t.Errorf("expected default position alpha, got positionX %v", pose.PositionX)
	}
	if !floatEquals(pose.Scale, 1.1) {
		t.Errorf("expected default scale alpha, got scale %v", pose.Scale)
	}
}

func TestStepDerivesRegionFromSmoothedYaw(t *testing.T) {
	d := NewDriver(control.DefaultState())
	snap := Config{PositionAlpha: 1, ScaleAlpha: 1, RotationAlpha: 1}

	pose := d.Step(control.State{RotationY: math.Pi, Scale: 1}, tick, snap)
	if pose.ActiveRegion != RegionPacific {
		t.Errorf("expected %q at half turn, got %q", RegionPacific, pose.ActiveRegion)
	}

	pose = d.Step(control.State{Scale: 1}, tick, snap)
	if pose.ActiveRegion != RegionAtlantic {
		t.Errorf("expected %q back at zero yaw, got %q", RegionAtlantic, pose.ActiveRegion)
	}
}

func TestStepRegionTracksSmoothedNotTarget(t *testing.T) {
	d := NewDriver(control.DefaultState())
	target := control.State{RotationY: math.Pi, Scale: 1}

	// One inertial step barely moves the yaw, so the label must still be
	// the starting hemisphere even though the target is half a turn away.
	pose := d.Step(target, tick, DefaultConfig())
	if pose.ActiveRegion != RegionAtlantic {
		t.Errorf("expected %q while still near zero yaw, got %q", RegionAtlantic, pose.ActiveRegion)
	}
}
