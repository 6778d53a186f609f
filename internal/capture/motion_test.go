package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewMotionDetector(t *testing.T) {
	md := NewMotionDetector(1.0)
	if md == nil {
		t.Fatal("NewMotionDetector returned nil")
	}
	defer md.Close()

	if md.threshold != 1.0 {
		t.Errorf("threshold = %f, want 1.0", md.threshold)
	}
	if md.initialized {
		t.Error("motion detector should not be initialized initially")
	}
}

func TestMotionDetector_FirstFrameSeedsBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	detected, changePercent := md.Detect(&frame)
	if detected {
		t.Error("first frame should not detect motion")
	}
	if changePercent != 0 {
		t.Errorf("first frame changePercent = %f, want 0", changePercent)
	}
	if !md.initialized {
		t.Error("detector should be initialized after first Detect")
	}
}

func TestMotionDetector_StillVsMovingScene(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0) // 1% threshold
	defer md.Close()

	black := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer black.Close()

	white := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.SetTo(gocv.NewScalar(255, 255, 255, 0))

	md.Detect(&black)

	// Identical frame: no motion
	detected, changePercent := md.Detect(&black)
	if detected {
		t.Errorf("identical frames should not detect motion, changePercent = %f", changePercent)
	}

	// Everything changes: motion
	detected, changePercent = md.Detect(&white)
	if !detected {
		t.Errorf("black to white should detect motion, changePercent = %f", changePercent)
	}
	if changePercent < 50.0 {
		t.Errorf("changePercent = %f, expected > 50 for black to white transition", changePercent)
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	md.Detect(&frame)
	md.Reset()

	if md.initialized {
		t.Error("detector should not be initialized after Reset")
	}
	if !md.prevGray.Empty() {
		t.Error("prevGray should be empty after Reset")
	}

	// Next frame seeds a fresh baseline
	detected, _ := md.Detect(&frame)
	if detected {
		t.Error("first frame after Reset should not detect motion")
	}
}

func TestMotionDetector_SetThreshold(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	md.SetThreshold(5.0)
	if md.threshold != 5.0 {
		t.Errorf("threshold = %f, want 5.0 after SetThreshold", md.threshold)
	}

	// Non-positive values are ignored
	md.SetThreshold(-1.0)
	if md.threshold != 5.0 {
		t.Errorf("negative threshold should be ignored, got %f, want 5.0", md.threshold)
	}
	md.SetThreshold(0)
	if md.threshold != 5.0 {
		t.Errorf("zero threshold should be ignored, got %f, want 5.0", md.threshold)
	}
}

func TestMotionDetector_Close_Multiple(t *testing.T) {
	md := NewMotionDetector(1.0)

	// Close multiple times should not panic
	md.Close()
	md.Close()
}
