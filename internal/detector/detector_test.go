package detector

import (
	"errors"
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func pinchDistanceOf(obs HandObservation) float64 {
	dx := obs.Points[ThumbTip].X - obs.Points[IndexTip].X
	dy := obs.Points[ThumbTip].Y - obs.Points[IndexTip].Y
	return math.Sqrt(dx*dx + dy*dy)
}

func TestHandObservation_Validate(t *testing.T) {
	t.Run("accepts a well-formed hand", func(t *testing.T) {
		obs := OpenHandObservation(HandRight, 0.5, 0.5)
		if err := obs.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("accepts coordinates slightly outside the frame", func(t *testing.T) {
		obs := OpenHandObservation(HandLeft, 0.02, 0.5)
		obs.Points[PinkyTip].X = -0.05
		if err := obs.Validate(); err != nil {
			t.Errorf("unexpected error for near-edge hand: %v", err)
		}
	})

	t.Run("rejects unknown handedness", func(t *testing.T) {
		obs := OpenHandObservation(HandRight, 0.5, 0.5)
		obs.Handedness = "Both"

		err := obs.Validate()
		if err == nil {
			t.Fatal("expected error for unknown handedness")
		}
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("expected ErrMalformed, got %v", err)
		}
	})

	t.Run("rejects NaN landmark", func(t *testing.T) {
		obs := OpenHandObservation(HandRight, 0.5, 0.5)
		obs.Points[IndexTip].Y = math.NaN()

		if err := obs.Validate(); !errors.Is(err, ErrMalformed) {
			t.Errorf("expected ErrMalformed, got %v", err)
		}
	})

	t.Run("rejects infinite landmark", func(t *testing.T) {
		obs := OpenHandObservation(HandLeft, 0.5, 0.5)
		obs.Points[Wrist].Z = math.Inf(1)

		if err := obs.Validate(); !errors.Is(err, ErrMalformed) {
			t.Errorf("expected ErrMalformed, got %v", err)
		}
	})

	t.Run("rejects out-of-range score", func(t *testing.T) {
		obs := OpenHandObservation(HandRight, 0.5, 0.5)
		obs.Score = 1.3

		if err := obs.Validate(); !errors.Is(err, ErrMalformed) {
			t.Errorf("expected ErrMalformed, got %v", err)
		}
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil, time.Now())

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()

		expectedHands := []HandObservation{
			PinchObservation(HandLeft, 0.3, 0.5),
			OpenHandObservation(HandRight, 0.7, 0.5),
		}
		mock.SetHands(expectedHands)

		hands, err := mock.Detect(nil, time.Now())

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil, time.Now())

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		mock := NewMockDetector()

		err := mock.Close()

		if err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}

func TestPinchObservation(t *testing.T) {
	obs := PinchObservation(HandRight, 0.5, 0.5)

	t.Run("has correct handedness and score", func(t *testing.T) {
		if obs.Handedness != HandRight {
			t.Errorf("expected handedness Right, got %s", obs.Handedness)
		}
		if obs.Score < 0.9 {
			t.Errorf("expected score >= 0.9, got %f", obs.Score)
		}
	})

	t.Run("palm center lands at the requested position", func(t *testing.T) {
		palm := obs.Points[MiddleMCP]
		if math.Abs(palm.X-0.5) > epsilon || math.Abs(palm.Y-0.5) > epsilon {
			t.Errorf("palm center = (%f, %f), want (0.5, 0.5)", palm.X, palm.Y)
		}
	})

	t.Run("thumb and index tips are close together", func(t *testing.T) {
		d := pinchDistanceOf(obs)
		if d >= 0.05 {
			t.Errorf("pinch distance = %f, want < 0.05", d)
		}
		if d == 0 {
			t.Error("pinch distance should be nonzero for a realistic hand")
		}
	})

	t.Run("left hand mirrors the thumb side", func(t *testing.T) {
		left := PinchObservation(HandLeft, 0.5, 0.5)
		if left.Points[ThumbCMC].X >= 0.5 {
			t.Error("left hand thumb should sit on the negative x side of the palm")
		}
	})
}

func TestOpenHandObservation(t *testing.T) {
	obs := OpenHandObservation(HandRight, 0.4, 0.6)

	t.Run("palm center lands at the requested position", func(t *testing.T) {
		palm := obs.Points[MiddleMCP]
		if math.Abs(palm.X-0.4) > epsilon || math.Abs(palm.Y-0.6) > epsilon {
			t.Errorf("palm center = (%f, %f), want (0.4, 0.6)", palm.X, palm.Y)
		}
	})

	t.Run("thumb and index tips are spread apart", func(t *testing.T) {
		d := pinchDistanceOf(obs)
		if d <= 0.05 {
			t.Errorf("pinch distance = %f, want > 0.05", d)
		}
	})

	t.Run("fingers extend above the knuckle row", func(t *testing.T) {
		if obs.Points[IndexTip].Y >= obs.Points[IndexMCP].Y {
			t.Error("index tip should be above index MCP (lower Y value)")
		}
		if obs.Points[MiddleTip].Y >= obs.Points[MiddleMCP].Y {
			t.Error("middle tip should be above middle MCP (lower Y value)")
		}
	})
}

func TestObservationWithPinch(t *testing.T) {
	distances := []float64{0.0, 0.02, 0.05, 0.25, 0.4}

	for _, want := range distances {
		obs := ObservationWithPinch(HandRight, 0.5, 0.5, want)
		got := pinchDistanceOf(obs)
		if math.Abs(got-want) > epsilon {
			t.Errorf("pinch distance = %f, want %f", got, want)
		}
	}
}
