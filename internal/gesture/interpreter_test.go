package gesture

import (
	"errors"
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestInterpret_PalmPositionMirrored(t *testing.T) {
	tests := []struct {
		name      string
		rawPalmX  float64
		rawPalmY  float64
		wantPalmX float64
		wantPalmY float64
	}{
		{
			name:      "center stays centered",
			rawPalmX:  0.5,
			rawPalmY:  0.5,
			wantPalmX: 0.5,
			wantPalmY: 0.5,
		},
		{
			name:      "left edge maps to right edge",
			rawPalmX:  0.0,
			rawPalmY:  0.5,
			wantPalmX: 1.0,
			wantPalmY: 0.5,
		},
		{
			name:      "right edge maps to left edge",
			rawPalmX:  1.0,
			rawPalmY:  0.25,
			wantPalmX: 0.0,
			wantPalmY: 0.25,
		},
		{
			name:      "y is never mirrored",
			rawPalmX:  0.3,
			rawPalmY:  0.8,
			wantPalmX: 0.7,
			wantPalmY: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := detector.OpenHandObservation(detector.HandRight, tt.rawPalmX, tt.rawPalmY)

			event, err := Interpret(obs, DefaultPinchThreshold)
			if err != nil {
				t.Fatalf("Interpret() error = %v", err)
			}

			if !floatEquals(event.PalmX, tt.wantPalmX) {
				t.Errorf("PalmX = %f, want %f", event.PalmX, tt.wantPalmX)
			}
			if !floatEquals(event.PalmY, tt.wantPalmY) {
				t.Errorf("PalmY = %f, want %f", event.PalmY, tt.wantPalmY)
			}
		})
	}
}

func TestInterpret_PinchClassification(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		threshold float64
		want      bool
	}{
		{
			name:      "touching fingers pinch",
			distance:  0.0,
			threshold: 0.05,
			want:      true,
		},
		{
			name:      "just under threshold pinches",
			distance:  0.049,
			threshold: 0.05,
			want:      true,
		},
		{
			name:      "exactly at threshold does not pinch",
			distance:  0.05,
			threshold: 0.05,
			want:      false,
		},
		{
			name:      "spread fingers do not pinch",
			distance:  0.25,
			threshold: 0.05,
			want:      false,
		},
		{
			name:      "custom threshold widens the pinch",
			distance:  0.08,
			threshold: 0.1,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := detector.ObservationWithPinch(detector.HandLeft, 0.5, 0.5, tt.distance)

			event, err := Interpret(obs, tt.threshold)
			if err != nil {
				t.Fatalf("Interpret() error = %v", err)
			}

			if !floatEquals(event.PinchDistance, tt.distance) {
				t.Errorf("PinchDistance = %f, want %f", event.PinchDistance, tt.distance)
			}
			if event.IsPinching != tt.want {
				t.Errorf("IsPinching = %v, want %v", event.IsPinching, tt.want)
			}
		})
	}
}

func TestInterpret_PinchDistanceIgnoresDepth(t *testing.T) {
	obs := detector.ObservationWithPinch(detector.HandRight, 0.5, 0.5, 0.02)
	obs.Points[detector.ThumbTip].Z = 0.5
	obs.Points[detector.IndexTip].Z = -0.5

	event, err := Interpret(obs, DefaultPinchThreshold)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}

	if !floatEquals(event.PinchDistance, 0.02) {
		t.Errorf("PinchDistance = %f, want 0.02 regardless of z", event.PinchDistance)
	}
	if !event.IsPinching {
		t.Error("expected pinch despite differing landmark depths")
	}
}

func TestInterpret_Fixtures(t *testing.T) {
	t.Run("pinch fixture pinches", func(t *testing.T) {
		event, err := Interpret(detector.PinchObservation(detector.HandLeft, 0.4, 0.6), DefaultPinchThreshold)
		if err != nil {
			t.Fatalf("Interpret() error = %v", err)
		}
		if !event.IsPinching {
			t.Errorf("expected pinch, distance = %f", event.PinchDistance)
		}
		if event.Handedness != detector.HandLeft {
			t.Errorf("Handedness = %s, want Left", event.Handedness)
		}
	})

	t.Run("open hand fixture does not pinch", func(t *testing.T) {
		event, err := Interpret(detector.OpenHandObservation(detector.HandRight, 0.4, 0.6), DefaultPinchThreshold)
		if err != nil {
			t.Fatalf("Interpret() error = %v", err)
		}
		if event.IsPinching {
			t.Errorf("expected no pinch, distance = %f", event.PinchDistance)
		}
	})
}

func TestInterpret_RejectsMalformed(t *testing.T) {
	t.Run("unknown handedness", func(t *testing.T) {
		obs := detector.OpenHandObservation(detector.HandRight, 0.5, 0.5)
		obs.Handedness = "both"

		_, err := Interpret(obs, DefaultPinchThreshold)
		if !errors.Is(err, detector.ErrMalformed) {
			t.Errorf("expected ErrMalformed, got %v", err)
		}
	})

	t.Run("NaN landmark", func(t *testing.T) {
		obs := detector.OpenHandObservation(detector.HandLeft, 0.5, 0.5)
		obs.Points[detector.ThumbTip].X = math.NaN()

		_, err := Interpret(obs, DefaultPinchThreshold)
		if !errors.Is(err, detector.ErrMalformed) {
			t.Errorf("expected ErrMalformed, got %v", err)
		}
	})
}

func TestInterpret_ThresholdFallback(t *testing.T) {
	obs := detector.ObservationWithPinch(detector.HandRight, 0.5, 0.5, 0.02)

	// 0.02 is inside the default threshold of 0.05
	event, err := Interpret(obs, 0)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if !event.IsPinching {
		t.Error("non-positive threshold should fall back to the default")
	}
}

func TestInterpret_Pure(t *testing.T) {
	obs := detector.PinchObservation(detector.HandLeft, 0.3, 0.7)

	first, err := Interpret(obs, DefaultPinchThreshold)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	second, err := Interpret(obs, DefaultPinchThreshold)
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}

	if first != second {
		t.Errorf("repeated interpretation differs: %+v vs %+v", first, second)
	}
}
