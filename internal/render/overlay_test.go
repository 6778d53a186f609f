package render

import (
	"math"
	"testing"
	"time"
)

func TestOverlayAtSessionStart(t *testing.T) {
	o := OverlayAt(0)
	if o.RingAngle != 0 || o.CloudAngle != 0 || o.Bob != 0 {
		t.Errorf("expected zero pose at session start, got %+v", o)
	}
}

func TestOverlayIsPure(t *testing.T) {
	elapsed := 17*time.Second + 330*time.Millisecond
	first := OverlayAt(elapsed)
	second := OverlayAt(elapsed)
	if first != second {
		t.Errorf("same elapsed time gave %+v then %+v", first, second)
	}
}

func TestOverlayRingSpinsAtConstantRate(t *testing.T) {
	one := OverlayAt(1 * time.Second)
	two := OverlayAt(2 * time.Second)

	if !floatEquals(one.RingAngle, ringSpinRate) {
		t.Errorf("expected ring at %v after one second, got %v", ringSpinRate, one.RingAngle)
	}
	if !floatEquals(two.RingAngle-one.RingAngle, ringSpinRate) {
		t.Errorf("expected constant spin rate, got step %v", two.RingAngle-one.RingAngle)
	}
}

func TestOverlayAnglesStayWrapped(t *testing.T) {
	for _, elapsed := range []time.Duration{time.Minute, time.Hour, 7 * time.Hour} {
		o := OverlayAt(elapsed)
		if o.RingAngle < 0 || o.RingAngle >= 2*math.Pi {
			t.Errorf("ring angle %v outside [0, 2pi) after %v", o.RingAngle, elapsed)
		}
		if o.CloudAngle < 0 || o.CloudAngle >= 2*math.Pi {
			t.Errorf("cloud angle %v outside [0, 2pi) after %v", o.CloudAngle, elapsed)
		}
	}
}

func TestOverlayBobOscillates(t *testing.T) {
	// Quarter period of the bob is half a second.
	peak := OverlayAt(500 * time.Millisecond)
	if !floatEquals(peak.Bob, bobAmplitude) {
		t.Errorf("expected bob peak %v, got %v", bobAmplitude, peak.Bob)
	}

	for s := 0.0; s < 10; s += 0.1 {
		o := OverlayAt(time.Duration(s * float64(time.Second)))
		if math.Abs(o.Bob) > bobAmplitude+epsilon {
			t.Errorf("bob %v exceeded amplitude at %vs", o.Bob, s)
		}
	}
}
