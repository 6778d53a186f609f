package render

import (
	"math"
	"time"
)

// Ambient motion rates for the decoration layers.
const (
	ringSpinRate  = 0.3  // radians per second
	cloudSpinRate = 0.05 // radians per second
	bobFrequency  = 0.5  // cycles per second
	bobAmplitude  = 0.1  // world units
)

// Overlay carries the decoration pose around the globe: the ring's spin,
// the cloud shell's slow drift and a gentle vertical bob. All three are
// pure functions of session time, so the dashboard can render them from
// any snapshot without extra state, and none of them feed back into the
// control state.
type Overlay struct {
	RingAngle  float64 `json:"ringAngle"`
	CloudAngle float64 `json:"cloudAngle"`
	Bob        float64 `json:"bob"`
}

// OverlayAt returns the decoration pose after elapsed session time.
func OverlayAt(elapsed time.Duration) Overlay {
	t := elapsed.Seconds()
	return Overlay{
		RingAngle:  wrapAngle(t * ringSpinRate),
		CloudAngle: wrapAngle(t * cloudSpinRate),
		Bob:        bobAmplitude * math.Sin(2*math.Pi*bobFrequency*t),
	}
}
