package control

// Hand modes surfaced on the dashboard HUD.
const (
	ModeDragging = "dragging"
	ModeIdle     = "idle - pinch to drag"
	ModeRotate   = "rotate/scale"
	ModeNoHand   = "no hand"
)

// HandStatus describes what one hand is doing this frame.
type HandStatus struct {
	Present bool   `json:"present"`
	Mode    string `json:"mode"`
}

// GestureStatus is the per-frame HUD record for both hands. It is rebuilt
// on every processed frame, including frames with no hands.
type GestureStatus struct {
	Left  HandStatus `json:"left"`
	Right HandStatus `json:"right"`
}

func emptyStatus() GestureStatus {
	return GestureStatus{
		Left:  HandStatus{Mode: ModeNoHand},
		Right: HandStatus{Mode: ModeNoHand},
	}
}
