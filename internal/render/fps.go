package render

import "time"

// DefaultFPSWindow is the number of recent frame intervals averaged by
// the estimator.
const DefaultFPSWindow = 30

// Estimator measures the render loop's achieved frame rate over a rolling
// window of frame intervals. Not safe for concurrent use; the render loop
// owns it and publishes the result in its snapshots.
type Estimator struct {
	window    int
	intervals []float64
	next      int
	count     int
	last      time.Time
}

// NewEstimator returns an estimator averaging over window intervals.
// A non-positive window falls back to DefaultFPSWindow.
func NewEstimator(window int) *Estimator {
	if window <= 0 {
		window = DefaultFPSWindow
	}
	return &Estimator{window: window, intervals: make([]float64, window)}
}

// Tick records a frame at now. The first call only seeds the clock, and
// ticks that fail to advance it are dropped.
func (e *Estimator) Tick(now time.Time) {
	if e.last.IsZero() {
		e.last = now
		return
	}
	dt := now.Sub(e.last).Seconds()
	if dt <= 0 {
		return
	}
	e.last = now
	e.intervals[e.next] = dt
	e.next = (e.next + 1) % e.window
	if e.count < e.window {
		e.count++
	}
}

// FPS returns the average frame rate over the recorded window, or 0 when
// fewer than one full interval has been seen.
func (e *Estimator) FPS() float64 {
	if e.count == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < e.count; i++ {
		sum += e.intervals[i]
	}
	return float64(e.count) / sum
}

// Reset forgets all recorded intervals and the seeded clock.
func (e *Estimator) Reset() {
	e.next = 0
	e.count = 0
	e.last = time.Time{}
}
