package app

import (
	"context"
	"errors"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/log"
	"github.com/ayusman/mudra/internal/render"
)

// runDetection is the detection loop. It reads camera frames, gates the
// detection rate on motion, runs hand detection synchronously (one call
// in flight at a time) and folds the resulting events into the control
// state.
//
// Rate logic:
// 1. Start at the idle rate
// 2. On motion, switch to the active rate and start detecting hands
// 3. After IdleTimeout without motion, drop back to idle and clear the
//    hand status so the HUD does not show a stale hand
func (a *App) runDetection(ctx context.Context) {
	defer a.wg.Done()

	activeMode := false
	lastMotionTime := time.Now()
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Warn("error reading frame", "error", err)
				continue
			}
			a.storePreviewFrame(frame)

			motionDetected, _ := a.motion.Detect(frame)
			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Debug("switched to active mode")
				}
			} else if activeMode && time.Since(lastMotionTime) > a.idleTimeout {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				// The scene has been still for a while. Clear the hand
				// status but leave the control state exactly where the
				// last gesture put it.
				a.reducer.Apply(nil)
				a.setHandsDetected(false)
				log.Debug("switched to idle mode")
			}

			if !activeMode || a.trackingDown() {
				frame.Close()
				continue
			}

			a.processFrame(ctx, frame)
		}
	}
}

// processFrame runs one synchronous detection pass and applies its events.
// Closes the frame.
func (a *App) processFrame(ctx context.Context, frame *gocv.Mat) {
	ts := time.Now()
	hands, err := a.Detector().Detect(frame, ts)
	frame.Close()

	if err != nil {
		if errors.Is(err, detector.ErrUnavailable) {
			log.Error("hand detector unavailable, tracking stopped", "error", err)
			a.setUnavailable()
			return
		}
		// Transient failure: skip this frame, the next one retries
		// naturally.
		log.Warn("error detecting hands", "error", err)
		return
	}

	// The detector call can outlive a stop request. Discard results that
	// arrive after the session was told to stop.
	select {
	case <-ctx.Done():
		return
	default:
	}

	tuning := a.tuner.Current()
	events := make([]gesture.Event, 0, len(hands))
	for i := range hands {
		ev, err := gesture.Interpret(hands[i], tuning.PinchThreshold)
		if err != nil {
			// A malformed observation drops that hand, never the frame.
			log.Warn("dropping malformed observation", "handedness", hands[i].Handedness, "error", err)
			continue
		}
		events = append(events, ev)
	}

	a.reducer.Apply(events)
	a.setHandsDetected(len(events) > 0)

	if a.recorder != nil {
		if err := a.recorder.Record(ts, hands, a.cell.Snapshot()); err != nil {
			log.Warn("error recording frame", "error", err)
		}
	}
}

// runRender is the render loop. It chases the control state with the
// smoothing driver at a fixed cadence and publishes a snapshot for the
// dashboard on every tick. Strictly read-only against the control state.
func (a *App) runRender(ctx context.Context) {
	defer a.wg.Done()

	ticker := time.NewTicker(RenderTick)
	defer ticker.Stop()

	started := a.StartedAt()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now

			target := a.cell.Snapshot()
			pose := a.driver.Step(target, elapsed, a.tuner.Current().RenderConfig())
			a.fps.Tick(now)

			a.publish(Snapshot{
				State:         pose,
				Overlay:       render.OverlayAt(now.Sub(started)),
				Gestures:      a.reducer.Status(),
				HandsDetected: a.handsSeen(),
				FPS:           a.fps.FPS(),
				Status:        a.Status(),
				Tracking:      !a.trackingDown(),
				Timestamp:     now,
			})
		}
	}
}

// storePreviewFrame keeps a clone of the newest camera frame for the
// MJPEG preview, which must never read the camera itself.
func (a *App) storePreviewFrame(frame *gocv.Mat) {
	clone := frame.Clone()

	a.frameMu.Lock()
	old := a.latestFrame
	a.latestFrame = &clone
	a.frameMu.Unlock()

	if old != nil {
		old.Close()
	}
}

// PreviewJPEG encodes the newest camera frame as JPEG. Returns false when
// no frame has been captured yet.
func (a *App) PreviewJPEG() ([]byte, bool) {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()

	if a.latestFrame == nil || a.latestFrame.Empty() {
		return nil, false
	}

	buf, err := gocv.IMEncode(".jpg", *a.latestFrame)
	if err != nil {
		log.Warn("error encoding preview frame", "error", err)
		return nil, false
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, true
}

func (a *App) dropPreviewFrame() {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()
	if a.latestFrame != nil {
		a.latestFrame.Close()
		a.latestFrame = nil
	}
}
