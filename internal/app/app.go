// Package app wires the gesture pipeline together: camera frames in,
// hand observations through the interpreter and reducer, and a smoothed
// globe pose out to whatever is presenting it.
package app

import (
	"context"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/control"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/log"
	"github.com/ayusman/mudra/internal/render"
	"github.com/ayusman/mudra/internal/session"
)

// Pipeline timing constants.
const (
	// IdleFPS is the detection frame rate while the scene is still.
	IdleFPS = 5
	// ActiveFPS is the detection frame rate while motion is present.
	ActiveFPS = 15
	// IdleTimeout is how long after the last motion the pipeline drops
	// back to the idle rate.
	IdleTimeout = 2 * time.Second
	// RenderTick is the cadence of the render loop.
	RenderTick = 33 * time.Millisecond
)

// Status describes the tracking pipeline's state as shown on the
// dashboard.
type Status string

const (
	// StatusRunning means frames are being processed.
	StatusRunning Status = "running"
	// StatusPaused means tracking is switched off but the session lives.
	StatusPaused Status = "paused"
	// StatusUnavailable means the hand detector died and gestures cannot
	// be tracked until it is replaced.
	StatusUnavailable Status = "unavailable"
)

// Snapshot is the render-side view published every render tick: the
// smoothed pose plus everything the dashboard HUD shows.
type Snapshot struct {
	State         render.Smoothed       `json:"state"`
	Overlay       render.Overlay        `json:"overlay"`
	Gestures      control.GestureStatus `json:"gestures"`
	HandsDetected bool                  `json:"handsDetected"`
	FPS           float64               `json:"fps"`
	Status        Status                `json:"status"`
	Tracking      bool                  `json:"tracking"`
	Timestamp     time.Time             `json:"timestamp"`
}

// Config holds configuration options for the application.
type Config struct {
	CameraID     int
	MotionThresh float64
	Viewport     control.Viewport
	Tuner        *config.Tuner
	Recorder     *session.Recorder

	// Camera overrides the default device camera when set. Demo mode
	// passes a mock camera here.
	Camera capture.Camera
}

// App orchestrates the detection and render loops around the session's
// control state.
type App struct {
	cfg      Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	tuner    *config.Tuner
	recorder *session.Recorder

	cell    *control.Cell
	reducer *control.Reducer
	driver  *render.Driver
	fps     *render.Estimator

	// idleTimeout is IdleTimeout unless a test shortens it.
	idleTimeout time.Duration

	mu            sync.RWMutex
	detector      detector.Detector
	enabled       bool
	unavailable   bool
	handsDetected bool
	cancel        func()
	startedAt     time.Time
	lastSnapshot  Snapshot

	// latestFrame is a clone of the newest camera frame, kept for the
	// MJPEG preview so it never reads the camera directly.
	frameMu     sync.Mutex
	latestFrame *gocv.Mat

	wg sync.WaitGroup
}

// New creates a new App instance with the given configuration.
func New(cfg Config) *App {
	motionThreshold := cfg.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}
	tuner := cfg.Tuner
	if tuner == nil {
		tuner = config.NewTuner(config.DefaultTuning())
	}

	camera := cfg.Camera
	if camera == nil {
		camera = capture.NewCamera(capture.Config{DeviceID: cfg.CameraID})
	}

	cell := control.NewCell(control.DefaultState())
	a := &App{
		cfg:         cfg,
		camera:      camera,
		motion:      capture.NewMotionDetector(motionThreshold),
		tuner:       tuner,
		recorder:    cfg.Recorder,
		cell:        cell,
		reducer:     control.NewReducer(cell, cfg.Viewport),
		driver:      render.NewDriver(control.DefaultState()),
		fps:         render.NewEstimator(render.DefaultFPSWindow),
		idleTimeout: IdleTimeout,
	}

	// Try MediaPipe first, fall back to the mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Info("using mediapipe hand detection")
	} else {
		log.Warn("mediapipe not available, using mock detector", "error", err)
		a.detector = detector.NewMockDetector()
	}

	// Seed the snapshot so status reads are sensible before the render
	// loop publishes its first tick
	a.lastSnapshot = Snapshot{
		State:     a.driver.Pose(),
		Gestures:  a.reducer.Status(),
		Status:    a.Status(),
		Tracking:  true,
		Timestamp: time.Now(),
	}

	return a
}

// SetEnabled switches gesture tracking on or off without tearing down the
// session.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled reports whether gesture tracking is currently on.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector swaps the hand detector implementation and clears an
// unavailable state, letting a session recover with a fresh detector.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
	a.unavailable = false
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Status reports the pipeline state for the dashboard and health checks.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	switch {
	case a.unavailable:
		return StatusUnavailable
	case !a.enabled:
		return StatusPaused
	default:
		return StatusRunning
	}
}

// Snapshot returns the most recently published render snapshot.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastSnapshot
}

// SetViewport updates the drag mapping geometry, typically on a dashboard
// resize.
func (a *App) SetViewport(vp control.Viewport) error {
	return a.reducer.SetViewport(vp)
}

// Viewport returns the current drag mapping geometry.
func (a *App) Viewport() control.Viewport {
	return a.reducer.Viewport()
}

// Tuner returns the shared live tuning.
func (a *App) Tuner() *config.Tuner {
	return a.tuner
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Recorder returns the session recorder, or nil when recording is off.
func (a *App) Recorder() *session.Recorder {
	return a.recorder
}

// StartedAt returns when the current session started.
func (a *App) StartedAt() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.startedAt
}

func (a *App) setUnavailable() {
	a.mu.Lock()
	a.unavailable = true
	a.mu.Unlock()
}

func (a *App) trackingDown() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.unavailable
}

func (a *App) setHandsDetected(detected bool) {
	a.mu.Lock()
	a.handsDetected = detected
	a.mu.Unlock()
}

func (a *App) handsSeen() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.handsDetected
}

func (a *App) publish(snap Snapshot) {
	a.mu.Lock()
	a.lastSnapshot = snap
	a.mu.Unlock()
}

// Start opens the camera and launches the detection and render loops.
// Starting an already-running app is a no-op.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.startedAt = time.Now()

	a.wg.Add(2)
	go a.runDetection(ctx)
	go a.runRender(ctx)

	log.Info("pipeline started", "camera", a.cfg.CameraID)
	return nil
}

// Stop halts both loops and releases the camera, the motion detector and
// the hand detector. In-flight detector results are discarded.
func (a *App) Stop() {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.mu.Unlock()

	a.wg.Wait()

	if err := a.camera.Close(); err != nil {
		log.Warn("error closing camera", "error", err)
	}
	a.motion.Close()
	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.Warn("error closing detector", "error", err)
		}
	}
	a.dropPreviewFrame()

	log.Info("pipeline stopped")
}
