package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/log"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	var (
		addr       = flag.String("addr", "", "HTTP listen address (overrides config)")
		cameraID   = flag.Int("camera", -1, "camera device ID (overrides config)")
		mock       = flag.Bool("mock", false, "drive the hologram from a mock camera and detector")
		record     = flag.Bool("record", false, "record tracking sessions to the data directory")
		configPath = flag.String("config", "", "path to a JSON config file")
		logLevel   = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log.Init(*logLevel)

	fmt.Println("Mudra - Hand-Tracked Hologram Globe")

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Flags override file values
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *cameraID >= 0 {
		cfg.CameraID = *cameraID
	}
	if *record {
		cfg.Record = true
	}

	// Initialize the session store
	dataDir := cfg.DataDir
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dataDir = filepath.Join(homeDir, ".mudra")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Error("failed to create data directory", "path", dataDir, "error", err)
		os.Exit(1)
	}

	st, err := session.New(filepath.Join(dataDir, "mudra.db"))
	if err != nil {
		log.Error("failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	var recorder *session.Recorder
	if cfg.Record {
		recorder = session.NewRecorder(st)
	}

	appCfg := app.Config{
		CameraID: cfg.CameraID,
		Viewport: cfg.Viewport,
		Tuner:    config.NewTuner(cfg.Tuning),
		Recorder: recorder,
	}
	if *mock {
		appCfg.Camera = capture.NewMockCamera(mockFrames(), true)
	}

	a := app.New(appCfg)
	if *mock {
		md := detector.NewMockDetector()
		a.SetDetector(md)
		go animateMock(md)
	}

	// Find web directory
	webDir := cfg.StaticDir
	if webDir == "" {
		webDir = findWebDir(dataDir)
	}
	if webDir != "" {
		log.Info("serving static files", "dir", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		App:       a,
		Tuner:     a.Tuner(),
		Store:     st,
	})

	if err := a.Start(); err != nil {
		log.Error("failed to start pipeline", "error", err)
		os.Exit(1)
	}
	a.SetEnabled(true)

	if recorder != nil {
		if _, err := recorder.Start("cli session"); err != nil {
			log.Warn("failed to start recording", "error", err)
		}
		defer recorder.Stop()
	}

	go func() {
		log.Info("dashboard listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnDashboard(func() {
		openBrowser(dashboardURL(cfg.Addr))
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// Keep the tray's region line current
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for range ticker.C {
			t.SetRegion(a.Snapshot().State.ActiveRegion)
		}
	}()

	// Blocks until quit; systray requires the main thread
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and <dataDir>/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// dashboardURL turns a listen address into something a browser can open.
func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the given URL with the platform opener.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Warn("failed to open browser", "url", url, "error", err)
	}
}

// mockFrames builds a short loop of alternating-brightness frames so the
// motion detector sees activity and keeps the pipeline in active mode.
func mockFrames() []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, 4)
	for _, brightness := range []float64{90, 150, 90, 200} {
		frames = append(frames, capture.SolidFrame(brightness))
	}
	return frames
}

// animateMock sweeps a pinching right hand across the frame so the demo
// globe rotates, scales and changes region on its own.
func animateMock(md *detector.MockDetector) {
	start := time.Now()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		t := time.Since(start).Seconds()
		palmX := 0.5 + 0.45*math.Sin(t/3)
		palmY := 0.5 + 0.2*math.Sin(t/5)
		pinch := 0.15 + 0.1*math.Sin(t/2)
		md.SetHands([]detector.HandObservation{
			detector.ObservationWithPinch(detector.HandRight, palmX, palmY, pinch),
		})
	}
}
