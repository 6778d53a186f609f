package detector

import (
	"errors"
	"time"

	"gocv.io/x/gocv"
)

// ErrUnavailable is returned when the underlying detection backend cannot
// run at all (model failed to load, service process died). Callers treat it
// as fatal to the tracking session, distinct from a frame with zero hands.
var ErrUnavailable = errors.New("detector unavailable")

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame captured at the given monotonic
	// timestamp and returns zero or more hand observations.
	Detect(frame *gocv.Mat, ts time.Time) ([]HandObservation, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
