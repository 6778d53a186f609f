// Package config carries the file-loadable startup settings and the
// runtime-adjustable tuning for a mudra session.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayusman/mudra/internal/control"
)

// maxConfigFileSize bounds config files read from disk (1MB).
const maxConfigFileSize = 1 * 1024 * 1024

// Config is the startup configuration. Load overlays a JSON file on top
// of DefaultConfig, so partial files are safe: fields omitted from the
// file keep their defaults.
type Config struct {
	Addr      string           `json:"addr"`
	StaticDir string           `json:"static_dir"`
	DataDir   string           `json:"data_dir"`
	CameraID  int              `json:"camera_id"`
	Record    bool             `json:"record"`
	Viewport  control.Viewport `json:"viewport"`
	Tuning    Tuning           `json:"tuning"`
}

// DefaultConfig returns the out-of-the-box configuration. StaticDir and
// DataDir are left empty; the caller resolves them against the working
// directory and home directory.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		CameraID: 0,
		Viewport: control.DefaultViewport(),
		Tuning:   DefaultTuning(),
	}
}

// Load reads a JSON config file over the defaults. The path must carry a
// .json extension and the file must stay under 1MB.
func Load(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the constraints json decoding cannot express.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.CameraID < 0 {
		return fmt.Errorf("camera id must not be negative, got %d", c.CameraID)
	}
	if err := c.Viewport.Validate(); err != nil {
		return fmt.Errorf("viewport: %w", err)
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	return nil
}
