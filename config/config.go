package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Allowed countdown durations in seconds.
var CountdownChoices = []int{3, 5, 10}

// Camera source identifiers.
const (
	SourceScreen  = "screen"
	SourcePattern = "pattern"
)

// Config holds user preferences for the booth. Fields may be loaded from a
// JSON file and overridden by PHOTOBOOTH_* environment variables and
// command-line flags. Nothing about a session (photos, strip) is stored here.
type Config struct {
	Debug    bool `json:"debug" env:"DEBUG"`
	DarkMode bool `json:"dark_mode" env:"DARK_MODE"`

	// Capture behaviour
	CountdownSeconds   int    `json:"countdown_seconds" env:"COUNTDOWN_SECONDS"`
	AutoCapture        bool   `json:"auto_capture" env:"AUTO_CAPTURE"`
	AutoCaptureDelayMs int    `json:"auto_capture_delay_ms" env:"AUTO_CAPTURE_DELAY_MS"`
	Filter             string `json:"filter" env:"FILTER"`
	StripColor         string `json:"strip_color" env:"STRIP_COLOR"`

	// Camera device
	CameraSource string `json:"camera_source" env:"CAMERA_SOURCE"`
	CameraWidth  int    `json:"camera_width" env:"CAMERA_WIDTH"`
	CameraHeight int    `json:"camera_height" env:"CAMERA_HEIGHT"`
	CameraFPS    int    `json:"camera_fps" env:"CAMERA_FPS"`
	RefreshHz    int    `json:"refresh_hz" env:"REFRESH_HZ"`

	// Screen region sampled by the screen camera (zero size = full screen)
	SelectionX int `json:"selection_x" env:"SELECTION_X"`
	SelectionY int `json:"selection_y" env:"SELECTION_Y"`
	SelectionW int `json:"selection_w" env:"SELECTION_W"`
	SelectionH int `json:"selection_h" env:"SELECTION_H"`

	// Export / share
	OutputDir      string `json:"output_dir" env:"OUTPUT_DIR"`
	ExportSettleMs int    `json:"export_settle_ms" env:"EXPORT_SETTLE_MS"`
	SharePayload   string `json:"share_payload" env:"SHARE_PAYLOAD"`
	QRSize         int    `json:"qr_size" env:"QR_SIZE"`
	QRMargin       int    `json:"qr_margin" env:"QR_MARGIN"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:              false,
		CountdownSeconds:   3,
		AutoCapture:        false,
		AutoCaptureDelayMs: 1500,
		Filter:             "normal",
		StripColor:         "#f43f5e",
		CameraSource:       SourceScreen,
		CameraWidth:        1280,
		CameraHeight:       720,
		CameraFPS:          30,
		RefreshHz:          60,
		OutputDir:          ".",
		ExportSettleMs:     100,
		SharePayload:       "This would be a real URL in a production app",
		QRSize:             150,
		QRMargin:           1,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if !ValidCountdown(c.CountdownSeconds) {
		c.CountdownSeconds = 3
	}
	if c.AutoCaptureDelayMs < 0 {
		c.AutoCaptureDelayMs = 1500
	}
	c.Filter = strings.ToLower(strings.TrimSpace(c.Filter))
	if c.Filter == "" {
		c.Filter = "normal"
	}
	c.StripColor = strings.ToLower(strings.TrimSpace(c.StripColor))
	if c.StripColor == "" {
		c.StripColor = "#f43f5e"
	}
	switch c.CameraSource {
	case SourceScreen, SourcePattern:
	default:
		c.CameraSource = SourceScreen
	}
	if c.CameraWidth <= 0 {
		c.CameraWidth = 1280
	}
	if c.CameraHeight <= 0 {
		c.CameraHeight = 720
	}
	if c.CameraFPS <= 0 || c.CameraFPS > 120 {
		c.CameraFPS = 30
	}
	if c.RefreshHz <= 0 || c.RefreshHz > 240 {
		c.RefreshHz = 60
	}
	if c.SelectionW < 0 || c.SelectionH < 0 {
		c.SelectionW, c.SelectionH = 0, 0
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.ExportSettleMs < 0 {
		c.ExportSettleMs = 100
	}
	if c.QRSize < 21 {
		c.QRSize = 150
	}
	if c.QRMargin < 0 {
		c.QRMargin = 1
	}
	return nil
}

// ValidCountdown reports whether s is one of CountdownChoices.
func ValidCountdown(s int) bool {
	for _, c := range CountdownChoices {
		if c == s {
			return true
		}
	}
	return false
}

// AutoCaptureDelay is the settling delay between chained captures.
func (c *Config) AutoCaptureDelay() time.Duration {
	return time.Duration(c.AutoCaptureDelayMs) * time.Millisecond
}

// ExportSettle is the wait before rasterizing a strip.
func (c *Config) ExportSettle() time.Duration {
	return time.Duration(c.ExportSettleMs) * time.Millisecond
}

// RefreshInterval is the render loop cadence derived from RefreshHz.
func (c *Config) RefreshInterval() time.Duration {
	return time.Second / time.Duration(c.RefreshHz)
}

// FrameInterval is the camera grab cadence derived from CameraFPS.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.CameraFPS)
}

// CameraRegion is the saved screen area for the screen camera. The zero
// rectangle means the full screen.
func (c *Config) CameraRegion() image.Rectangle {
	if c.SelectionW <= 0 || c.SelectionH <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(c.SelectionX, c.SelectionY, c.SelectionX+c.SelectionW, c.SelectionY+c.SelectionH)
}

// ApplyEnv overrides fields from PHOTOBOOTH_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: "PHOTOBOOTH_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig() with env overrides. On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
