package main

import (
	"flag"
	"log/slog"

	"github.com/soocke/photo-booth-go/app"
	"github.com/soocke/photo-booth-go/config"
)

func main() {
	cfgPath := flag.String("config", "config.json", "path to the preferences file")
	debugFlag := flag.Bool("debug", false, "verbose console logging and runtime probes")
	pattern := flag.Bool("pattern", false, "use a synthetic test pattern instead of the screen camera")
	flag.Parse()

	// Base config from file, env overrides, then flags
	cfg, err := config.Load(*cfgPath)
	if *debugFlag {
		cfg.Debug = true
	}
	if *pattern {
		cfg.CameraSource = config.SourcePattern
	}

	// Set up logger
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level, cfg.Debug)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	application := app.NewApp("Photo Booth", 960, 820, cfg, *cfgPath, logger)
	application.Start()
}
