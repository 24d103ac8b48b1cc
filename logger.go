package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger returns a structured slog.Logger with the given level. Console
// mode uses a colourised handler for debugging; otherwise lines are JSON.
func NewLogger(level slog.Leveler, console bool) *slog.Logger {
	if console {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.TimeOnly}))
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
