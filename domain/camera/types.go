package camera

import (
	"errors"
	"image"
	"time"
)

var (
	// ErrPermissionDenied reports that the device refused access. It is
	// terminal for the session.
	ErrPermissionDenied = errors.New("camera: permission denied")
	// ErrReleased is returned when a released service is started again.
	ErrReleased = errors.New("camera: released")
)

// Device is a frame source: a webcam, a screen region or a synthetic pattern.
// Grab is only called between a successful Open and Close, from one goroutine.
type Device interface {
	Open() error
	Grab() (*image.RGBA, error)
	Close() error
}

// Permission is the access state reported by the device.
type Permission int

const (
	PermissionPending Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionPending:
		return "pending"
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// FrameSnapshot carries the latest captured frame and metadata.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats summarises capture loop behaviour for instrumentation.
type CaptureStats struct {
	Captures         uint64
	Skipped          uint64
	AvgCapture       time.Duration
	AvgCaptureMicros float64
	LastCapture      time.Time
	LatestFrameAge   time.Duration
	Sequence         uint64
}
