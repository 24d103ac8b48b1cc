package camera

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

const (
	captureStatsLogInterval = 5 * time.Second
	// consecutive grab failures after which the stream counts as unavailable
	unavailableAfter = 10
)

// Service owns the single camera stream for a session: it opens the device,
// publishes the latest frame and reports permission and readiness. Use
// NewService to construct an instance.
type Service interface {
	Start() error
	Stop()
	Release()
	LatestFrame() FrameSnapshot
	Running() bool
	Ready() bool
	Permission() Permission
	Stats() CaptureStats
}

type captureService struct {
	device   Device
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex // guards lifecycle (stop, done, opened, released)
	stop     chan struct{}
	done     chan struct{}
	opened   bool
	released bool

	running      atomic.Bool
	ready        atomic.Bool
	permission   atomic.Int32
	latest       atomic.Pointer[FrameSnapshot]
	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

func newService(device Device, interval time.Duration, logger *slog.Logger) *captureService {
	if interval <= 0 {
		interval = time.Second / 30
	}
	return &captureService{device: device, interval: interval, logger: logger}
}

// NewService constructs a camera service grabbing from device every interval.
func NewService(device Device, interval time.Duration, logger *slog.Logger) Service {
	return newService(device, interval, logger)
}

func (s *captureService) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *captureService) Running() bool { return s.running.Load() }

// Ready reports whether the stream is delivering frames.
func (s *captureService) Ready() bool { return s.ready.Load() }

func (s *captureService) Permission() Permission { return Permission(s.permission.Load()) }

func (s *captureService) Stats() CaptureStats {
	captures := s.captures.Load()
	skipped := s.skipped.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return CaptureStats{
		Captures:         captures,
		Skipped:          skipped,
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      snapshot.CapturedAt,
		LatestFrameAge:   age,
		Sequence:         snapshot.Sequence,
	}
}

// Start launches the grab loop. Idempotent while running. Returns
// ErrReleased after Release and ErrPermissionDenied once access was refused.
func (s *captureService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrReleased
	}
	if s.Permission() == PermissionDenied {
		return ErrPermissionDenied
	}
	if s.running.Load() {
		return nil
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.running.Store(true)
	go s.loop(s.stop, s.done)
	return nil
}

// Stop halts the grab loop and waits for it to exit. The device stays open.
func (s *captureService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *captureService) stopLocked() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop, s.done = nil, nil
	s.running.Store(false)
	s.ready.Store(false)
}

// Release stops the loop and closes the device. Subsequent Start calls are ignored.
func (s *captureService) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.stopLocked()
	s.released = true
	if s.opened && s.device != nil {
		if err := s.device.Close(); err != nil && s.logger != nil {
			s.logger.Error("camera close", "error", err)
		}
	}
	s.opened = false
	s.latest.Store(nil)
}

func (s *captureService) open() bool {
	if s.opened {
		return true
	}
	if s.device == nil {
		s.permission.Store(int32(PermissionDenied))
		return false
	}
	if err := s.device.Open(); err != nil {
		s.permission.Store(int32(PermissionDenied))
		if s.logger != nil {
			s.logger.Error("camera open", "error", err)
		}
		return false
	}
	s.opened = true
	return true
}

func (s *captureService) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			s.ready.Store(false)
			if s.logger != nil {
				s.logger.Error("camera loop panic", "error", r, "stack", string(debug.Stack()))
			}
		}
	}()
	if !s.open() {
		s.running.Store(false)
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	failures := 0
	for {
		s.grabOnce(&failures)
		select {
		case <-stop:
			return
		case <-logTicker.C:
			s.logStats()
		case <-ticker.C:
		}
	}
}

func (s *captureService) grabOnce(failures *int) {
	start := time.Now()
	img, err := s.device.Grab()
	if err != nil || img == nil || img.Rect.Empty() {
		s.skipped.Add(1)
		*failures++
		if *failures == unavailableAfter && s.ready.Load() {
			s.ready.Store(false)
			if s.logger != nil {
				s.logger.Warn("camera stream unavailable", "error", err)
			}
		}
		return
	}
	*failures = 0
	elapsed := time.Since(start)
	s.captureNanos.Add(uint64(elapsed.Nanoseconds()))
	s.captures.Add(1)
	seq := s.sequence.Add(1)
	s.latest.Store(&FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})
	if s.Permission() != PermissionGranted {
		s.permission.Store(int32(PermissionGranted))
	}
	if !s.ready.Load() {
		s.ready.Store(true)
		if s.logger != nil {
			s.logger.Info("camera ready", "width", img.Rect.Dx(), "height", img.Rect.Dy())
		}
	}
}

func (s *captureService) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
