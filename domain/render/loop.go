package render

import (
	"image"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/photo-booth-go/domain/camera"
	"github.com/soocke/photo-booth-go/domain/filter"
)

// FrameSource supplies the most recent raw camera frame.
type FrameSource interface {
	LatestFrame() camera.FrameSnapshot
}

// ApplyFunc is the filter engine contract.
type ApplyFunc func(*image.RGBA, filter.Kind) *image.RGBA

// Loop re-renders the latest camera frame through a filter once per refresh
// tick. It is an explicit task handle: Start launches one goroutine, Stop
// cancels it and waits, so no filter call happens after Stop returns.
type Loop struct {
	source   FrameSource
	apply    ApplyFunc
	surface  *Surface
	interval time.Duration
	logger   *slog.Logger

	mu         sync.Mutex
	stop       chan struct{}
	done       chan struct{}
	kind       filter.Kind
	iterations atomic.Uint64
}

// NewLoop constructs a stopped loop.
func NewLoop(source FrameSource, apply ApplyFunc, surface *Surface, interval time.Duration, logger *slog.Logger) *Loop {
	if interval <= 0 {
		interval = time.Second / 60
	}
	if apply == nil {
		apply = filter.Apply
	}
	return &Loop{source: source, apply: apply, surface: surface, interval: interval, logger: logger}
}

// Start runs the loop for kind, replacing any running instance.
func (l *Loop) Start(kind filter.Kind) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
	l.kind = kind
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.run(kind, l.stop, l.done)
	if l.logger != nil {
		l.logger.Debug("render loop started", "filter", kind.String())
	}
}

// Stop cancels the scheduled continuation. Idempotent.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

func (l *Loop) stopLocked() {
	if l.stop == nil {
		return
	}
	close(l.stop)
	<-l.done
	l.stop, l.done = nil, nil
	if l.logger != nil {
		l.logger.Debug("render loop stopped", "filter", l.kind.String())
	}
}

// Running reports whether a loop goroutine is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stop != nil
}

// Iterations counts frames rendered since construction.
func (l *Loop) Iterations() uint64 { return l.iterations.Load() }

func (l *Loop) run(kind filter.Kind, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil && l.logger != nil {
			l.logger.Error("render loop panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	var lastSeq uint64
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		// a tick and a stop may be ready together
		select {
		case <-stop:
			return
		default:
		}
		snap := l.source.LatestFrame()
		if snap.Image == nil || snap.Sequence == lastSeq {
			continue
		}
		out := l.apply(snap.Image, kind)
		l.surface.Write(out, snap.Sequence, kind)
		lastSeq = snap.Sequence
		l.iterations.Add(1)
	}
}
