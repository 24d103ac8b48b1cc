package render

import (
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/photo-booth-go/domain/filter"
)

var (
	// ErrNoFrame is returned when nothing is displayed yet.
	ErrNoFrame = errors.New("render: no frame displayed")
	// ErrCameraUnavailable is returned when the camera stream is not ready.
	ErrCameraUnavailable = errors.New("render: camera unavailable")
)

// Pipeline gates the render loop on filter selection and camera readiness.
// With Normal selected the raw camera frame is displayed directly and the
// loop stays idle.
type Pipeline struct {
	source  FrameSource
	loop    *Loop
	surface *Surface
	logger  *slog.Logger

	mu          sync.Mutex
	kind        filter.Kind
	cameraReady bool
	closed      bool
}

// NewPipeline wires a loop over source using apply at the given refresh interval.
func NewPipeline(source FrameSource, apply ApplyFunc, interval time.Duration, logger *slog.Logger) *Pipeline {
	surface := &Surface{}
	return &Pipeline{
		source:  source,
		surface: surface,
		loop:    NewLoop(source, apply, surface, interval, logger),
		logger:  logger,
	}
}

// SetFilter selects the live filter. Any change stops the current loop; it
// restarts only if the camera is ready and the new filter is not Normal.
func (p *Pipeline) SetFilter(kind filter.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.kind == kind {
		return
	}
	p.kind = kind
	p.loop.Stop()
	p.surface.Clear()
	p.reconcileLocked()
}

// SetCameraReady records stream availability.
func (p *Pipeline) SetCameraReady(ready bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cameraReady == ready {
		return
	}
	p.cameraReady = ready
	p.reconcileLocked()
}

func (p *Pipeline) reconcileLocked() {
	want := !p.closed && p.cameraReady && p.kind != filter.Normal
	if !want {
		p.loop.Stop()
		p.surface.Clear()
		return
	}
	if !p.loop.Running() {
		p.loop.Start(p.kind)
	}
}

// Filter returns the selected filter.
func (p *Pipeline) Filter() filter.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kind
}

// LoopRunning reports whether the filter loop is active.
func (p *Pipeline) LoopRunning() bool { return p.loop.Running() }

// Loop exposes the underlying task handle for instrumentation.
func (p *Pipeline) Loop() *Loop { return p.loop }

// CurrentFrame returns the frame currently on display: the raw camera frame
// for Normal, the filtered surface otherwise. Capture reads this and never
// re-filters.
func (p *Pipeline) CurrentFrame() (*image.RGBA, error) {
	p.mu.Lock()
	kind, ready, closed := p.kind, p.cameraReady, p.closed
	p.mu.Unlock()
	if closed || !ready {
		return nil, ErrCameraUnavailable
	}
	if kind == filter.Normal {
		snap := p.source.LatestFrame()
		if snap.Image == nil || snap.Image.Rect.Empty() {
			return nil, ErrNoFrame
		}
		return snap.Image, nil
	}
	f := p.surface.Current()
	if f.Image == nil || f.Image.Rect.Empty() || f.Kind != kind {
		return nil, ErrNoFrame
	}
	return f.Image, nil
}

// Close stops the loop for good.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.reconcileLocked()
	if p.logger != nil {
		p.logger.Debug("render pipeline closed")
	}
}
