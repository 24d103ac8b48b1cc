package render

import (
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soocke/photo-booth-go/domain/camera"
	"github.com/soocke/photo-booth-go/domain/filter"
)

// tickingSource returns a fresh sequence number on every read.
type tickingSource struct {
	seq   atomic.Uint64
	frame *image.RGBA
}

func newTickingSource() *tickingSource {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 200, 40, 10, 255
	}
	return &tickingSource{frame: img}
}

func (s *tickingSource) LatestFrame() camera.FrameSnapshot {
	return camera.FrameSnapshot{Image: s.frame, CapturedAt: time.Now(), Sequence: s.seq.Add(1)}
}

// countingApply records invocations and the maximum overlap.
type countingApply struct {
	calls    atomic.Int64
	inFlight atomic.Int32
	overlap  atomic.Bool
}

func (c *countingApply) apply(img *image.RGBA, k filter.Kind) *image.RGBA {
	if c.inFlight.Add(1) > 1 {
		c.overlap.Store(true)
	}
	defer c.inFlight.Add(-1)
	c.calls.Add(1)
	return filter.Apply(img, k)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", what)
}

func newTestPipeline() (*Pipeline, *countingApply, *tickingSource) {
	src := newTickingSource()
	ca := &countingApply{}
	return NewPipeline(src, ca.apply, time.Millisecond, nil), ca, src
}

func TestPipeline_IdleUntilCameraReadyAndFiltered(t *testing.T) {
	p, ca, _ := newTestPipeline()
	defer p.Close()
	p.SetFilter(filter.Sepia)
	time.Sleep(20 * time.Millisecond)
	if p.LoopRunning() || ca.calls.Load() != 0 {
		t.Fatalf("loop must wait for camera readiness")
	}
	p.SetCameraReady(true)
	waitFor(t, "filter calls", func() bool { return ca.calls.Load() > 3 })
}

func TestPipeline_NormalNeverStartsLoop(t *testing.T) {
	p, ca, _ := newTestPipeline()
	defer p.Close()
	p.SetCameraReady(true)
	time.Sleep(20 * time.Millisecond)
	if p.LoopRunning() || ca.calls.Load() != 0 {
		t.Fatalf("normal filter should display the raw stream")
	}
}

func TestPipeline_SwitchToNormalStopsFilterCalls(t *testing.T) {
	p, ca, _ := newTestPipeline()
	defer p.Close()
	p.SetCameraReady(true)
	p.SetFilter(filter.Grayscale)
	waitFor(t, "filter calls", func() bool { return ca.calls.Load() > 2 })
	p.SetFilter(filter.Normal)
	after := ca.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if got := ca.calls.Load(); got != after {
		t.Fatalf("filter engine invoked after switching to normal: %d -> %d", after, got)
	}
	if p.LoopRunning() {
		t.Fatalf("loop still running")
	}
}

func TestPipeline_CameraLossStopsLoop(t *testing.T) {
	p, ca, _ := newTestPipeline()
	defer p.Close()
	p.SetCameraReady(true)
	p.SetFilter(filter.Blur)
	waitFor(t, "filter calls", func() bool { return ca.calls.Load() > 0 })
	p.SetCameraReady(false)
	after := ca.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if ca.calls.Load() != after || p.LoopRunning() {
		t.Fatalf("loop kept running without camera")
	}
	if _, err := p.CurrentFrame(); !errors.Is(err, ErrCameraUnavailable) {
		t.Fatalf("expected camera unavailable, got %v", err)
	}
}

func TestPipeline_CloseIsTerminal(t *testing.T) {
	p, ca, _ := newTestPipeline()
	p.SetCameraReady(true)
	p.SetFilter(filter.Vintage)
	waitFor(t, "filter calls", func() bool { return ca.calls.Load() > 0 })
	p.Close()
	p.SetFilter(filter.Sepia)
	after := ca.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if ca.calls.Load() != after || p.LoopRunning() {
		t.Fatalf("loop restarted after close")
	}
}

func TestPipeline_NoOverlappingIterations(t *testing.T) {
	p, ca, _ := newTestPipeline()
	defer p.Close()
	p.SetCameraReady(true)
	p.SetFilter(filter.Blur)
	waitFor(t, "filter calls", func() bool { return ca.calls.Load() > 10 })
	p.SetFilter(filter.Sepia)
	waitFor(t, "more calls", func() bool { return ca.calls.Load() > 20 })
	if ca.overlap.Load() {
		t.Fatalf("filter engine invoked concurrently")
	}
}

func TestPipeline_CurrentFrameReadsDisplayedOutput(t *testing.T) {
	p, _, src := newTestPipeline()
	defer p.Close()
	p.SetCameraReady(true)
	got, err := p.CurrentFrame()
	if err != nil || got != src.frame {
		t.Fatalf("normal should pass the raw frame through, err=%v", err)
	}
	p.SetFilter(filter.Grayscale)
	waitFor(t, "filtered frame", func() bool {
		_, err := p.CurrentFrame()
		return err == nil
	})
	got, _ = p.CurrentFrame()
	if got == src.frame {
		t.Fatalf("expected filtered surface frame, got raw frame")
	}
	if got.Pix[0] != got.Pix[1] || got.Pix[1] != got.Pix[2] {
		t.Fatalf("surface frame not grayscale: %v", got.Pix[:4])
	}
}

func TestLoop_StopIdempotent(t *testing.T) {
	src := newTickingSource()
	l := NewLoop(src, nil, &Surface{}, time.Millisecond, nil)
	l.Stop()
	l.Start(filter.Sepia)
	waitFor(t, "iterations", func() bool { return l.Iterations() > 0 })
	l.Stop()
	l.Stop()
	if l.Running() {
		t.Fatalf("loop still running after stop")
	}
}
