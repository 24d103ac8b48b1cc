package booth

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soocke/photo-booth-go/config"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// fakeClock records timers; tests fire them by hand.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	fn      func()
	every   bool
	stopped atomic.Bool
}

func (t *fakeTimer) Stop() { t.stopped.Store(true) }

func (c *fakeClock) add(fn func(), every bool) Timer {
	t := &fakeTimer{fn: fn, every: every}
	c.mu.Lock()
	c.timers = append(c.timers, t)
	c.mu.Unlock()
	return t
}

func (c *fakeClock) Every(_ time.Duration, fn func()) Timer { return c.add(fn, true) }
func (c *fakeClock) After(_ time.Duration, fn func()) Timer { return c.add(fn, false) }

func (c *fakeClock) active(every bool) []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*fakeTimer
	for _, t := range c.timers {
		if t.every == every && !t.stopped.Load() {
			out = append(out, t)
		}
	}
	return out
}

// fireEvery delivers one tick to every live repeating timer.
func (c *fakeClock) fireEvery() {
	for _, t := range c.active(true) {
		t.fn()
	}
}

// fireAfter runs every pending one-shot timer.
func (c *fakeClock) fireAfter() {
	for _, t := range c.active(false) {
		t.stopped.Store(true)
		t.fn()
	}
}

// countingFrames returns a distinct 2x2 frame per call, coloured by call index.
type countingFrames struct {
	calls atomic.Int32
	err   atomic.Value
}

func (f *countingFrames) CurrentFrame() (*image.RGBA, error) {
	if v := f.err.Load(); v != nil {
		if err, ok := v.(error); ok && err != nil {
			return nil, err
		}
	}
	n := f.calls.Add(1)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(n), A: 255})
		}
	}
	return img, nil
}

type readyFlag struct{ v atomic.Bool }

func (r *readyFlag) Ready() bool { return r.v.Load() }

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
	states []CaptureState
}

func (r *eventRecorder) onEvent(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *eventRecorder) onState(_, next CaptureState) {
	r.mu.Lock()
	r.states = append(r.states, next)
	r.mu.Unlock()
}

func (r *eventRecorder) count(k EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func (r *eventRecorder) ticks() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, e := range r.events {
		if e.Kind == EventTick {
			out = append(out, e.Remaining)
		}
	}
	return out
}

func waitFor(t *testing.T, cond func() bool, timeout time.Duration, what string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", what)
}

type harness struct {
	seq    *Sequencer
	clock  *fakeClock
	frames *countingFrames
	ready  *readyFlag
	rec    *eventRecorder
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	h := &harness{clock: &fakeClock{}, frames: &countingFrames{}, ready: &readyFlag{}, rec: &eventRecorder{}}
	h.ready.v.Store(true)
	h.seq = NewSequencer(NewSession(cfg), h.frames, h.ready, h.clock, time.Millisecond, discardLogger)
	h.seq.AddEventListener(h.rec.onEvent)
	h.seq.AddListener(h.rec.onState)
	t.Cleanup(h.seq.Close)
	return h
}

// runCountdown fires ticks until the countdown completes.
func (h *harness) runCountdown(t *testing.T, secs int) {
	t.Helper()
	waitFor(t, func() bool { return h.seq.Current() == StateCountingDown }, time.Second, "counting down")
	for i := secs - 1; i >= 0; i-- {
		h.clock.fireEvery()
		want := i
		waitFor(t, func() bool { return h.seq.Remaining() == want }, time.Second, "tick")
	}
	waitFor(t, func() bool { return h.seq.Current() == StateIdle }, time.Second, "idle after capture")
}

func TestSequencer_CountdownTicksExactlyN(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CountdownSeconds = 5
	h := newHarness(t, cfg)
	h.seq.RequestCapture()
	h.runCountdown(t, 5)
	waitFor(t, func() bool { return h.seq.Session().PhotoCount() == 1 }, time.Second, "photo")

	got := h.rec.ticks()
	want := []int{4, 3, 2, 1, 0}
	if len(got) != len(want) {
		t.Fatalf("ticks=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ticks=%v want %v", got, want)
		}
	}
	// a stray tick after completion must be inert
	h.clock.fireEvery()
	time.Sleep(10 * time.Millisecond)
	if n := len(h.rec.ticks()); n != 5 {
		t.Fatalf("expected 5 ticks after completion, got %d", n)
	}
	if h.frames.calls.Load() != 1 {
		t.Fatalf("expected a single frame read, got %d", h.frames.calls.Load())
	}
}

func TestSequencer_RequestWhileCountingIsNoop(t *testing.T) {
	h := newHarness(t, config.DefaultConfig())
	h.seq.RequestCapture()
	waitFor(t, func() bool { return h.seq.Current() == StateCountingDown }, time.Second, "counting down")
	h.seq.RequestCapture()
	h.seq.RequestCapture()
	if err := h.seq.SetCountdown(5); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if n := len(h.clock.active(true)); n != 1 {
		t.Fatalf("expected one countdown timer, got %d", n)
	}
	if h.seq.Remaining() != 3 {
		t.Fatalf("remaining changed: %d", h.seq.Remaining())
	}
}

func TestSequencer_FullBatchRequestClears(t *testing.T) {
	h := newHarness(t, config.DefaultConfig())
	for i := 1; i <= BatchSize; i++ {
		h.seq.RequestCapture()
		h.runCountdown(t, 3)
		want := i
		waitFor(t, func() bool { return h.seq.Session().PhotoCount() == want }, time.Second, "photo count")
	}
	waitFor(t, func() bool { return h.rec.count(EventBatchComplete) == 1 }, time.Second, "batch complete")
	if v := h.seq.Session().View(); v != ViewReview {
		t.Fatalf("expected review view, got %v", v)
	}
	h.seq.RequestCapture()
	waitFor(t, func() bool { return h.rec.count(EventCleared) == 1 }, time.Second, "cleared")
	if h.seq.Session().PhotoCount() != 0 {
		t.Fatalf("batch not cleared")
	}
	if h.seq.Current() != StateIdle {
		t.Fatalf("clearing must not start a countdown, got %v", h.seq.Current())
	}
	if v := h.seq.Session().View(); v != ViewCapture {
		t.Fatalf("expected capture view, got %v", v)
	}
}

func TestSequencer_AutoChainFillsBatchInOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AutoCapture = true
	h := newHarness(t, cfg)
	h.seq.RequestCapture()
	for i := 1; i <= BatchSize; i++ {
		h.runCountdown(t, 3)
		want := i
		waitFor(t, func() bool { return h.seq.Session().PhotoCount() == want }, time.Second, "photo count")
		if i < BatchSize {
			waitFor(t, func() bool { return len(h.clock.active(false)) == 1 }, time.Second, "chain timer")
			h.clock.fireAfter()
		}
	}
	waitFor(t, func() bool { return h.rec.count(EventBatchComplete) == 1 }, time.Second, "batch complete")
	photos := h.seq.Session().Photos()
	for i, p := range photos {
		if got := p.RGBAAt(0, 0).R; int(got) != i+1 {
			t.Fatalf("photo %d has marker %d", i, got)
		}
	}
	if h.seq.Session().View() != ViewReview {
		t.Fatalf("expected review view")
	}
	time.Sleep(10 * time.Millisecond)
	if n := len(h.clock.active(false)); n != 0 {
		t.Fatalf("no chain expected after the fourth photo, got %d", n)
	}
}

func TestSequencer_DisablingAutoChainCancelsPending(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AutoCapture = true
	h := newHarness(t, cfg)
	h.seq.RequestCapture()
	h.runCountdown(t, 3)
	waitFor(t, func() bool { return len(h.clock.active(false)) == 1 }, time.Second, "chain timer")
	if err := h.seq.SetAutoChain(false); err != nil {
		t.Fatalf("SetAutoChain: %v", err)
	}
	if n := len(h.clock.active(false)); n != 0 {
		t.Fatalf("pending chain not cancelled")
	}
	time.Sleep(10 * time.Millisecond)
	if h.seq.Current() != StateIdle {
		t.Fatalf("expected idle, got %v", h.seq.Current())
	}
}

func TestSequencer_FrameFailureReturnsToIdle(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AutoCapture = true
	h := newHarness(t, cfg)
	h.frames.err.Store(errors.New("no frame"))
	h.seq.RequestCapture()
	h.runCountdown(t, 3)
	waitFor(t, func() bool { return h.rec.count(EventFailed) == 1 }, time.Second, "failed event")
	if h.seq.Session().PhotoCount() != 0 {
		t.Fatalf("failure must not append")
	}
	if n := len(h.clock.active(false)); n != 0 {
		t.Fatalf("failure must not chain")
	}
}

func TestSequencer_NotReadyIsIgnored(t *testing.T) {
	h := newHarness(t, config.DefaultConfig())
	h.ready.v.Store(false)
	h.seq.RequestCapture()
	waitFor(t, func() bool { return h.rec.count(EventIgnored) == 1 }, time.Second, "ignored event")
	if h.seq.Current() != StateIdle {
		t.Fatalf("expected idle, got %v", h.seq.Current())
	}
	if n := len(h.clock.active(true)); n != 0 {
		t.Fatalf("no countdown expected")
	}
}

func TestSequencer_CancelAndReset(t *testing.T) {
	h := newHarness(t, config.DefaultConfig())
	h.seq.RequestCapture()
	waitFor(t, func() bool { return h.seq.Current() == StateCountingDown }, time.Second, "counting down")
	h.seq.Cancel()
	waitFor(t, func() bool { return h.rec.count(EventCancelled) == 1 }, time.Second, "cancelled")
	if h.seq.Current() != StateIdle || len(h.clock.active(true)) != 0 {
		t.Fatalf("cancel left state=%v timers=%d", h.seq.Current(), len(h.clock.active(true)))
	}

	h.seq.RequestCapture()
	h.runCountdown(t, 3)
	waitFor(t, func() bool { return h.seq.Session().PhotoCount() == 1 }, time.Second, "photo")
	h.seq.Reset()
	waitFor(t, func() bool { return h.seq.Session().PhotoCount() == 0 }, time.Second, "reset")
}

func TestSequencer_SetCountdownValidation(t *testing.T) {
	h := newHarness(t, config.DefaultConfig())
	if err := h.seq.SetCountdown(4); !errors.Is(err, ErrInvalidCountdown) {
		t.Fatalf("expected ErrInvalidCountdown, got %v", err)
	}
	if err := h.seq.SetCountdown(10); err != nil {
		t.Fatalf("SetCountdown(10): %v", err)
	}
	if got := h.seq.Session().Countdown(); got != 10 {
		t.Fatalf("countdown=%d", got)
	}
}

func TestSequencer_CloseStopsTimers(t *testing.T) {
	h := newHarness(t, config.DefaultConfig())
	h.seq.RequestCapture()
	waitFor(t, func() bool { return h.seq.Current() == StateCountingDown }, time.Second, "counting down")
	h.seq.Close()
	if n := len(h.clock.active(true)); n != 0 {
		t.Fatalf("countdown timer survived close")
	}
	h.clock.fireEvery()
	h.seq.RequestCapture()
	if err := h.seq.SetCountdown(5); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	h.seq.Close()
}

func TestSequencer_ListenerPanicKeepsLoopAlive(t *testing.T) {
	h := newHarness(t, config.DefaultConfig())
	var panicked atomic.Bool
	h.seq.AddEventListener(func(e Event) {
		if e.Kind == EventIgnored && panicked.CompareAndSwap(false, true) {
			panic("listener failure")
		}
	})
	h.ready.v.Store(false)
	h.seq.RequestCapture()
	waitFor(t, panicked.Load, time.Second, "listener panic")

	// far more requests than the event queue holds must still be accepted
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			h.seq.RequestCapture()
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("RequestCapture blocked after a listener panic")
	}

	h.ready.v.Store(true)
	h.seq.RequestCapture()
	h.runCountdown(t, 3)
	waitFor(t, func() bool { return h.seq.Session().PhotoCount() == 1 }, time.Second, "photo after recovery")
	if err := h.seq.SetCountdown(5); err != nil {
		t.Fatalf("expected countdown change after recovery, got %v", err)
	}
}

func TestSequencer_PostAfterCloseReturns(t *testing.T) {
	h := newHarness(t, config.DefaultConfig())
	h.seq.Close()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			h.seq.RequestCapture()
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("RequestCapture blocked after Close")
	}
	if err := h.seq.SetAutoChain(true); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
