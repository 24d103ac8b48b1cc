package booth

import (
	"fmt"
	"image"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/image/draw"

	"github.com/soocke/photo-booth-go/config"
)

const tickInterval = time.Second

// Sequencer drives countdown, capture and auto-chaining. All state changes
// happen on one goroutine fed by an event channel; timers only enqueue.
type Sequencer struct {
	session *Session
	frames  FrameReader
	camera  Readiness
	clock   Clock
	settle  time.Duration
	logger  *slog.Logger

	state     atomic.Int32
	remaining atomic.Int32

	// loop-owned
	countdown Timer
	chain     Timer
	gen       uint64
	listeners []StateListener
	observers []EventListener

	events    chan interface{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewSequencer constructs and starts the event loop. clock may be nil for the
// real clock; settle is the auto-chain settling delay.
func NewSequencer(session *Session, frames FrameReader, camera Readiness, clock Clock, settle time.Duration, logger *slog.Logger) *Sequencer {
	if clock == nil {
		clock = RealClock{}
	}
	if settle <= 0 {
		settle = config.DefaultConfig().AutoCaptureDelay()
	}
	s := &Sequencer{
		session: session,
		frames:  frames,
		camera:  camera,
		clock:   clock,
		settle:  settle,
		logger:  logger,
		events:  make(chan interface{}, 64),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// events
type (
	evtRequest          struct{ auto bool }
	evtTick             struct{ gen uint64 }
	evtCancel           struct{}
	evtReset            struct{}
	evtAddListener      struct{ l StateListener }
	evtAddEventListener struct{ l EventListener }
	evtSetCountdown     struct {
		secs  int
		reply chan error
	}
	evtSetAutoChain struct {
		on    bool
		reply chan error
	}
)

func (s *Sequencer) run() {
	defer close(s.done)
	defer func() {
		// posts after exit must not block on a full queue
		s.closeOnce.Do(func() { close(s.quit) })
		s.countdown = stopTimer(s.countdown)
		s.chain = stopTimer(s.chain)
		s.state.Store(int32(StateIdle))
	}()
	for {
		select {
		case <-s.quit:
			return
		case ev := <-s.events:
			s.dispatch(ev)
		}
	}
}

// dispatch handles one event. A panic, typically from a listener, is logged
// and the sequencer falls back to Idle with no timers so the loop keeps
// serving requests.
func (s *Sequencer) dispatch(ev interface{}) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if s.logger != nil {
			s.logger.Error("sequencer panic", "error", r, "event", fmt.Sprintf("%T", ev), "stack", string(debug.Stack()))
		}
		s.countdown = stopTimer(s.countdown)
		s.chain = stopTimer(s.chain)
		s.remaining.Store(0)
		s.state.Store(int32(StateIdle))
		switch e := ev.(type) {
		case evtSetCountdown:
			replyOnce(e.reply, ErrBusy)
		case evtSetAutoChain:
			replyOnce(e.reply, ErrBusy)
		}
	}()
	s.handle(ev)
}

func (s *Sequencer) handle(ev interface{}) {
	switch e := ev.(type) {
	case evtAddListener:
		s.listeners = append(s.listeners, e.l)
	case evtAddEventListener:
		s.observers = append(s.observers, e.l)
	case evtRequest:
		s.handleRequest(e.auto)
	case evtTick:
		if e.gen == s.gen && s.Current() == StateCountingDown {
			s.handleTick()
		}
	case evtCancel:
		if s.Current() == StateCountingDown {
			s.countdown = stopTimer(s.countdown)
			s.chain = stopTimer(s.chain)
			s.remaining.Store(0)
			s.transition(StateIdle)
			s.emit(Event{Kind: EventCancelled})
		}
	case evtReset:
		s.countdown = stopTimer(s.countdown)
		s.chain = stopTimer(s.chain)
		s.remaining.Store(0)
		s.session.clearPhotos()
		s.transition(StateIdle)
		s.emit(Event{Kind: EventCleared})
	case evtSetCountdown:
		e.reply <- s.setCountdown(e.secs)
	case evtSetAutoChain:
		if s.Current() != StateIdle {
			e.reply <- ErrBusy
			return
		}
		s.session.setAutoChain(e.on)
		if !e.on {
			s.chain = stopTimer(s.chain)
		}
		e.reply <- nil
	}
}

func (s *Sequencer) handleRequest(auto bool) {
	if s.Current() != StateIdle {
		return
	}
	if auto {
		s.chain = nil
		if !s.session.AutoChain() {
			return
		}
	} else {
		s.chain = stopTimer(s.chain)
	}
	if s.session.BatchComplete() {
		s.session.clearPhotos()
		if s.logger != nil {
			s.logger.Info("photo batch cleared", "session", s.session.ID())
		}
		s.emit(Event{Kind: EventCleared})
		return
	}
	if s.camera != nil && !s.camera.Ready() {
		if s.logger != nil {
			s.logger.Warn("capture ignored", "error", ErrCameraNotReady)
		}
		s.emit(Event{Kind: EventIgnored, Err: ErrCameraNotReady})
		return
	}
	secs := s.session.Countdown()
	s.gen++
	gen := s.gen
	s.countdown = stopTimer(s.countdown)
	s.countdown = s.clock.Every(tickInterval, func() { s.post(evtTick{gen: gen}) })
	s.remaining.Store(int32(secs))
	s.transition(StateCountingDown)
}

func (s *Sequencer) handleTick() {
	left := s.remaining.Add(-1)
	s.emit(Event{Kind: EventTick, Remaining: int(left)})
	if left > 0 {
		return
	}
	s.countdown = stopTimer(s.countdown)
	s.transition(StateCapturing)
	s.capture()
}

// capture grabs the displayed frame, appends it and returns to Idle.
func (s *Sequencer) capture() {
	frame, err := s.frames.CurrentFrame()
	if err == nil && (frame == nil || frame.Rect.Empty()) {
		err = ErrCameraNotReady
	}
	if err != nil {
		if s.logger != nil {
			s.logger.Error("capture failed", "error", err)
		}
		s.transition(StateIdle)
		s.emit(Event{Kind: EventFailed, Err: err})
		return
	}
	count, err := s.session.appendPhoto(cloneFrame(frame))
	s.transition(StateIdle)
	if err != nil {
		s.emit(Event{Kind: EventFailed, Err: err, Count: count})
		return
	}
	if s.logger != nil {
		s.logger.Info("photo captured", "count", count, "session", s.session.ID())
	}
	s.emit(Event{Kind: EventCaptured, Count: count})
	if count >= BatchSize {
		s.session.SetView(ViewReview)
		s.emit(Event{Kind: EventBatchComplete, Count: count})
		return
	}
	if s.session.AutoChain() {
		s.chain = stopTimer(s.chain)
		s.chain = s.clock.After(s.settle, func() { s.post(evtRequest{auto: true}) })
	}
}

func (s *Sequencer) setCountdown(secs int) error {
	if !config.ValidCountdown(secs) {
		return ErrInvalidCountdown
	}
	if s.Current() != StateIdle {
		return ErrBusy
	}
	s.session.setCountdown(secs)
	return nil
}

func (s *Sequencer) transition(next CaptureState) {
	prev := s.Current()
	if prev == next {
		return
	}
	s.state.Store(int32(next))
	if s.logger != nil {
		s.logger.Debug("capture state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range s.listeners {
		l(prev, next)
	}
}

func (s *Sequencer) emit(ev Event) {
	for _, l := range s.observers {
		l(ev)
	}
}

// post enqueues ev unless the sequencer is closed.
func (s *Sequencer) post(ev interface{}) bool {
	select {
	case <-s.quit:
		return false
	default:
	}
	select {
	case s.events <- ev:
		return true
	case <-s.quit:
		return false
	}
}

// replyOnce answers a waiting caller unless a reply is already queued.
func replyOnce(reply chan error, err error) {
	select {
	case reply <- err:
	default:
	}
}

// cloneFrame copies f so later surface writes cannot alter a captured photo.
func cloneFrame(f *image.RGBA) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, f.Rect.Dx(), f.Rect.Dy()))
	draw.Draw(out, out.Rect, f, f.Rect.Min, draw.Src)
	return out
}

// Public API implements contracts
func (s *Sequencer) AddListener(l StateListener) { s.post(evtAddListener{l: l}) }
func (s *Sequencer) AddEventListener(l EventListener) { s.post(evtAddEventListener{l: l}) }
func (s *Sequencer) Current() CaptureState { return CaptureState(s.state.Load()) }
func (s *Sequencer) Remaining() int { return int(s.remaining.Load()) }
func (s *Sequencer) RequestCapture() { s.post(evtRequest{}) }
func (s *Sequencer) Cancel() { s.post(evtCancel{}) }
func (s *Sequencer) Reset() { s.post(evtReset{}) }
func (s *Sequencer) Session() *Session { return s.session }

// SetCountdown changes the countdown duration. Only valid in Idle.
func (s *Sequencer) SetCountdown(secs int) error {
	return s.ask(evtSetCountdown{secs: secs, reply: make(chan error, 1)})
}

// SetAutoChain toggles auto-capture. Disabling cancels a pending chain.
func (s *Sequencer) SetAutoChain(on bool) error {
	return s.ask(evtSetAutoChain{on: on, reply: make(chan error, 1)})
}

func (s *Sequencer) ask(ev interface{}) error {
	var reply chan error
	switch e := ev.(type) {
	case evtSetCountdown:
		reply = e.reply
	case evtSetAutoChain:
		reply = e.reply
	}
	if !s.post(ev) {
		return ErrClosed
	}
	select {
	case err := <-reply:
		return err
	case <-s.done:
		return ErrClosed
	}
}

// Close tears the sequencer down, cancelling the countdown and any pending
// auto-chain. It blocks until the event loop exited. Idempotent.
func (s *Sequencer) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
}

// Ensure contract satisfaction
var _ SequencerContract = (*Sequencer)(nil)
