package presenter

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/soocke/photo-booth-go/domain/booth"
	"github.com/soocke/photo-booth-go/domain/render"
	"github.com/soocke/photo-booth-go/ui/model"
)

// SequencerSource provides the sequencer state the presenter reflects.
type SequencerSource interface {
	Current() booth.CaptureState
	Remaining() int
}

// SessionSource is the read side of the session.
type SessionSource interface {
	PhotoCount() int
	BatchComplete() bool
	AutoChain() bool
	View() booth.View
}

// NoticeSource is read by the presenter each tick.
type NoticeSource interface {
	NoticeSink
	Current() (model.Notice, uint64)
	Expire(now time.Time, ttl time.Duration)
}

// PhotoCounter is notified of captures and failures.
type PhotoCounter interface {
	AddPhoto()
	AddFailure()
}

// StateView is the UI surface driven by capture state.
type StateView interface {
	SetCountdown(text string)
	SetStatus(text string, level model.NoticeLevel)
	SetCaptureButton(text string)
	SetCountdownEditable(enabled bool)
	SetStripTabEnabled(enabled bool)
	SetAutoShortcut(visible bool)
	SetAutoMode(on bool)
	ShowView(v booth.View)
}

// noticeTTL is how long a status message stays up.
const noticeTTL = 4 * time.Second

// StatePresenter receives sequencer events and reflects state on each tick.
type StatePresenter struct {
	seq     SequencerSource
	session SessionSource
	notices NoticeSource
	stats   PhotoCounter
	view    StateView

	mu      sync.Mutex
	pending []booth.Event

	initialized   bool
	lastState     booth.CaptureState
	lastRemaining int
	lastCount     int
	lastView      booth.View
	lastAuto      bool
	lastNotice    uint64
}

func NewStatePresenter(seq SequencerSource, session SessionSource, notices NoticeSource, stats PhotoCounter, view StateView) *StatePresenter {
	return &StatePresenter{seq: seq, session: session, notices: notices, stats: stats, view: view}
}

// OnEvent queues a sequencer event. Safe to call from the sequencer goroutine.
func (p *StatePresenter) OnEvent(ev booth.Event) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, ev)
	p.mu.Unlock()
}

// Tick flushes queued events and pushes changed state to the view.
func (p *StatePresenter) Tick(now time.Time) {
	if p == nil || p.seq == nil || p.session == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	events := p.pending
	p.pending = nil
	p.mu.Unlock()
	for _, ev := range events {
		p.handleEvent(ev, now)
	}

	state, remaining := p.seq.Current(), p.seq.Remaining()
	count, view, auto := p.session.PhotoCount(), p.session.View(), p.session.AutoChain()
	first := !p.initialized
	p.initialized = true

	if first || state != p.lastState || remaining != p.lastRemaining {
		p.view.SetCountdown(countdownText(state, remaining))
		p.view.SetCountdownEditable(state == booth.StateIdle)
	}
	if first || count != p.lastCount {
		p.view.SetCaptureButton(CaptureButtonText(count))
		p.view.SetStripTabEnabled(count >= booth.BatchSize)
	}
	if first || view != p.lastView {
		p.view.ShowView(view)
	}
	if first || state != p.lastState || count != p.lastCount || auto != p.lastAuto {
		p.view.SetAutoShortcut(auto && count == 0 && state == booth.StateIdle)
	}
	if first || auto != p.lastAuto {
		p.view.SetAutoMode(auto)
	}
	p.lastState, p.lastRemaining, p.lastCount, p.lastView, p.lastAuto = state, remaining, count, view, auto

	if p.notices != nil {
		p.notices.Expire(now, noticeTTL)
		n, version := p.notices.Current()
		if first || version != p.lastNotice {
			p.lastNotice = version
			p.view.SetStatus(n.Text, n.Level)
		}
	}
}

func (p *StatePresenter) handleEvent(ev booth.Event, now time.Time) {
	switch ev.Kind {
	case booth.EventCaptured:
		if p.stats != nil {
			p.stats.AddPhoto()
		}
		p.post(model.NoticeInfo, fmt.Sprintf("Photo %d of %d captured", ev.Count, booth.BatchSize), now)
	case booth.EventBatchComplete:
		p.post(model.NoticeInfo, "Photo strip ready!", now)
	case booth.EventCleared:
		p.post(model.NoticeInfo, "Ready for a new strip", now)
	case booth.EventCancelled:
		p.post(model.NoticeInfo, "Countdown cancelled", now)
	case booth.EventIgnored:
		p.post(model.NoticeWarn, "Camera is not ready yet", now)
	case booth.EventFailed:
		if p.stats != nil {
			p.stats.AddFailure()
		}
		p.post(model.NoticeError, failureText(ev.Err), now)
	}
}

func (p *StatePresenter) post(level model.NoticeLevel, text string, now time.Time) {
	if p.notices != nil {
		p.notices.Post(level, text, now)
	}
}

// CaptureButtonText is the main button label for a batch of count photos.
func CaptureButtonText(count int) string {
	if count >= booth.BatchSize {
		return "Reset"
	}
	return "Take Photo (" + strconv.Itoa(count) + "/" + strconv.Itoa(booth.BatchSize) + ")"
}

func countdownText(state booth.CaptureState, remaining int) string {
	if state == booth.StateCountingDown && remaining > 0 {
		return strconv.Itoa(remaining)
	}
	return ""
}

func failureText(err error) string {
	switch {
	case errors.Is(err, render.ErrNoFrame):
		return "Capture failed: no frame on screen yet, try again"
	case errors.Is(err, render.ErrCameraUnavailable), errors.Is(err, booth.ErrCameraNotReady):
		return "Capture failed: camera disconnected"
	case err != nil:
		return "Capture failed: " + err.Error()
	default:
		return "Capture failed"
	}
}
