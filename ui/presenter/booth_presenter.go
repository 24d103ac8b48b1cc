package presenter

import (
	"log/slog"
	"time"

	"github.com/soocke/photo-booth-go/domain/booth"
	"github.com/soocke/photo-booth-go/domain/filter"
	"github.com/soocke/photo-booth-go/ui/model"
)

// CaptureControl narrows what the presenter needs from the sequencer.
type CaptureControl interface {
	RequestCapture()
	Reset()
	SetCountdown(secs int) error
	SetAutoChain(on bool) error
	Current() booth.CaptureState
}

// FilterSelector switches the live filter (render pipeline).
type FilterSelector interface {
	SetFilter(kind filter.Kind)
}

// BoothSession is the slice of session state the presenter edits.
type BoothSession interface {
	SetFilter(kind filter.Kind)
	SetStripColor(hex string) error
	SetView(v booth.View)
	BatchComplete() bool
	PhotoCount() int
	AutoChain() bool
}

// NoticeSink receives user-visible status messages.
type NoticeSink interface {
	Post(level model.NoticeLevel, text string, now time.Time)
}

// BoothPresenter turns user intents into sequencer, pipeline and session
// calls. All methods run on the UI thread.
type BoothPresenter struct {
	seq     CaptureControl
	filters FilterSelector
	session BoothSession
	notices NoticeSink
	logger  *slog.Logger
}

func NewBoothPresenter(seq CaptureControl, filters FilterSelector, session BoothSession, notices NoticeSink, logger *slog.Logger) *BoothPresenter {
	return &BoothPresenter{seq: seq, filters: filters, session: session, notices: notices, logger: logger}
}

func (p *BoothPresenter) ok() bool {
	return p != nil && p.seq != nil && p.filters != nil && p.session != nil
}

// Capture handles the main button: take a photo, or reset a full batch.
func (p *BoothPresenter) Capture() {
	if !p.ok() {
		return
	}
	p.seq.RequestCapture()
}

// SelectFilter applies a filter id from the picker.
func (p *BoothPresenter) SelectFilter(id string) {
	if !p.ok() {
		return
	}
	kind, err := filter.ParseKind(id)
	if err != nil {
		p.warn("Unknown filter", err)
		return
	}
	p.session.SetFilter(kind)
	p.filters.SetFilter(kind)
	if p.logger != nil {
		p.logger.Debug("filter selected", "filter", kind.String())
	}
}

// SelectCountdown changes the countdown; rejected while a capture runs.
func (p *BoothPresenter) SelectCountdown(secs int) {
	if !p.ok() {
		return
	}
	if err := p.seq.SetCountdown(secs); err != nil {
		p.warn("Countdown unchanged", err)
	}
}

// SetAuto switches auto-capture on or off.
func (p *BoothPresenter) SetAuto(on bool) {
	if !p.ok() {
		return
	}
	if err := p.seq.SetAutoChain(on); err != nil {
		p.warn("Auto-capture unchanged", err)
	}
}

// ToggleAuto flips auto-capture and returns the new setting.
func (p *BoothPresenter) ToggleAuto() bool {
	if !p.ok() {
		return false
	}
	p.SetAuto(!p.session.AutoChain())
	return p.session.AutoChain()
}

// StartAuto enables auto-capture if needed and starts the first countdown.
func (p *BoothPresenter) StartAuto() {
	if !p.ok() {
		return
	}
	if !p.session.AutoChain() {
		if err := p.seq.SetAutoChain(true); err != nil {
			p.warn("Auto-capture unavailable", err)
			return
		}
	}
	p.seq.RequestCapture()
}

// SelectColor sets the strip background.
func (p *BoothPresenter) SelectColor(hex string) {
	if !p.ok() {
		return
	}
	if err := p.session.SetStripColor(hex); err != nil {
		p.warn("Color unchanged", err)
	}
}

// ShowTab switches tabs. The strip tab requires a complete batch.
func (p *BoothPresenter) ShowTab(v booth.View) {
	if !p.ok() {
		return
	}
	if v == booth.ViewReview && !p.session.BatchComplete() {
		return
	}
	p.session.SetView(v)
}

// Home returns to a fresh session: batch cleared, countdown cancelled.
func (p *BoothPresenter) Home() {
	if !p.ok() {
		return
	}
	p.seq.Reset()
	p.session.SetView(booth.ViewCapture)
	if p.logger != nil {
		p.logger.Info("session reset")
	}
}

func (p *BoothPresenter) warn(prefix string, err error) {
	if p.notices != nil {
		p.notices.Post(model.NoticeWarn, prefix+": "+err.Error(), time.Now())
	}
	if p.logger != nil {
		p.logger.Warn(prefix, "error", err)
	}
}
