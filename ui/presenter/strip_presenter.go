package presenter

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soocke/photo-booth-go/domain/share"
	"github.com/soocke/photo-booth-go/domain/strip"
	"github.com/soocke/photo-booth-go/ui/images"
	"github.com/soocke/photo-booth-go/ui/model"
)

// StripSession is the session state the strip is built from.
type StripSession interface {
	Photos() []*image.RGBA
	PhotoCount() int
	Style() strip.Style
}

// StripExporter rasterizes and saves strips.
type StripExporter interface {
	Export(ctx context.Context, art strip.Artifact) ([]byte, error)
	Download(data []byte, dir string) (string, error)
}

// QRGenerator renders share codes.
type QRGenerator interface {
	Generate(payload string) (*image.RGBA, error)
}

// StripCounter is notified of saved strips.
type StripCounter interface{ AddStrip() }

// StripView is the review tab.
type StripView interface {
	UpdateStrip(img image.Image)
	SetThumbnails(thumbs []image.Image)
	ShowQR(img image.Image)
	HideQR()
}

const (
	ThumbWidth    = 96
	ThumbHeight   = 72
	exportTimeout = 15 * time.Second
)

// StripPresenter recomposes the strip when the batch or style changes and
// handles download, QR and share actions.
type StripPresenter struct {
	session StripSession
	export  StripExporter
	qr      QRGenerator
	notices NoticeSink
	stats   StripCounter
	view    StripView
	logger  *slog.Logger

	OutputDir string
	Payload   string
	AutoQR    bool

	ctx    context.Context
	cancel context.CancelFunc

	initialized bool
	lastCount   int
	lastStyle   strip.Style
	artifact    strip.Artifact
	qrShown     bool
	exporting   atomic.Bool
	exports     atomic.Uint64
}

func NewStripPresenter(session StripSession, export StripExporter, qr QRGenerator, notices NoticeSink, stats StripCounter, view StripView, logger *slog.Logger) *StripPresenter {
	ctx, cancel := context.WithCancel(context.Background())
	return &StripPresenter{
		session:   session,
		export:    export,
		qr:        qr,
		notices:   notices,
		stats:     stats,
		view:      view,
		logger:    logger,
		OutputDir: ".",
		AutoQR:    true,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Tick recomposes when the batch size or style changed.
func (p *StripPresenter) Tick(now time.Time) {
	if p == nil || p.session == nil || p.view == nil {
		return
	}
	count, style := p.session.PhotoCount(), p.session.Style()
	if p.initialized && count == p.lastCount && style == p.lastStyle {
		return
	}
	p.initialized = true
	wasComplete := p.artifact.Complete
	p.lastCount, p.lastStyle = count, style

	photos := p.session.Photos()
	thumbs := make([]image.Image, 0, len(photos))
	for _, ph := range photos {
		thumbs = append(thumbs, images.Thumbnail(ph, ThumbWidth, ThumbHeight))
	}
	p.view.SetThumbnails(thumbs)

	p.artifact = strip.Compose(photos, style, now)
	p.view.UpdateStrip(p.artifact.Image)
	switch {
	case !p.artifact.Complete:
		p.hideQR()
	case !wasComplete && p.AutoQR:
		p.showQR()
	}
}

// Artifact returns the most recently composed strip.
func (p *StripPresenter) Artifact() strip.Artifact {
	if p == nil {
		return strip.Artifact{}
	}
	return p.artifact
}

// Download exports the strip in the background and reports the outcome as a
// notice. A second request while one is running is dropped.
func (p *StripPresenter) Download() {
	if p == nil || p.export == nil {
		return
	}
	art := p.artifact
	if !art.Complete {
		p.post(model.NoticeWarn, "Take 4 photos before downloading")
		return
	}
	if !p.exporting.CompareAndSwap(false, true) {
		return
	}
	dir := p.OutputDir
	go func() {
		defer p.exporting.Store(false)
		ctx, cancel := context.WithTimeout(p.ctx, exportTimeout)
		defer cancel()
		data, err := p.export.Export(ctx, art)
		if err == nil {
			var path string
			path, err = p.export.Download(data, dir)
			if err == nil {
				p.exports.Add(1)
				if p.stats != nil {
					p.stats.AddStrip()
				}
				p.post(model.NoticeInfo, "Saved "+path)
				return
			}
		}
		if p.logger != nil {
			p.logger.Error("strip export failed", "error", err)
		}
		p.post(model.NoticeError, "Export failed: "+err.Error())
	}()
}

// Exporting reports whether a download is in flight.
func (p *StripPresenter) Exporting() bool { return p != nil && p.exporting.Load() }

// Exports counts successful downloads.
func (p *StripPresenter) Exports() uint64 {
	if p == nil {
		return 0
	}
	return p.exports.Load()
}

// ToggleQR shows or hides the share code.
func (p *StripPresenter) ToggleQR() {
	if p == nil || p.view == nil {
		return
	}
	if p.qrShown {
		p.hideQR()
		return
	}
	p.showQR()
}

// QRShown reports whether the share code is visible.
func (p *StripPresenter) QRShown() bool { return p != nil && p.qrShown }

func (p *StripPresenter) showQR() {
	if p.qr == nil {
		return
	}
	img, err := p.qr.Generate(p.Payload)
	if err != nil && p.logger != nil {
		p.logger.Warn("qr fallback used", "error", err)
	}
	if img == nil {
		p.post(model.NoticeError, "Could not generate QR code")
		return
	}
	p.qrShown = true
	p.view.ShowQR(img)
}

func (p *StripPresenter) hideQR() {
	if !p.qrShown {
		return
	}
	p.qrShown = false
	p.view.HideQR()
}

// Share acknowledges a share request.
func (p *StripPresenter) Share(platform share.Platform) {
	if p == nil {
		return
	}
	msg, err := share.Share(platform, p.logger)
	if err != nil {
		p.post(model.NoticeWarn, err.Error())
		return
	}
	p.post(model.NoticeInfo, msg)
}

// Close aborts an in-flight export.
func (p *StripPresenter) Close() {
	if p != nil && p.cancel != nil {
		p.cancel()
	}
}

func (p *StripPresenter) post(level model.NoticeLevel, text string) {
	if p.notices != nil {
		p.notices.Post(level, text, time.Now())
	}
}
