package presenter

import (
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/soocke/photo-booth-go/domain/booth"
	"github.com/soocke/photo-booth-go/domain/camera"
)

// DisplayedFrame supplies the frame currently on display (render pipeline).
type DisplayedFrame interface {
	CurrentFrame() (*image.RGBA, error)
}

// CameraStatus reports device permission.
type CameraStatus interface {
	Permission() camera.Permission
}

// ViewSource reports which tab is active.
type ViewSource interface {
	View() booth.View
}

// PreviewView shows the live preview or a message in its place.
type PreviewView interface {
	UpdatePreview(img image.Image)
	ShowPreviewMessage(text string)
}

const (
	DeniedText  = "Camera access denied. Allow camera access for this app and restart the booth."
	WaitingText = "Starting camera..."
)

// PreviewPresenter pushes the displayed frame to the preview on each tick.
// A frame is only re-sent when it changed since the last push.
type PreviewPresenter struct {
	frames  DisplayedFrame
	camera  CameraStatus
	session ViewSource
	view    PreviewView
	logger  *slog.Logger

	last    *image.RGBA
	message string
	pushed  atomic.Uint64
}

func NewPreviewPresenter(frames DisplayedFrame, cam CameraStatus, session ViewSource, view PreviewView, logger *slog.Logger) *PreviewPresenter {
	return &PreviewPresenter{frames: frames, camera: cam, session: session, view: view, logger: logger}
}

// ProcessFrame runs once per UI tick.
func (p *PreviewPresenter) ProcessFrame() {
	if p == nil || p.frames == nil || p.view == nil {
		return
	}
	if p.session != nil && p.session.View() != booth.ViewCapture {
		return
	}
	if p.camera != nil && p.camera.Permission() == camera.PermissionDenied {
		p.showMessage(DeniedText)
		return
	}
	frame, err := p.frames.CurrentFrame()
	if err != nil || frame == nil {
		if p.last == nil {
			p.showMessage(WaitingText)
		}
		return
	}
	if frame == p.last {
		return
	}
	p.last = frame
	p.message = ""
	p.pushed.Add(1)
	p.view.UpdatePreview(frame)
}

func (p *PreviewPresenter) showMessage(text string) {
	if p.message == text {
		return
	}
	p.message = text
	p.last = nil
	p.view.ShowPreviewMessage(text)
	if p.logger != nil {
		p.logger.Debug("preview message", "text", text)
	}
}

// Pushed returns how many frames were sent to the view.
func (p *PreviewPresenter) Pushed() uint64 {
	if p == nil {
		return 0
	}
	return p.pushed.Load()
}
