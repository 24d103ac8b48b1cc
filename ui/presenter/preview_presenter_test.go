package presenter

import (
	"errors"
	"image"
	"testing"

	"github.com/soocke/photo-booth-go/domain/booth"
	"github.com/soocke/photo-booth-go/domain/camera"
)

type mockDisplayed struct {
	frame *image.RGBA
	err   error
}

func (m *mockDisplayed) CurrentFrame() (*image.RGBA, error) { return m.frame, m.err }

type mockPerm struct{ p camera.Permission }

func (m *mockPerm) Permission() camera.Permission { return m.p }

type mockPreviewView struct {
	updates  int
	messages []string
}

func (v *mockPreviewView) UpdatePreview(image.Image)         { v.updates++ }
func (v *mockPreviewView) ShowPreviewMessage(text string)    { v.messages = append(v.messages, text) }

func TestPreviewPresenter_PushesChangedFramesOnly(t *testing.T) {
	src := &mockDisplayed{err: errors.New("no frame")}
	view := &mockPreviewView{}
	p := NewPreviewPresenter(src, &mockPerm{p: camera.PermissionPending}, &mockSession{}, view, nil)

	p.ProcessFrame()
	p.ProcessFrame()
	if len(view.messages) != 1 || view.messages[0] != WaitingText {
		t.Fatalf("expected one waiting message, got %v", view.messages)
	}
	src.frame, src.err = image.NewRGBA(image.Rect(0, 0, 4, 3)), nil
	p.ProcessFrame()
	p.ProcessFrame()
	if view.updates != 1 || p.Pushed() != 1 {
		t.Fatalf("same frame pushed twice: %d", view.updates)
	}
	src.frame = image.NewRGBA(image.Rect(0, 0, 4, 3))
	p.ProcessFrame()
	if view.updates != 2 {
		t.Fatalf("new frame not pushed")
	}
}

func TestPreviewPresenter_DeniedShowsMessage(t *testing.T) {
	view := &mockPreviewView{}
	perm := &mockPerm{p: camera.PermissionDenied}
	p := NewPreviewPresenter(&mockDisplayed{frame: image.NewRGBA(image.Rect(0, 0, 2, 2))}, perm, &mockSession{}, view, nil)
	p.ProcessFrame()
	p.ProcessFrame()
	if view.updates != 0 || len(view.messages) != 1 || view.messages[0] != DeniedText {
		t.Fatalf("denied state wrong: updates=%d messages=%v", view.updates, view.messages)
	}
}

func TestPreviewPresenter_IdleInReviewTab(t *testing.T) {
	view := &mockPreviewView{}
	sess := &mockSession{view: booth.ViewReview}
	p := NewPreviewPresenter(&mockDisplayed{frame: image.NewRGBA(image.Rect(0, 0, 2, 2))}, nil, sess, view, nil)
	p.ProcessFrame()
	if view.updates != 0 {
		t.Fatalf("preview should not update on the review tab")
	}
}
