package presenter

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/photo-booth-go/domain/camera"
	"github.com/soocke/photo-booth-go/ui/model"
)

// CameraProbe narrows the camera service for the watcher.
type CameraProbe interface {
	Ready() bool
	Permission() camera.Permission
}

// ReadySink is told when camera readiness flips (render pipeline).
type ReadySink interface {
	SetCameraReady(ready bool)
}

// CameraWatcher polls the camera and forwards readiness changes so the render
// loop starts and stops with the stream.
type CameraWatcher struct {
	Camera   CameraProbe
	Sink     ReadySink
	Notices  NoticeSink
	Logger   *slog.Logger
	interval time.Duration

	mu         sync.Mutex
	running    atomic.Bool
	done       chan struct{}
	exited     chan struct{}
	ready      bool
	permission camera.Permission
	changes    atomic.Uint64
}

// NewCameraWatcher constructs a watcher polling every interval (250ms default).
func NewCameraWatcher(cam CameraProbe, sink ReadySink, notices NoticeSink, logger *slog.Logger, interval time.Duration) *CameraWatcher {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &CameraWatcher{Camera: cam, Sink: sink, Notices: notices, Logger: logger, interval: interval}
}

// Start begins polling. Idempotent.
func (w *CameraWatcher) Start() {
	if w == nil || w.Camera == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running.Load() {
		return
	}
	w.done = make(chan struct{})
	w.exited = make(chan struct{})
	w.running.Store(true)
	go w.loop(w.done, w.exited)
}

// Stop ends polling and waits for the goroutine. Idempotent.
func (w *CameraWatcher) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running.Load() {
		return
	}
	close(w.done)
	<-w.exited
	w.running.Store(false)
}

// Running reports whether the watcher polls.
func (w *CameraWatcher) Running() bool { return w != nil && w.running.Load() }

// Changes counts readiness flips forwarded to the sink.
func (w *CameraWatcher) Changes() uint64 {
	if w == nil {
		return 0
	}
	return w.changes.Load()
}

func (w *CameraWatcher) loop(done <-chan struct{}, exited chan<- struct{}) {
	defer close(exited)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.poll()
	for {
		select {
		case <-ticker.C:
			w.poll()
		case <-done:
			return
		}
	}
}

func (w *CameraWatcher) poll() {
	ready := w.Camera.Ready()
	if ready != w.ready {
		w.ready = ready
		w.changes.Add(1)
		if w.Sink != nil {
			w.Sink.SetCameraReady(ready)
		}
		if w.Logger != nil {
			w.Logger.Info("camera readiness changed", "ready", ready)
		}
		if !ready && w.Camera.Permission() == camera.PermissionGranted && w.Notices != nil {
			w.Notices.Post(model.NoticeWarn, "Camera stream lost", time.Now())
		}
	}
	perm := w.Camera.Permission()
	if perm != w.permission {
		w.permission = perm
		if perm == camera.PermissionDenied {
			if w.Logger != nil {
				w.Logger.Warn("camera permission denied")
			}
			if w.Notices != nil {
				w.Notices.Post(model.NoticeError, "Camera access denied", time.Now())
			}
		}
	}
}
