package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/photo-booth-go/config"
	"github.com/soocke/photo-booth-go/debug"
	"github.com/soocke/photo-booth-go/domain/booth"
	"github.com/soocke/photo-booth-go/ui/model"
	"github.com/soocke/photo-booth-go/ui/presenter"
	"github.com/soocke/photo-booth-go/ui/theme"
	"github.com/soocke/photo-booth-go/ui/view"
)

const (
	tick          = 33 * time.Millisecond
	debugInterval = 5 * time.Second
)

type app struct {
	c       *AppContainer
	width   int
	height  int
	afterID string
	closed  bool

	debugCancel context.CancelFunc
}

// NewApp prepares the main window. Nothing runs until Start.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{width: width, height: height}
	a.c = BuildContainer(cfg, cfgPath, logger)

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the view, starts the camera and blocks in the Tk event loop.
func (a *app) Start() {
	c := a.c
	theme.SetDark(c.Config.DarkMode)

	c.RootView.Build(view.Selection{
		Filter:    c.Session.Filter().String(),
		Countdown: c.Session.Countdown(),
		Auto:      c.Session.AutoChain(),
		Color:     c.Session.Style().Background,
	}, a.handlers())
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 1, Weight(1))

	c.Seq.AddEventListener(c.StatePresenter.OnEvent)
	c.Seq.AddListener(func(prev, next booth.CaptureState) {
		c.Logger.Debug("capture state", "from", prev.String(), "to", next.String())
	})

	c.Loop = presenter.NewLoop(c.StatePresenter, c.PreviewPresenter, c.StripPresenter, c.StatsPresenter, a.scheduleUpdate)
	if err := c.Camera.Start(); err != nil {
		c.Logger.Error("camera start failed", "error", err)
	}
	c.Watcher.Start()
	a.startDebug()

	c.Logger.Info("booth started", "session", c.Session.ID(), "source", c.Config.CameraSource, "filter", c.Session.Filter().String())
	a.scheduleUpdate()
	c.RootView.ShowInstructions()
	App.Wait()
}

func (a *app) handlers() view.Handlers {
	c := a.c
	bp, sp := c.BoothPresenter, c.StripPresenter
	return view.Handlers{
		OnCapture:    bp.Capture,
		OnFilter:     bp.SelectFilter,
		OnCountdown:  bp.SelectCountdown,
		OnToggleAuto: bp.ToggleAuto,
		OnStartAuto:  bp.StartAuto,
		OnColor:      bp.SelectColor,
		OnTab:        bp.ShowTab,
		OnDownload:   sp.Download,
		OnToggleQR:   sp.ToggleQR,
		OnShare:      sp.Share,
		OnHome:       bp.Home,
		OnSavePrefs:  a.savePreferences,
		OnExit:       a.exitHandler,
	}
}

// savePreferences persists the current choices next to the camera region.
func (a *app) savePreferences() {
	c := a.c
	c.Session.SavePreferences(c.Config)
	if err := c.Config.Save(c.CfgPath); err != nil {
		c.Logger.Error("save preferences failed", "path", c.CfgPath, "error", err)
		c.Notices.Post(model.NoticeError, "Could not save preferences: "+err.Error(), time.Now())
		return
	}
	c.Logger.Info("preferences saved", "path", c.CfgPath)
	c.Notices.Post(model.NoticeInfo, "Preferences saved", time.Now())
}

func (a *app) startDebug() {
	c := a.c
	if !c.Config.Debug {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.debugCancel = cancel
	debug.StartRuntimeLogger(ctx, debugInterval, c.Logger,
		debug.Probe{Name: "filter_calls", Value: c.Engine.Calls},
		debug.Probe{Name: "render_iterations", Value: c.Pipeline.Loop().Iterations},
		debug.Probe{Name: "camera_captures", Value: func() uint64 { return c.Camera.Stats().Captures }},
		debug.Probe{Name: "preview_pushes", Value: c.PreviewPresenter.Pushed},
		debug.Probe{Name: "strip_exports", Value: c.StripPresenter.Exports},
		debug.Probe{Name: "camera_changes", Value: c.Watcher.Changes},
		debug.Probe{Name: "ui_ticks", Value: c.Loop.Ticks},
	)
	debug.StartMemLogger(ctx, debugInterval, c.Logger)
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	c := a.c
	c.Watcher.Stop()
	c.Seq.Close()
	c.Pipeline.Close()
	c.Camera.Release()
	c.StripPresenter.Close()
	if a.debugCancel != nil {
		a.debugCancel()
	}
	c.RootView.Close()
	c.Logger.Info("booth closed", "session", c.Session.ID(), "photos", c.Session.PhotoCount())
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
