package app

import (
	"log/slog"

	"github.com/soocke/photo-booth-go/config"
	"github.com/soocke/photo-booth-go/domain/booth"
	"github.com/soocke/photo-booth-go/domain/camera"
	"github.com/soocke/photo-booth-go/domain/filter"
	"github.com/soocke/photo-booth-go/domain/render"
	"github.com/soocke/photo-booth-go/domain/share"
	"github.com/soocke/photo-booth-go/ui/model"
	"github.com/soocke/photo-booth-go/ui/presenter"
	"github.com/soocke/photo-booth-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	CfgPath  string
	Logger   *slog.Logger
	Notices  *model.NoticeModel
	Stats    *model.StatsModel
	Session  *booth.Session
	Camera   camera.Service
	Engine   *filter.Engine
	Pipeline *render.Pipeline
	Seq      *booth.Sequencer
	Exporter *share.Exporter
	QR       *share.QR
	RootView *view.RootView
	UI       view.UI

	// Presenters
	BoothPresenter   *presenter.BoothPresenter
	StatePresenter   *presenter.StatePresenter
	PreviewPresenter *presenter.PreviewPresenter
	StripPresenter   *presenter.StripPresenter
	StatsPresenter   *presenter.StatsPresenter
	Watcher          *presenter.CameraWatcher
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. Nothing is started here; the
// camera, watcher and update loop are started by the app once the view exists.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger}
	c.Notices = &model.NoticeModel{}
	c.Stats = model.NewStatsModel()
	c.Session = booth.NewSession(cfg)

	c.Camera = camera.NewService(newDevice(cfg), cfg.FrameInterval(), logger)
	c.Engine = filter.NewEngine()
	c.Pipeline = render.NewPipeline(c.Camera, c.Engine.Apply, cfg.RefreshInterval(), logger)
	c.Pipeline.SetFilter(c.Session.Filter())
	c.Seq = booth.NewSequencer(c.Session, c.Pipeline, c.Camera, nil, cfg.AutoCaptureDelay(), logger)

	c.Exporter = share.NewExporter(nil, cfg.ExportSettle(), logger)
	c.QR = share.NewQR(cfg.QRSize, cfg.QRMargin, logger)

	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView

	c.BoothPresenter = presenter.NewBoothPresenter(c.Seq, c.Pipeline, c.Session, c.Notices, logger)
	c.StatePresenter = presenter.NewStatePresenter(c.Seq, c.Session, c.Notices, c.Stats, c.UI)
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Pipeline, c.Camera, c.Session, c.UI, logger)
	c.StripPresenter = presenter.NewStripPresenter(c.Session, c.Exporter, c.QR, c.Notices, c.Stats, c.UI, logger)
	c.StripPresenter.OutputDir = cfg.OutputDir
	c.StripPresenter.Payload = cfg.SharePayload
	c.StatsPresenter = presenter.NewStatsPresenter(c.Stats, c.Camera, c.UI)
	c.Watcher = presenter.NewCameraWatcher(c.Camera, c.Pipeline, c.Notices, logger, 0)
	return c
}

// newDevice picks the camera device from config.
func newDevice(cfg *config.Config) camera.Device {
	if cfg.CameraSource == config.SourcePattern {
		return camera.NewPatternDevice(cfg.CameraWidth, cfg.CameraHeight)
	}
	return camera.NewScreenDevice(cfg.CameraRegion())
}
