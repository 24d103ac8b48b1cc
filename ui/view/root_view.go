package view

import (
	"image"
	"log/slog"

	"github.com/soocke/photo-booth-go/config"
	"github.com/soocke/photo-booth-go/domain/booth"
	"github.com/soocke/photo-booth-go/domain/share"
	"github.com/soocke/photo-booth-go/ui/model"
	"github.com/soocke/photo-booth-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are invoked on user actions. Nil handlers are ignored.
type Handlers struct {
	OnCapture    func()
	OnFilter     func(id string)
	OnCountdown  func(secs int)
	OnToggleAuto func() bool
	OnStartAuto  func()
	OnColor      func(hex string)
	OnTab        func(v booth.View)
	OnDownload   func()
	OnToggleQR   func()
	OnShare      func(p share.Platform)
	OnHome       func()
	OnSavePrefs  func()
	OnExit       func()
}

// Selection seeds the pickers.
type Selection struct {
	Filter    string
	Countdown int
	Auto      bool
	Color     string
}

// RootView composes the top-level booth layout and wires UI callbacks.
// It owns the subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Stats    StatsPanel
	Controls Controls
	Preview  Preview
	Region   RegionOverlay
	Help     Instructions

	// Widgets
	CountdownLabel *TLabelWidget
	StatusLabel    *LabelWidget
	CaptureBtn     *TButtonWidget
	CaptureTab     *ButtonWidget
	StripTab       *ButtonWidget

	view booth.View
}

// UI abstracts the view operations needed by presenters, decoupling them
// from the concrete RootView implementation.
type UI interface {
	SetCountdown(text string)
	SetStatus(text string, level model.NoticeLevel)
	SetCaptureButton(text string)
	SetCountdownEditable(enabled bool)
	SetStripTabEnabled(enabled bool)
	SetAutoShortcut(visible bool)
	SetAutoMode(on bool)
	ShowView(v booth.View)
	UpdatePreview(img image.Image)
	ShowPreviewMessage(text string)
	UpdateStrip(img image.Image)
	SetThumbnails(thumbs []image.Image)
	ShowQR(img image.Image)
	HideQR()
	SetStats(s model.StatsSnapshot)
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout.
func (rv *RootView) Build(sel Selection, h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: tabs, countdown, stats
	tabs := Frame()
	Grid(tabs, Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	rv.CaptureTab = Button(Txt("Capture"), Command(func() { call1(h.OnTab, booth.ViewCapture) }))
	Grid(rv.CaptureTab, In(tabs), Row(0), Column(0), Padx("0.2m"))
	rv.StripTab = Button(Txt("Photo Strip"), State("disabled"), Command(func() { call1(h.OnTab, booth.ViewReview) }))
	Grid(rv.StripTab, In(tabs), Row(0), Column(1), Padx("0.2m"))

	rv.CountdownLabel = TLabel(Txt(""), Width(4), Anchor("center"), Style(theme.StyleCountdown))
	Grid(rv.CountdownLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.Stats = NewStatsPanel(nil, 0, 3)

	// Row 1: preview / strip with thumbnails and QR beside it
	rv.Preview = NewPreview(1)

	// Row 2: main capture button and status line
	rv.CaptureBtn = TButton(Txt("Take Photo (0/4)"), Style(theme.StylePrimaryButton), Command(func() { call0(h.OnCapture) }))
	Grid(rv.CaptureBtn, Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.StatusLabel = Label(Txt(""), Anchor("w"), Foreground(theme.ColorTextMuted))
	Grid(rv.StatusLabel, Row(2), Column(2), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Rows 3+: pickers and actions
	rv.Region = NewRegionOverlay(rv.cfg, rv.cfgPath, rv.logger)
	rv.Help = NewInstructions()
	rv.Controls = NewControls(rv.logger)
	rv.Controls.Build(3, sel, h, rv.Region.OpenOrFocus, rv.Help.Toggle)
}

// SetCountdown updates the countdown overlay.
func (rv *RootView) SetCountdown(text string) {
	if rv != nil && rv.CountdownLabel != nil {
		rv.CountdownLabel.Configure(Txt(text))
	}
}

// SetStatus shows a notice in the status line.
func (rv *RootView) SetStatus(text string, level model.NoticeLevel) {
	if rv == nil || rv.StatusLabel == nil {
		return
	}
	color := theme.ColorTextMuted
	switch level {
	case model.NoticeWarn:
		color = theme.ColorWarn
	case model.NoticeError:
		color = theme.ColorDanger
	}
	rv.StatusLabel.Configure(Txt(text), Foreground(color))
}

// SetCaptureButton updates the main button label.
func (rv *RootView) SetCaptureButton(text string) {
	if rv != nil && rv.CaptureBtn != nil {
		rv.CaptureBtn.Configure(Txt(text))
	}
}

// SetCountdownEditable toggles the countdown picker.
func (rv *RootView) SetCountdownEditable(enabled bool) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetCountdownEditable(enabled)
	}
}

// SetStripTabEnabled toggles the review tab button.
func (rv *RootView) SetStripTabEnabled(enabled bool) {
	if rv != nil && rv.StripTab != nil {
		rv.StripTab.Configure(State(stateOf(enabled)))
	}
}

// SetAutoShortcut toggles the "Start Auto-Capture" shortcut.
func (rv *RootView) SetAutoShortcut(visible bool) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetAutoShortcut(visible)
	}
}

// SetAutoMode reflects the auto-capture setting on its toggle.
func (rv *RootView) SetAutoMode(on bool) {
	if rv != nil && rv.Controls != nil {
		rv.Controls.SetAutoMode(on)
	}
}

// ShowView switches the main image between live preview and strip.
func (rv *RootView) ShowView(v booth.View) {
	if rv == nil || rv.Preview == nil {
		return
	}
	rv.view = v
	rv.Preview.Show(v)
	if rv.CaptureTab != nil && rv.StripTab != nil {
		rv.CaptureTab.Configure(Relief(reliefOf(v == booth.ViewCapture)))
		rv.StripTab.Configure(Relief(reliefOf(v == booth.ViewReview)))
	}
}

// UpdatePreview proxies to the preview subview.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateLive(img)
	}
}

// ShowPreviewMessage replaces the live image with text.
func (rv *RootView) ShowPreviewMessage(text string) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Message(text)
	}
}

// UpdateStrip proxies to the preview subview.
func (rv *RootView) UpdateStrip(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateStrip(img)
	}
}

// SetThumbnails proxies to the preview subview.
func (rv *RootView) SetThumbnails(thumbs []image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.SetThumbnails(thumbs)
	}
}

func (rv *RootView) ShowQR(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.ShowQR(img)
	}
}

func (rv *RootView) HideQR() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.HideQR()
	}
}

// SetStats proxies to the stats subview.
func (rv *RootView) SetStats(s model.StatsSnapshot) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.Set(s)
	}
}

// ShowInstructions opens the how-to dialog.
func (rv *RootView) ShowInstructions() {
	if rv != nil && rv.Help != nil {
		rv.Help.Open()
	}
}

// Close destroys auxiliary windows.
func (rv *RootView) Close() {
	if rv == nil {
		return
	}
	if rv.Help != nil {
		rv.Help.Close()
	}
	if rv.Region != nil {
		rv.Region.Close()
	}
}

func stateOf(enabled bool) string {
	if enabled {
		return "normal"
	}
	return "disabled"
}

func reliefOf(active bool) string {
	if active {
		return "sunken"
	}
	return "raised"
}

func call0(f func()) {
	if f != nil {
		f()
	}
}

func call1[T any](f func(T), v T) {
	if f != nil {
		f(v)
	}
}
