package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/photo-booth-go/config"
	"github.com/soocke/photo-booth-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionOverlay lets the user frame the screen area the screen camera
// samples. The choice is saved to the config and used on the next start.
type RegionOverlay interface {
	OpenOrFocus()
	Clear()
	Close()
	Rect() *image.Rectangle
}

type regionOverlay struct {
	logger  *slog.Logger
	cfg     *config.Config
	cfgPath string
	win     *ToplevelWidget
}

// NewRegionOverlay creates a new overlay manager.
func NewRegionOverlay(cfg *config.Config, cfgPath string, logger *slog.Logger) RegionOverlay {
	return &regionOverlay{logger: logger, cfg: cfg, cfgPath: cfgPath}
}

func (v *regionOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Camera Region")
	v.win = win
	geom := "640x360+200+200"
	if r := v.Rect(); r != nil {
		geom = fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
	}
	WmGeometry(win.Window, geom)
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", 0.5)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(0), Columnspan(3), Sticky("nsew"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Use Region [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	full := win.Button(Txt("Full Screen"), Command(func() { v.Clear(); v.destroy() }))
	Grid(full, In(controls), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

// Clear selects the full screen.
func (v *regionOverlay) Clear() {
	if v.cfg == nil {
		return
	}
	v.cfg.SelectionX, v.cfg.SelectionY, v.cfg.SelectionW, v.cfg.SelectionH = 0, 0, 0, 0
	v.save()
}

func (v *regionOverlay) confirm() {
	if v.win == nil {
		return
	}
	if rect, ok := model.ParseGeometry(WmGeometry(v.win.Window)); ok && v.cfg != nil {
		v.cfg.SelectionX, v.cfg.SelectionY = rect.Min.X, rect.Min.Y
		v.cfg.SelectionW, v.cfg.SelectionH = rect.Dx(), rect.Dy()
		v.save()
	}
	v.destroy()
}

func (v *regionOverlay) save() {
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		return
	}
	if v.logger != nil {
		v.logger.Info("camera region saved", "path", v.cfgPath, "w", v.cfg.SelectionW, "h", v.cfg.SelectionH)
	}
}

func (v *regionOverlay) cancel() { v.destroy() }

func (v *regionOverlay) Close() { v.destroy() }

func (v *regionOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

// Rect returns the saved region, or nil for the full screen.
func (v *regionOverlay) Rect() *image.Rectangle {
	if v.cfg == nil || v.cfg.SelectionW <= 0 || v.cfg.SelectionH <= 0 {
		return nil
	}
	r := image.Rect(v.cfg.SelectionX, v.cfg.SelectionY, v.cfg.SelectionX+v.cfg.SelectionW, v.cfg.SelectionY+v.cfg.SelectionH)
	return &r
}
