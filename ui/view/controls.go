package view

import (
	"log/slog"
	"strconv"

	"github.com/soocke/photo-booth-go/config"
	"github.com/soocke/photo-booth-go/domain/filter"
	"github.com/soocke/photo-booth-go/domain/share"
	"github.com/soocke/photo-booth-go/domain/strip"
	"github.com/soocke/photo-booth-go/ui/model"
	"github.com/soocke/photo-booth-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Controls encapsulates the pickers and action buttons below the preview.
type Controls interface {
	Build(startRow int, sel Selection, h Handlers, onRegion, onHelp func()) (endRow int)
	SetCountdownEditable(enabled bool)
	SetAutoShortcut(visible bool)
	SetAutoMode(on bool)
}

type controls struct {
	logger      *slog.Logger
	filterBox   *TComboboxWidget
	countdown   *TComboboxWidget
	autoBtn     *ButtonWidget
	shortcutBtn *TButtonWidget
	auto        bool
}

// NewControls creates the controls view.
func NewControls(logger *slog.Logger) Controls {
	return &controls{logger: logger}
}

func (v *controls) Build(startRow int, sel Selection, h Handlers, onRegion, onHelp func()) (row int) {
	row = startRow
	makeRow := func(label string) *FrameWidget {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		f := Frame()
		Grid(f, Row(row), Column(1), Columnspan(4), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		row++
		return f
	}

	// Filter
	kinds := filter.Kinds()
	f := makeRow("Filter")
	v.filterBox = TCombobox(Values(model.FilterLabels()), Width(12), State("readonly"))
	Grid(v.filterBox, In(f), Row(0), Column(0), Sticky("w"))
	if k, err := filter.ParseKind(sel.Filter); err == nil {
		v.filterBox.Current(int(k))
	} else {
		v.filterBox.Current(0)
	}
	Bind(v.filterBox, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(v.filterBox.Current(nil))
		if err != nil || idx < 0 || idx >= len(kinds) {
			v.logError("filter selection parse error", err)
			return
		}
		call1(h.OnFilter, kinds[idx].String())
	}))

	// Countdown + auto
	f = makeRow("Countdown")
	v.countdown = TCombobox(Values(model.CountdownLabels()), Width(6), State("readonly"))
	Grid(v.countdown, In(f), Row(0), Column(0), Sticky("w"))
	v.countdown.Current(0)
	for i, s := range config.CountdownChoices {
		if s == sel.Countdown {
			v.countdown.Current(i)
		}
	}
	Bind(v.countdown, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(v.countdown.Current(nil))
		if err != nil || idx < 0 || idx >= len(config.CountdownChoices) {
			v.logError("countdown selection parse error", err)
			return
		}
		call1(h.OnCountdown, config.CountdownChoices[idx])
	}))
	v.auto = sel.Auto
	v.autoBtn = Button(Txt(model.AutoLabel(v.auto)), Command(func() {
		if h.OnToggleAuto == nil {
			return
		}
		v.auto = h.OnToggleAuto()
		v.autoBtn.Configure(Txt(model.AutoLabel(v.auto)))
	}))
	Grid(v.autoBtn, In(f), Row(0), Column(1), Padx("0.4m"))
	v.shortcutBtn = TButton(Txt("Start Auto-Capture"), Style(theme.StylePrimaryButton), State("disabled"), Command(func() { call0(h.OnStartAuto) }))
	Grid(v.shortcutBtn, In(f), Row(0), Column(2), Padx("0.4m"))

	// Strip colour
	f = makeRow("Strip Color")
	for i, hex := range strip.Palette {
		hex := hex
		b := Button(Txt(strip.ColorName(hex)), Background(hex), Foreground(strip.TextColorFor(hex)), Command(func() { call1(h.OnColor, hex) }))
		Grid(b, In(f), Row(0), Column(i), Padx("0.2m"))
	}

	// Export / share
	f = makeRow("Share")
	col := 0
	add := func(w Widget) {
		Grid(w, In(f), Row(0), Column(col), Padx("0.2m"))
		col++
	}
	add(TButton(Txt("Download"), Style(theme.StylePrimaryButton), Command(func() { call0(h.OnDownload) })))
	add(Button(Txt("QR Code"), Command(func() { call0(h.OnToggleQR) })))
	for _, p := range share.Platforms() {
		p := p
		add(Button(Txt(p.DisplayName()), Command(func() { call1(h.OnShare, p) })))
	}

	// Session
	f = makeRow("Booth")
	col = 0
	add(TButton(Txt("Back to Home"), Style(theme.StyleDangerButton), Command(func() { call0(h.OnHome) })))
	add(Button(Txt("Instructions"), Command(func() { call0(onHelp) })))
	add(Button(Txt("Camera Region"), Command(func() { call0(onRegion) })))
	add(Button(Txt("Save Preferences"), Command(func() { call0(h.OnSavePrefs) })))
	add(Button(Txt("Exit"), Command(func() { call0(h.OnExit) })))
	return row
}

func (v *controls) SetCountdownEditable(enabled bool) {
	if v.countdown != nil {
		state := "disabled"
		if enabled {
			state = "readonly"
		}
		v.countdown.Configure(State(state))
	}
}

func (v *controls) SetAutoShortcut(visible bool) {
	if v.shortcutBtn != nil {
		v.shortcutBtn.Configure(State(stateOf(visible)))
	}
}

func (v *controls) SetAutoMode(on bool) {
	v.auto = on
	if v.autoBtn != nil {
		v.autoBtn.Configure(Txt(model.AutoLabel(on)))
	}
}

func (v *controls) logError(msg string, err error) {
	if v.logger != nil {
		v.logger.Error(msg, "error", err)
	}
}
