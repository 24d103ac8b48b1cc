package view

import (
	"github.com/soocke/photo-booth-go/assets"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Instructions is the "How to use the PhotoBooth" dialog.
type Instructions interface {
	Open()
	Toggle()
	Close()
}

type instructions struct {
	win *ToplevelWidget
}

func NewInstructions() Instructions { return &instructions{} }

func (v *instructions) Open() {
	if v.win != nil {
		return
	}
	title, steps := assets.Instructions()
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle(title)
	v.win = win
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.Close)
	head := win.Label(Txt(title), Anchor("w"))
	Grid(head, Row(0), Column(0), Sticky("we"), Padx("2m"), Pady("1m"))
	for i, s := range steps {
		l := win.Label(Txt(s), Anchor("w"), Justify("left"), Wraplength("80m"))
		Grid(l, Row(i+1), Column(0), Sticky("we"), Padx("2m"), Pady("0.3m"))
	}
	ok := win.Button(Txt("Got it!"), Command(v.Close))
	Grid(ok, Row(len(steps)+1), Column(0), Sticky("e"), Padx("2m"), Pady("1m"))
}

func (v *instructions) Toggle() {
	if v.win != nil {
		v.Close()
		return
	}
	v.Open()
}

func (v *instructions) Close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}
