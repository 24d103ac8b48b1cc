package view

import (
	"github.com/soocke/photo-booth-go/ui/model"
	"github.com/soocke/photo-booth-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatsPanel shows camera live time and booth counters.
type StatsPanel interface {
	Set(s model.StatsSnapshot)
}

type statsPanel struct {
	liveLbl   *TLabelWidget
	countsLbl *TLabelWidget
}

// NewStatsPanel creates the live-time and counter labels in a grid layout.
// The live label is placed at (row, startCol) and the counters at (row, startCol+1).
// If parent is nil, labels are positioned relative to the App root.
func NewStatsPanel(parent *FrameWidget, row, startCol int) StatsPanel {
	s := &statsPanel{liveLbl: TLabel(Width(16), Style(theme.StyleAccentLabel)), countsLbl: TLabel(Width(28), Style(theme.StyleAccentLabel))}
	if parent != nil {
		Grid(s.liveLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.countsLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	} else {
		Grid(s.liveLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.countsLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	}
	s.Set(model.StatsSnapshot{})
	return s
}

func (s *statsPanel) Set(v model.StatsSnapshot) {
	if s == nil || s.liveLbl == nil || s.countsLbl == nil {
		return
	}
	s.liveLbl.Configure(Txt("Live: " + model.FormatClock(v.Total)))
	s.countsLbl.Configure(Txt(model.FormatCounts(v)))
}
