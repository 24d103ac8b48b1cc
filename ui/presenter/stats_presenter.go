package presenter

import (
	"time"

	"github.com/soocke/photo-booth-go/ui/model"
)

// LiveSource reports whether the camera is delivering frames.
type LiveSource interface{ Ready() bool }

// StatsView displays booth counters.
type StatsView interface {
	SetStats(s model.StatsSnapshot)
}

// StatsPresenter advances the stats model and pushes values to the view.
type StatsPresenter struct {
	stats *model.StatsModel
	live  LiveSource
	view  StatsView
	last  model.StatsSnapshot
	shown bool
}

// NewStatsPresenter returns a new StatsPresenter.
func NewStatsPresenter(stats *model.StatsModel, live LiveSource, view StatsView) *StatsPresenter {
	return &StatsPresenter{stats: stats, live: live, view: view}
}

// Tick updates the model and refreshes the view when a displayed value changed.
func (p *StatsPresenter) Tick(now time.Time) {
	if p == nil || p.stats == nil || p.live == nil || p.view == nil {
		return
	}
	p.stats.OnTick(p.live.Ready(), now)
	s := p.stats.Values()
	if p.shown && sameSecond(s, p.last) {
		return
	}
	p.shown = true
	p.last = s
	p.view.SetStats(s)
}

func sameSecond(a, b model.StatsSnapshot) bool {
	return a.Live/time.Second == b.Live/time.Second &&
		a.Total/time.Second == b.Total/time.Second &&
		a.Photos == b.Photos && a.Strips == b.Strips && a.Failures == b.Failures
}
