package presenter

import (
	"sync/atomic"
	"time"
)

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	State    *StatePresenter
	Preview  *PreviewPresenter
	Strip    *StripPresenter
	Stats    *StatsPresenter
	Schedule func()
	ticks    atomic.Uint64
}

func NewLoop(state *StatePresenter, preview *PreviewPresenter, strip *StripPresenter, stats *StatsPresenter, schedule func()) *Loop {
	return &Loop{State: state, Preview: preview, Strip: strip, Stats: stats, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	l.ticks.Add(1)
	now := time.Now()
	// State first so a completed batch switches tabs before the strip renders.
	if l.State != nil {
		l.State.Tick(now)
	}
	if l.Strip != nil {
		l.Strip.Tick(now)
	}
	if l.Preview != nil {
		l.Preview.ProcessFrame()
	}
	if l.Stats != nil {
		l.Stats.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 {
	if l == nil {
		return 0
	}
	return l.ticks.Load()
}
