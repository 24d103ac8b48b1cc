package model

import (
	"sync"
	"time"
)

// StatsModel tracks booth activity for the stats labels: how long the
// camera has been live, photos taken and strips exported.
// It is decoupled from the UI; presenters poll Values() and update views.
// The zero value is ready to use.
type StatsModel struct {
	mu          sync.Mutex
	live        bool
	liveStart   time.Time
	lastLive    time.Duration
	accumulated time.Duration
	photos      int
	strips      int
	failures    int
}

// NewStatsModel returns a pointer to a ready-to-use StatsModel.
func NewStatsModel() *StatsModel { return &StatsModel{} }

// OnTick updates live time from the current camera readiness.
func (m *StatsModel) OnTick(live bool, now time.Time) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if live {
		if !m.live { // off -> on
			m.live = true
			m.liveStart = now
			m.lastLive = 0
		}
		m.lastLive = now.Sub(m.liveStart)
	} else if m.live { // on -> off
		m.lastLive = now.Sub(m.liveStart)
		m.accumulated += m.lastLive
		m.live = false
	}
}

func (m *StatsModel) AddPhoto() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.photos++
	m.mu.Unlock()
}

func (m *StatsModel) AddStrip() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.strips++
	m.mu.Unlock()
}

func (m *StatsModel) AddFailure() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.failures++
	m.mu.Unlock()
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Live     time.Duration
	Total    time.Duration
	Photos   int
	Strips   int
	Failures int
}

// Values returns the current counters. Total includes the ongoing live span.
func (m *StatsModel) Values() StatsSnapshot {
	if m == nil {
		return StatsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := StatsSnapshot{Live: m.lastLive, Total: m.accumulated, Photos: m.photos, Strips: m.strips, Failures: m.failures}
	if m.live {
		s.Total += s.Live
	}
	return s
}
