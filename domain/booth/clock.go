package booth

import (
	"sync"
	"time"
)

// Timer is a cancellable scheduled continuation. Stop is idempotent.
type Timer interface {
	Stop()
}

// Clock schedules callbacks. Callbacks run on clock-owned goroutines and must
// only enqueue work.
type Clock interface {
	Every(d time.Duration, fn func()) Timer
	After(d time.Duration, fn func()) Timer
}

// RealClock schedules on the runtime timers.
type RealClock struct{}

func (RealClock) Every(d time.Duration, fn func()) Timer {
	t := &tickerTimer{ticker: time.NewTicker(d), stop: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.ticker.C:
				fn()
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

func (RealClock) After(d time.Duration, fn func()) Timer {
	return &afterTimer{t: time.AfterFunc(d, fn)}
}

type tickerTimer struct {
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

func (t *tickerTimer) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.stop)
	})
}

type afterTimer struct{ t *time.Timer }

func (a *afterTimer) Stop() { a.t.Stop() }

// stopTimer stops t if set and returns nil for reassignment.
func stopTimer(t Timer) Timer {
	if t != nil {
		t.Stop()
	}
	return nil
}
