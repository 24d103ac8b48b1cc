package booth

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/photo-booth-go/config"
	"github.com/soocke/photo-booth-go/domain/filter"
	"github.com/soocke/photo-booth-go/domain/strip"
)

// View is the active tab.
type View int

const (
	ViewCapture View = iota
	ViewReview
)

func (v View) String() string {
	switch v {
	case ViewCapture:
		return "capture"
	case ViewReview:
		return "review"
	default:
		return "unknown"
	}
}

// Session is the session-wide mutable state shared by the sequencer, the
// strip composer and the presenters. It is safe for concurrent use. Nothing
// in it outlives the process.
type Session struct {
	mu        sync.RWMutex
	id        string
	started   time.Time
	filter    filter.Kind
	batch     PhotoBatch
	style     strip.Style
	view      View
	countdown int
	autoChain bool
}

// NewSession returns an empty session seeded from cfg preferences.
func NewSession(cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Session{
		id:        uuid.NewString(),
		started:   time.Now(),
		countdown: 3,
		autoChain: cfg.AutoCapture,
		style:     strip.NewStyle(strip.DefaultBackground),
	}
	if config.ValidCountdown(cfg.CountdownSeconds) {
		s.countdown = cfg.CountdownSeconds
	}
	if k, err := filter.ParseKind(cfg.Filter); err == nil {
		s.filter = k
	}
	if strip.InPalette(cfg.StripColor) {
		s.style = strip.NewStyle(cfg.StripColor)
	}
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) Started() time.Time { return s.started }

func (s *Session) Filter() filter.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

func (s *Session) SetFilter(k filter.Kind) {
	s.mu.Lock()
	s.filter = k
	s.mu.Unlock()
}

// Style returns the strip style.
func (s *Session) Style() strip.Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}

// SetStripColor selects a palette background and derives the text colour.
func (s *Session) SetStripColor(hex string) error {
	if !strip.InPalette(hex) {
		return fmt.Errorf("booth: color %q not in palette", hex)
	}
	s.mu.Lock()
	s.style = strip.NewStyle(hex)
	s.mu.Unlock()
	return nil
}

func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *Session) SetView(v View) {
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
}

// Countdown returns the configured countdown in seconds.
func (s *Session) Countdown() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countdown
}

func (s *Session) setCountdown(secs int) {
	s.mu.Lock()
	s.countdown = secs
	s.mu.Unlock()
}

func (s *Session) AutoChain() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoChain
}

func (s *Session) setAutoChain(on bool) {
	s.mu.Lock()
	s.autoChain = on
	s.mu.Unlock()
}

// PhotoCount returns the number of captured photos.
func (s *Session) PhotoCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch.Len()
}

// Photos returns the captured photos in capture order.
func (s *Session) Photos() []*image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch.Frames()
}

// BatchComplete reports whether all photos are taken.
func (s *Session) BatchComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch.Full()
}

// appendPhoto adds a frame and returns the new count.
func (s *Session) appendPhoto(f *image.RGBA) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.batch.Append(f); err != nil {
		return s.batch.Len(), err
	}
	return s.batch.Len(), nil
}

// clearPhotos empties the batch and returns to the capture view.
func (s *Session) clearPhotos() {
	s.mu.Lock()
	s.batch.Clear()
	s.view = ViewCapture
	s.mu.Unlock()
}

// SavePreferences copies the user-facing choices back into cfg so they can
// be persisted. Photos are never written.
func (s *Session) SavePreferences(cfg *config.Config) {
	if cfg == nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg.Filter = s.filter.String()
	cfg.CountdownSeconds = s.countdown
	cfg.AutoCapture = s.autoChain
	cfg.StripColor = s.style.Background
}
