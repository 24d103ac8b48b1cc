package model

import (
	"sync"
	"time"
)

// NoticeLevel ranks status messages.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeWarn
	NoticeError
)

// Notice is a user-visible status line.
type Notice struct {
	Text  string
	Level NoticeLevel
	At    time.Time
}

// NoticeModel holds the most recent status message. Domain listeners post
// from their own goroutines while the UI tick reads, so access is locked.
// The zero value is usable.
type NoticeModel struct {
	mu      sync.Mutex
	current Notice
	version uint64
}

// Post replaces the current notice.
func (m *NoticeModel) Post(level NoticeLevel, text string, now time.Time) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.current = Notice{Text: text, Level: level, At: now}
	m.version++
	m.mu.Unlock()
}

// Clear drops the current notice.
func (m *NoticeModel) Clear() {
	if m == nil {
		return
	}
	m.mu.Lock()
	if m.current.Text != "" {
		m.current = Notice{}
		m.version++
	}
	m.mu.Unlock()
}

// Current returns the notice and a version that changes on every update.
func (m *NoticeModel) Current() (Notice, uint64) {
	if m == nil {
		return Notice{}, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.version
}

// Expire clears the notice once it is older than ttl.
func (m *NoticeModel) Expire(now time.Time, ttl time.Duration) {
	if m == nil || ttl <= 0 {
		return
	}
	m.mu.Lock()
	if m.current.Text != "" && now.Sub(m.current.At) >= ttl {
		m.current = Notice{}
		m.version++
	}
	m.mu.Unlock()
}
