package booth

import (
	"errors"
	"image"
)

var (
	// ErrCameraNotReady is reported when a capture is requested before the
	// camera delivers frames. The request is ignored.
	ErrCameraNotReady = errors.New("booth: camera not ready")
	// ErrBusy is returned for settings changes outside Idle.
	ErrBusy = errors.New("booth: capture in progress")
	// ErrInvalidCountdown is returned for durations outside 3/5/10 s.
	ErrInvalidCountdown = errors.New("booth: countdown must be 3, 5 or 10 seconds")
	// ErrClosed is returned after teardown.
	ErrClosed = errors.New("booth: sequencer closed")
)

// CaptureState enumerates the sequencer states.
type CaptureState int

const (
	StateIdle CaptureState = iota
	StateCountingDown
	StateCapturing
)

func (s CaptureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountingDown:
		return "counting-down"
	case StateCapturing:
		return "capturing"
	default:
		return "unknown"
	}
}

// EventKind classifies sequencer notifications.
type EventKind int

const (
	EventTick          EventKind = iota + 1 // countdown decremented; Remaining set
	EventCaptured                           // a frame was appended; Count set
	EventBatchComplete                      // the fourth frame was appended
	EventCleared                            // the batch was emptied
	EventFailed                             // frame retrieval failed at fire time; Err set
	EventIgnored                            // request dropped (camera not ready); Err set
	EventCancelled                          // countdown aborted
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventCaptured:
		return "captured"
	case EventBatchComplete:
		return "batch-complete"
	case EventCleared:
		return "cleared"
	case EventFailed:
		return "failed"
	case EventIgnored:
		return "ignored"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event is delivered to EventListeners from the sequencer goroutine.
type Event struct {
	Kind      EventKind
	Remaining int
	Count     int
	Err       error
}

// StateListener is called on each state transition.
type StateListener func(prev, next CaptureState)

// EventListener receives sequencer notifications. Listeners run on the
// sequencer goroutine and must not block or wait on the sequencer.
type EventListener func(Event)

// FrameReader yields the frame currently on the display surface.
type FrameReader interface {
	CurrentFrame() (*image.RGBA, error)
}

// Readiness reports whether the camera delivers frames.
type Readiness interface {
	Ready() bool
}

// Interface slices for consumers (presenters).
type CaptureStateSource interface {
	Current() CaptureState
	Remaining() int
}
type CaptureControl interface {
	RequestCapture()
	Cancel()
	Reset()
}
type CaptureSettings interface {
	SetCountdown(secs int) error
	SetAutoChain(on bool) error
}

// SequencerContract aggregate for DI.
type SequencerContract interface {
	CaptureStateSource
	CaptureControl
	CaptureSettings
	AddListener(StateListener)
	AddEventListener(EventListener)
	Close()
}
