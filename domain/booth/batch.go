package booth

import (
	"errors"
	"image"
)

// BatchSize is the number of photos in one strip.
const BatchSize = 4

// ErrBatchFull is returned when appending to a complete batch.
var ErrBatchFull = errors.New("booth: batch is full")

// PhotoBatch is the ordered set of 0..BatchSize captured frames. The zero
// value is empty and usable. Not safe for concurrent use; Session guards it.
type PhotoBatch struct {
	frames []*image.RGBA
}

// Append adds a frame in capture order.
func (b *PhotoBatch) Append(f *image.RGBA) error {
	if len(b.frames) >= BatchSize {
		return ErrBatchFull
	}
	b.frames = append(b.frames, f)
	return nil
}

func (b *PhotoBatch) Len() int { return len(b.frames) }

// Full reports whether the batch holds BatchSize frames.
func (b *PhotoBatch) Full() bool { return len(b.frames) >= BatchSize }

func (b *PhotoBatch) Clear() { b.frames = nil }

// Frames returns a copy of the frame slice; frames themselves are immutable.
func (b *PhotoBatch) Frames() []*image.RGBA {
	out := make([]*image.RGBA, len(b.frames))
	copy(out, b.frames)
	return out
}
