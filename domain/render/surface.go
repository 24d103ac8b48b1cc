package render

import (
	"image"
	"sync/atomic"

	"github.com/soocke/photo-booth-go/domain/filter"
)

// Frame is what the display surface currently shows.
type Frame struct {
	Image    *image.RGBA
	Sequence uint64 // camera sequence the image was rendered from
	Kind     filter.Kind
}

// Surface is the single display surface. Only the render loop writes it;
// everything else reads.
type Surface struct {
	latest atomic.Pointer[Frame]
	writes atomic.Uint64
}

// Write publishes a rendered frame.
func (s *Surface) Write(img *image.RGBA, seq uint64, kind filter.Kind) {
	s.latest.Store(&Frame{Image: img, Sequence: seq, Kind: kind})
	s.writes.Add(1)
}

// Current returns the displayed frame; the zero Frame when nothing is shown.
func (s *Surface) Current() Frame {
	f := s.latest.Load()
	if f == nil {
		return Frame{}
	}
	return *f
}

// Clear blanks the surface.
func (s *Surface) Clear() { s.latest.Store(nil) }

// Writes reports how many frames were written.
func (s *Surface) Writes() uint64 { return s.writes.Load() }
