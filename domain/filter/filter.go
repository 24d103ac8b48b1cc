package filter

import (
	"image"
	"image/color"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

const blurSigma = 4.0

// Apply maps frame through the filter kind and returns a new frame. The input
// is never modified. Normal returns frame unchanged. A nil or zero-sized frame
// yields an empty, non-nil result so callers polling before the camera is ready
// need no special casing.
func Apply(frame *image.RGBA, kind Kind) *image.RGBA {
	if frame == nil || frame.Rect.Empty() {
		return &image.RGBA{}
	}
	switch kind {
	case Grayscale:
		return grayscale(frame)
	case Sepia:
		return toRGBA(imaging.AdjustFunc(frame, sepiaFunc(1.0)), frame.Rect)
	case Vintage:
		img := imaging.AdjustFunc(frame, sepiaFunc(0.5))
		img = imaging.AdjustContrast(img, 20)
		img = imaging.AdjustBrightness(img, -10)
		return toRGBA(img, frame.Rect)
	case Blur:
		return toRGBA(imaging.Blur(frame, blurSigma), frame.Rect)
	default:
		return frame
	}
}

// grayscale replaces R, G and B with the rounded unweighted mean of the three.
// (sum+1)/3 equals round(sum/3) because a third never lands on .5.
func grayscale(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := 0; y < h; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+w*4]
		d := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for i := 0; i < len(s); i += 4 {
			avg := byte((uint32(s[i]) + uint32(s[i+1]) + uint32(s[i+2]) + 1) / 3)
			d[i], d[i+1], d[i+2], d[i+3] = avg, avg, avg, s[i+3]
		}
	}
	return dst
}

// sepiaFunc returns the sepia colour matrix at the given amount (0..1).
func sepiaFunc(amount float64) func(color.NRGBA) color.NRGBA {
	inv := 1 - amount
	m := [9]float64{
		0.393 + 0.607*inv, 0.769 - 0.769*inv, 0.189 - 0.189*inv,
		0.349 - 0.349*inv, 0.686 + 0.314*inv, 0.168 - 0.168*inv,
		0.272 - 0.272*inv, 0.534 - 0.534*inv, 0.131 + 0.869*inv,
	}
	return func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		return color.NRGBA{
			R: clamp8(m[0]*r + m[1]*g + m[2]*b),
			G: clamp8(m[3]*r + m[4]*g + m[5]*b),
			B: clamp8(m[6]*r + m[7]*g + m[8]*b),
			A: c.A,
		}
	}
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

// toRGBA copies an imaging result (origin at 0,0) back onto the source bounds.
func toRGBA(img image.Image, rect image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(rect)
	draw.Draw(dst, rect, img, img.Bounds().Min, draw.Src)
	return dst
}

// Engine wraps Apply and counts invocations. It is safe for concurrent use;
// the count feeds debug probes and tests asserting the render loop stopped.
type Engine struct {
	calls atomic.Uint64
}

// NewEngine returns a ready Engine.
func NewEngine() *Engine { return &Engine{} }

// Apply forwards to the package-level Apply.
func (e *Engine) Apply(frame *image.RGBA, kind Kind) *image.RGBA {
	e.calls.Add(1)
	return Apply(frame, kind)
}

// Calls reports how many frames have been filtered.
func (e *Engine) Calls() uint64 { return e.calls.Load() }
