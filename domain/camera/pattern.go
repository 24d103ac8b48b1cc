package camera

import (
	"image"
	"image/color"
)

var patternBars = []color.RGBA{
	{0xf4, 0x3f, 0x5e, 0xff},
	{0x3b, 0x82, 0xf6, 0xff},
	{0x10, 0xb9, 0x81, 0xff},
	{0x8b, 0x5c, 0xf6, 0xff},
	{0xf8, 0xfa, 0xfc, 0xff},
	{0x1f, 0x29, 0x37, 0xff},
}

// PatternDevice synthesises scrolling colour bars with a moving white block.
// Output depends only on the frame counter, which makes it usable without
// hardware and in tests.
type PatternDevice struct {
	Width, Height int
	// Deny makes Open fail with ErrPermissionDenied.
	Deny  bool
	frame int
	open  bool
}

// NewPatternDevice returns a w×h pattern source.
func NewPatternDevice(w, h int) *PatternDevice {
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 480
	}
	return &PatternDevice{Width: w, Height: h}
}

func (d *PatternDevice) Open() error {
	if d.Deny {
		return ErrPermissionDenied
	}
	d.open = true
	return nil
}

func (d *PatternDevice) Grab() (*image.RGBA, error) {
	if !d.open {
		return nil, ErrPermissionDenied
	}
	img := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	barW := d.Width / len(patternBars)
	if barW < 1 {
		barW = 1
	}
	shift := d.frame * 4
	for y := 0; y < d.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < d.Width; x++ {
			c := patternBars[((x+shift)/barW)%len(patternBars)]
			i := x * 4
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
	}
	// moving block
	side := d.Height / 6
	bx := (d.frame * 7) % max(1, d.Width-side)
	by := d.Height/2 - side/2
	for y := by; y < by+side && y < d.Height; y++ {
		for x := bx; x < bx+side && x < d.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{0xff, 0xff, 0xff, 0xff})
		}
	}
	d.frame++
	return img, nil
}

func (d *PatternDevice) Close() error {
	d.open = false
	return nil
}
