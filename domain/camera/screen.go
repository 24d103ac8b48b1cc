package camera

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// ScreenDevice samples a region of the primary screen as camera input. An
// empty Region captures the full screen.
type ScreenDevice struct {
	Region image.Rectangle
	bounds image.Rectangle
}

// NewScreenDevice returns a device capturing region (clipped to the screen on Open).
func NewScreenDevice(region image.Rectangle) *ScreenDevice {
	return &ScreenDevice{Region: region}
}

// Open resolves the screen bounds. Failure to query the display is reported
// as a permission denial since no frames can ever be produced.
func (d *ScreenDevice) Open() error {
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	d.bounds = screen
	if !d.Region.Empty() {
		r := d.Region.Intersect(screen)
		if r.Empty() {
			return fmt.Errorf("camera: selection out of bounds sel=%v screen=%v", d.Region, screen)
		}
		d.bounds = r
	}
	return nil
}

// Grab returns a newly allocated frame of the configured region.
func (d *ScreenDevice) Grab() (*image.RGBA, error) {
	if d.bounds.Empty() {
		return nil, fmt.Errorf("camera: screen device not open")
	}
	if d.Region.Empty() {
		return screenshot.CaptureScreen()
	}
	return screenshot.CaptureRect(d.bounds)
}

func (d *ScreenDevice) Close() error {
	d.bounds = image.Rectangle{}
	return nil
}
