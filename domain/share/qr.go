package share

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// FallbackPayload is encoded when the requested payload cannot be.
const FallbackPayload = "Error generating QR code"

// ErrQRTooLarge is returned when the code needs more modules than the image
// has pixels and would be clipped.
var ErrQRTooLarge = errors.New("share: qr code does not fit")

// QR renders share codes with fixed size, margin and colours.
type QR struct {
	Size       int
	Margin     int
	Foreground color.RGBA
	Background color.RGBA
	Level      qrcode.RecoveryLevel
	logger     *slog.Logger
}

// NewQR returns a black on white generator.
func NewQR(size, margin int, logger *slog.Logger) *QR {
	if size < 21 {
		size = 150
	}
	if margin < 0 {
		margin = 0
	}
	return &QR{
		Size:       size,
		Margin:     margin,
		Foreground: color.RGBA{A: 0xff},
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Level:      qrcode.Medium,
		logger:     logger,
	}
}

// Generate encodes payload. On failure it encodes FallbackPayload instead and
// reports the original error alongside the fallback image.
func (q *QR) Generate(payload string) (*image.RGBA, error) {
	img, err := q.render(payload)
	if err == nil {
		return img, nil
	}
	if q.logger != nil {
		q.logger.Warn("qr encode failed", "error", err)
	}
	fb, ferr := q.render(FallbackPayload)
	if ferr != nil {
		return nil, ferr
	}
	return fb, err
}

func (q *QR) render(payload string) (*image.RGBA, error) {
	code, err := qrcode.New(payload, q.Level)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	bits := code.Bitmap()
	modules := len(bits) + 2*q.Margin
	if modules > q.Size {
		return nil, fmt.Errorf("%w: %d modules in %dpx", ErrQRTooLarge, modules, q.Size)
	}
	scale := q.Size / modules
	side := modules * scale
	dst := image.NewRGBA(image.Rect(0, 0, q.Size, q.Size))
	draw.Draw(dst, dst.Rect, image.NewUniform(q.Background), image.Point{}, draw.Src)
	off := (q.Size - side) / 2
	fg := image.NewUniform(q.Foreground)
	for y, row := range bits {
		for x, on := range row {
			if !on {
				continue
			}
			x0 := off + (x+q.Margin)*scale
			y0 := off + (y+q.Margin)*scale
			draw.Draw(dst, image.Rect(x0, y0, x0+scale, y0+scale), fg, image.Point{}, draw.Src)
		}
	}
	return dst, nil
}
