package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// previewEncoder trades size for speed; preview PNGs live for one tick.
var previewEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// EncodePNG encodes an image to PNG bytes for Tk photo images. Errors are
// ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = previewEncoder.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit scales src so it fits within maxW x maxH preserving aspect
// ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	ratio := float64(maxW) / float64(w)
	if r := float64(maxH) / float64(h); r < ratio {
		ratio = r
	}
	newW := int(float64(w)*ratio + 0.5)
	newH := int(float64(h)*ratio + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, b, draw.Src, nil)
	return dst
}

// Thumbnail cover-crops src to exactly w x h around its centre.
func Thumbnail(src image.Image, w, h int) image.Image {
	if src == nil || src.Bounds().Empty() || w < 1 || h < 1 {
		return nil
	}
	return imaging.Fill(src, w, h, imaging.Center, imaging.Linear)
}
