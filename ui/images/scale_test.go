package images

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestScaleToFit_PreservesAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1280, 720))
	out := ScaleToFit(src, 400, 400)
	b := out.Bounds()
	if b.Dx() != 400 || b.Dy() != 225 {
		t.Fatalf("expected 400x225, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestScaleToFit_NoopWhenFits(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	if out := ScaleToFit(src, 400, 225); out != image.Image(src) {
		t.Fatalf("expected original image when it already fits")
	}
	if ScaleToFit(nil, 10, 10) != nil {
		t.Fatalf("nil in, nil out")
	}
}

func TestThumbnail_ExactSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 480))
	th := Thumbnail(src, 96, 54)
	if th == nil || th.Bounds().Dx() != 96 || th.Bounds().Dy() != 54 {
		t.Fatalf("unexpected thumbnail %v", th)
	}
	if Thumbnail(&image.RGBA{}, 10, 10) != nil {
		t.Fatalf("empty source should give nil")
	}
}

func TestEncodePNG_Decodes(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	data := EncodePNG(src)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil || img.Bounds() != src.Bounds() {
		t.Fatalf("decode failed: %v %v", err, img)
	}
}
