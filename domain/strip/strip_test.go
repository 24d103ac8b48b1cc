package strip

import (
	"image"
	"image/color"
	"testing"
	"time"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// near allows for resampling rounding.
func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 2 || y-x <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func cellCenter(i int) (int, int) {
	return Padding + CellWidth/2, Padding + headerH + i*(CellHeight+Gap) + CellHeight/2
}

func TestTextColorFor(t *testing.T) {
	cases := map[string]string{
		"#10b981": "#000000",
		"#10B981": "#000000",
		"#ffffff": "#000000",
		"#f8fafc": "#000000",
		"#f43f5e": "#ffffff",
		"#000000": "#ffffff",
		"#3b82f6": "#ffffff",
		"#fefefe": "#ffffff",
	}
	for bg, want := range cases {
		if got := TextColorFor(bg); got != want {
			t.Fatalf("TextColorFor(%s)=%s want %s", bg, got, want)
		}
	}
}

func TestInPalette(t *testing.T) {
	for _, p := range Palette {
		if !InPalette(p) {
			t.Fatalf("%s should be in palette", p)
		}
	}
	if InPalette("#ffffff") {
		t.Fatalf("#ffffff is not selectable")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#f43f5e")
	if err != nil || c != (color.RGBA{0xf4, 0x3f, 0x5e, 0xff}) {
		t.Fatalf("got %v %v", c, err)
	}
	c, err = ParseHexColor("#fff")
	if err != nil || c != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Fatalf("short form: %v %v", c, err)
	}
	for _, bad := range []string{"", "f43f5e", "#12", "#zzzzzz"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestCompose_OrderIsCaptureOrder(t *testing.T) {
	colors := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}
	var frames []*image.RGBA
	for _, c := range colors {
		frames = append(frames, solid(64, 48, c))
	}
	art := Compose(frames, NewStyle("#3b82f6"), time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	if !art.Complete {
		t.Fatalf("expected complete artifact")
	}
	if b := art.Image.Bounds(); b.Dx() != Width || b.Dy() != Height() {
		t.Fatalf("unexpected bounds %v", b)
	}
	for i, want := range colors {
		x, y := cellCenter(i)
		if got := art.Image.RGBAAt(x, y); !near(got, want) {
			t.Fatalf("cell %d: got %v want %v", i, got, want)
		}
	}
	if got := art.Image.RGBAAt(1, 1); got != (color.RGBA{0x3b, 0x82, 0xf6, 0xff}) {
		t.Fatalf("background %v", got)
	}
}

func TestCompose_CoverCropKeepsCentre(t *testing.T) {
	// wide frame: left and right thirds red, centre green
	f := solid(300, 100, color.RGBA{R: 255, A: 255})
	for y := 0; y < 100; y++ {
		for x := 100; x < 200; x++ {
			f.SetRGBA(x, y, color.RGBA{G: 255, A: 255})
		}
	}
	frames := []*image.RGBA{f, f, f, f}
	art := Compose(frames, NewStyle(DefaultBackground), time.Now())
	x, y := cellCenter(0)
	if got := art.Image.RGBAAt(x, y); got.G < 250 || got.R > 5 {
		t.Fatalf("centre not preserved: %v", got)
	}
}

func TestCompose_FallbackCell(t *testing.T) {
	frames := []*image.RGBA{solid(4, 3, color.RGBA{R: 9, A: 255}), nil, {}, solid(4, 3, color.RGBA{R: 9, A: 255})}
	art := Compose(frames, NewStyle("#000000"), time.Now())
	if !art.Complete {
		t.Fatalf("fallback cells still make a complete strip")
	}
	_, y := cellCenter(1)
	if got := art.Image.RGBAAt(Padding+2, y); got != gray800 {
		t.Fatalf("fallback fill %v", got)
	}
}

func TestCompose_IncompletePlaceholder(t *testing.T) {
	frames := []*image.RGBA{solid(4, 3, color.RGBA{A: 255})}
	art := Compose(frames, NewStyle(DefaultBackground), time.Now())
	if art.Complete {
		t.Fatalf("expected incomplete artifact")
	}
	if art.Image == nil || art.Image.Bounds().Empty() {
		t.Fatalf("placeholder image missing")
	}
	if got := art.Image.RGBAAt(0, 0); got != gray100 {
		t.Fatalf("placeholder fill %v", got)
	}
}
