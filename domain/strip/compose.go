package strip

import (
	"image"
	"image/color"
	"strconv"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Strip geometry in pixels.
const (
	Width      = 448
	Padding    = 16
	Gap        = 8
	Frames     = 4
	CellWidth  = Width - 2*Padding
	CellHeight = CellWidth * 3 / 4
	headerH    = 44
	footerH    = 28
	lineH      = 13
)

const (
	Title          = "PHOTO BOOTH"
	Footer         = "Digital PhotoBooth"
	IncompleteText = "Take 4 photos to generate a photo strip"
	dateLayout     = "2006-01-02"
)

var (
	gray800 = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	gray100 = color.RGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
	gray500 = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	gray400 = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

// Artifact is a composed strip ready for export.
type Artifact struct {
	Image     *image.RGBA
	Complete  bool
	Style     Style
	CreatedAt time.Time
}

// Height is the pixel height of a complete strip.
func Height() int {
	return Padding + headerH + Frames*CellHeight + (Frames-1)*Gap + footerH + Padding
}

// Compose stacks frames top to bottom in the given order under a header and
// above a footer. With fewer than Frames frames it returns an incomplete
// placeholder instead of partial output. Extra frames are ignored.
func Compose(frames []*image.RGBA, style Style, now time.Time) Artifact {
	if len(frames) < Frames {
		return Artifact{Image: placeholder(), Complete: false, Style: style, CreatedAt: now}
	}
	bg := mustColor(style.Background)
	fg := mustColor(style.Foreground)
	dst := image.NewRGBA(image.Rect(0, 0, Width, Height()))
	draw.Draw(dst, dst.Rect, image.NewUniform(bg), image.Point{}, draw.Src)

	y := Padding
	drawCentered(dst, Title, y+lineH, fg)
	drawCentered(dst, now.Format(dateLayout), y+2*lineH+8, fg)
	y += headerH
	for i := 0; i < Frames; i++ {
		cell := image.Rect(Padding, y, Padding+CellWidth, y+CellHeight)
		drawCell(dst, cell, frames[i], i+1)
		y += CellHeight + Gap
	}
	y += footerH - Gap
	drawCentered(dst, Footer, y, fg)
	return Artifact{Image: dst, Complete: true, Style: style, CreatedAt: now}
}

// drawCell cover-crops f into cell, or paints the "Photo N" fallback.
func drawCell(dst *image.RGBA, cell image.Rectangle, f *image.RGBA, n int) {
	if f == nil || f.Rect.Empty() {
		draw.Draw(dst, cell, image.NewUniform(gray800), image.Point{}, draw.Src)
		label := "Photo " + strconv.Itoa(n)
		drawCenteredIn(dst, label, cell, gray400)
		return
	}
	draw.CatmullRom.Scale(dst, cell, f, coverRect(f.Rect, cell.Dx(), cell.Dy()), draw.Src, nil)
}

// coverRect returns the centred sub-rectangle of src with the aspect of w:h.
func coverRect(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw*h > sh*w {
		cw := sh * w / h
		x0 := src.Min.X + (sw-cw)/2
		return image.Rect(x0, src.Min.Y, x0+cw, src.Max.Y)
	}
	ch := sw * h / w
	if ch < 1 {
		ch = 1
	}
	y0 := src.Min.Y + (sh-ch)/2
	return image.Rect(src.Min.X, y0, src.Max.X, y0+ch)
}

func placeholder() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, Width, CellHeight))
	draw.Draw(dst, dst.Rect, image.NewUniform(gray100), image.Point{}, draw.Src)
	drawCenteredIn(dst, IncompleteText, dst.Rect, gray500)
	return dst
}

func drawCentered(dst *image.RGBA, s string, baseline int, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13}
	w := d.MeasureString(s).Ceil()
	d.Dot = fixed.P((dst.Rect.Dx()-w)/2, baseline)
	d.DrawString(s)
}

func drawCenteredIn(dst *image.RGBA, s string, r image.Rectangle, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13}
	w := d.MeasureString(s).Ceil()
	d.Dot = fixed.P(r.Min.X+(r.Dx()-w)/2, r.Min.Y+(r.Dy()+lineH)/2-2)
	d.DrawString(s)
}
