package view

import (
	"image"

	"github.com/soocke/photo-booth-go/domain/booth"
	"github.com/soocke/photo-booth-go/ui/images"
	"github.com/soocke/photo-booth-go/ui/model"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Preview owns the main image (live camera or strip), the thumbnail column
// and the QR code label.
type Preview interface {
	Show(v booth.View)
	UpdateLive(img image.Image)
	Message(text string)
	UpdateStrip(img image.Image)
	SetThumbnails(thumbs []image.Image)
	ShowQR(img image.Image)
	HideQR()
}

const (
	maxPreviewW = 480
	maxPreviewH = 360
	// the strip is tall; fit it into the same area height
	maxStripW = 240
	maxStripH = 540
)

type preview struct {
	main   *LabelWidget
	qr     *LabelWidget
	thumbs []*LabelWidget

	view       booth.View
	livePNG    []byte
	liveText   string
	stripPNG   []byte
	mainPhoto  *Img
	qrPhoto    *Img
	thumbPhoto []*Img
}

// NewPreview grids the preview at row: main image spans columns 0-2, the
// thumbnail column sits at 3 and the QR code at 4.
func NewPreview(row int) Preview {
	v := &preview{}
	v.main = Label(Txt(""), Borderwidth(1), Relief("sunken"), Width(60), Anchor("center"))
	Grid(v.main, Row(row), Column(0), Columnspan(3), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))

	col := Frame()
	Grid(col, Row(row), Column(3), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	for i := 0; i < booth.BatchSize; i++ {
		l := Label(Txt(model.ThumbnailCaption(i, 0)), Borderwidth(1), Relief("groove"))
		Grid(l, In(col), Row(i), Column(0), Sticky("we"), Pady("0.2m"))
		v.thumbs = append(v.thumbs, l)
	}
	v.thumbPhoto = make([]*Img, booth.BatchSize)

	v.qr = Label(Txt(""), Borderwidth(0))
	Grid(v.qr, Row(row), Column(4), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func (v *preview) Show(view booth.View) {
	v.view = view
	v.render()
}

func (v *preview) UpdateLive(img image.Image) {
	if img == nil {
		return
	}
	v.livePNG = images.EncodePNG(images.ScaleToFit(img, maxPreviewW, maxPreviewH))
	v.liveText = ""
	if v.view == booth.ViewCapture {
		v.render()
	}
}

func (v *preview) Message(text string) {
	v.livePNG = nil
	v.liveText = text
	if v.view == booth.ViewCapture {
		v.render()
	}
}

func (v *preview) UpdateStrip(img image.Image) {
	if img == nil {
		return
	}
	v.stripPNG = images.EncodePNG(images.ScaleToFit(img, maxStripW, maxStripH))
	if v.view == booth.ViewReview {
		v.render()
	}
}

// render replaces the main photo, deleting the previous Tk image so
// obsolete pixel buffers are not retained.
func (v *preview) render() {
	if v.main == nil {
		return
	}
	data, text := v.livePNG, v.liveText
	if v.view == booth.ViewReview {
		data, text = v.stripPNG, ""
	}
	if v.mainPhoto != nil {
		v.mainPhoto.Delete()
		v.mainPhoto = nil
	}
	if len(data) == 0 {
		v.main.Configure(Image(""), Txt(text))
		return
	}
	v.mainPhoto = NewPhoto(Data(data))
	v.main.Configure(Image(v.mainPhoto), Txt(""))
}

func (v *preview) SetThumbnails(thumbs []image.Image) {
	for i, l := range v.thumbs {
		if v.thumbPhoto[i] != nil {
			v.thumbPhoto[i].Delete()
			v.thumbPhoto[i] = nil
		}
		if i < len(thumbs) && thumbs[i] != nil {
			v.thumbPhoto[i] = NewPhoto(Data(images.EncodePNG(thumbs[i])))
			l.Configure(Image(v.thumbPhoto[i]), Txt(""))
			continue
		}
		l.Configure(Image(""), Txt(model.ThumbnailCaption(i, len(thumbs))))
	}
}

func (v *preview) ShowQR(img image.Image) {
	if v.qr == nil || img == nil {
		return
	}
	if v.qrPhoto != nil {
		v.qrPhoto.Delete()
	}
	v.qrPhoto = NewPhoto(Data(images.EncodePNG(img)))
	v.qr.Configure(Image(v.qrPhoto))
}

func (v *preview) HideQR() {
	if v.qr == nil {
		return
	}
	v.qr.Configure(Image(""))
	if v.qrPhoto != nil {
		v.qrPhoto.Delete()
		v.qrPhoto = nil
	}
}
