// Implements a raster backend,
// by wrapping rasterx.
package rasterrender

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/okscore/render"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var _ render.Context = (*Renderer)(nil) // assert interface conformance

// Renderer draws into an RGBA image.
// Paths are recorded by render.Base and replayed
// on the filler or the dasher when painted.
type Renderer struct {
	render.Base

	img    *image.RGBA
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// New returns a renderer drawing on a fresh, transparent
// image of the given size (rounded up to whole pixels).
func New(width, height float64) *Renderer {
	rd := &Renderer{Base: render.NewBase()}
	rd.Resize(width, height)
	return rd
}

// Image returns the image drawn so far.
func (rd *Renderer) Image() *image.RGBA { return rd.img }

// EncodePNG writes the image as PNG to `w`.
func (rd *Renderer) EncodePNG(w io.Writer) error {
	return png.Encode(w, rd.img)
}

func (rd *Renderer) Resize(width, height float64) {
	w, h := int(math.Ceil(width)), int(math.Ceil(height))
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	rd.img = image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rd.img, rd.img.Bounds())
	rd.dasher = rasterx.NewDasher(w, h, scanner)
	rd.filler = rasterx.NewFiller(w, h, scanner)
}

// Clear makes the whole image transparent.
func (rd *Renderer) Clear() {
	draw.Draw(rd.img, rd.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (rd *Renderer) fillPath(p render.Path, c color.Color) {
	rd.filler.Clear()
	rd.filler.SetWinding(true)
	p.AddTo(rd.filler)
	rd.filler.SetColor(c)
	rd.filler.Draw()
}

func (rd *Renderer) FillRect(x, y, width, height float64) {
	st := rd.Current()
	rd.fillPath(render.RectPath(x, y, width, height, st.Transform), st.FillColor)
}

// ClearRect replaces the pixels of the rectangle
// by the background color, without blending.
func (rd *Renderer) ClearRect(x, y, width, height float64) {
	st := rd.Current()
	bounds := render.RectPath(x, y, width, height, st.Transform).Bounds()
	r := image.Rect(int(math.Floor(bounds.MinX)), int(math.Floor(bounds.MinY)),
		int(math.Ceil(bounds.MaxX)), int(math.Ceil(bounds.MaxY)))
	draw.Draw(rd.img, r, image.NewUniform(st.BackgroundColor), image.Point{}, draw.Src)
}

func (rd *Renderer) Fill() {
	if len(rd.Path) == 0 {
		return
	}
	rd.fillPath(rd.Path, rd.Current().FillColor)
}

var capToFunc = [...]rasterx.CapFunc{
	render.ButtCap:   rasterx.ButtCap,
	render.RoundCap:  rasterx.RoundCap,
	render.SquareCap: rasterx.SquareCap,
}

func (rd *Renderer) Stroke() {
	if len(rd.Path) == 0 {
		return
	}
	st := rd.Current()
	var dash []float64
	if len(st.LineDash) != 0 {
		scale := rd.LineWidthDevice() / st.LineWidth
		dash = make([]float64, len(st.LineDash))
		for i, d := range st.LineDash {
			dash[i] = d * scale
		}
	}
	capF := capToFunc[st.LineCap]
	rd.dasher.Clear()
	rd.dasher.SetStroke(fixed.Int26_6(rd.LineWidthDevice()*64), fixed.Int26_6(4*64), capF, capF,
		rasterx.FlatGap, rasterx.Miter, dash, 0)
	rd.Path.AddTo(rd.dasher)
	rd.dasher.SetColor(st.StrokeColor)
	rd.dasher.Draw()
}

// FillText draws `text` with its baseline starting at (x, y).
// Only the translation of the current transform is
// applied to the glyphs, the font size is scaled.
func (rd *Renderer) FillText(text string, x, y float64) {
	st := rd.Current()
	f := st.Font
	scale := rd.LineWidthDevice() / st.LineWidth
	f.Size *= scale
	face, err := rd.Text.Face(f)
	if err != nil {
		rd.Logger().Error("drawing text", "err", err)
		return
	}
	dx, dy := st.Transform.Transform(x, y)
	d := font.Drawer{
		Dst:  rd.img,
		Src:  image.NewUniform(st.FillColor),
		Face: face,
		Dot:  render.FToFixed(dx, dy),
	}
	d.DrawString(text)
}

// OpenGroup has no effect on raster output.
func (rd *Renderer) OpenGroup(class, id string) render.Group {
	return render.Group{Class: class, ID: id}
}

func (rd *Renderer) CloseGroup() {}
