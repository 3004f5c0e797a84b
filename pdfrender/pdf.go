// Implements a PDF backend,
// by wrapping codeberg.org/go-pdf/fpdf.
package pdfrender

import (
	"image/color"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"github.com/benoitkugler/okscore/render"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var (
	_ render.Context = (*Renderer)(nil) // assert interface conformance
	_ rasterx.Adder  = pather{}
)

// Renderer draws on a single PDF page, sized to the surface.
// The unit is the point.
type Renderer struct {
	render.Base

	pdf           *fpdf.Fpdf
	width, height float64
}

// implements the path commands, replaying
// a recorded path on the pdf
type pather struct {
	pdf *fpdf.Fpdf
}

// New returns a renderer writing on a page of the given size.
func New(width, height float64) *Renderer {
	rd := &Renderer{Base: render.NewBase()}
	rd.Resize(width, height)
	return rd
}

func newDocument(width, height float64) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf
}

// Resize starts a new, empty, document.
func (rd *Renderer) Resize(width, height float64) {
	rd.width, rd.height = width, height
	rd.pdf = newDocument(width, height)
}

// Clear discards what was drawn so far.
func (rd *Renderer) Clear() {
	rd.pdf = newDocument(rd.width, rd.height)
}

// Output writes the PDF document to `w`.
func (rd *Renderer) Output(w io.Writer) error {
	return rd.pdf.Output(w)
}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(render.FixedToF(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(render.FixedToF(b))
}

func (p pather) QuadBezier(b, c fixed.Point26_6) {
	cx, cy := render.FixedToF(b)
	x, y := render.FixedToF(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b, c, d fixed.Point26_6) {
	cx0, cy0 := render.FixedToF(b)
	cx1, cy1 := render.FixedToF(c)
	x, y := render.FixedToF(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func toRGB(c color.Color) (r, g, b int, alpha float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(n.R), int(n.G), int(n.B), float64(n.A) / 255
}

func (rd *Renderer) fillPath(p render.Path, c color.Color) {
	r, g, b, alpha := toRGB(c)
	rd.pdf.SetFillColor(r, g, b)
	rd.pdf.SetAlpha(alpha, "Normal")
	p.AddTo(pather{rd.pdf})
	rd.pdf.DrawPath("F")
}

func (rd *Renderer) FillRect(x, y, width, height float64) {
	st := rd.Current()
	rd.fillPath(render.RectPath(x, y, width, height, st.Transform), st.FillColor)
}

func (rd *Renderer) ClearRect(x, y, width, height float64) {
	st := rd.Current()
	rd.fillPath(render.RectPath(x, y, width, height, st.Transform), st.BackgroundColor)
}

func (rd *Renderer) Fill() {
	if len(rd.Path) == 0 {
		return
	}
	rd.fillPath(rd.Path, rd.Current().FillColor)
}

func (rd *Renderer) Stroke() {
	if len(rd.Path) == 0 {
		return
	}
	st := rd.Current()
	r, g, b, alpha := toRGB(st.StrokeColor)
	rd.pdf.SetDrawColor(r, g, b)
	rd.pdf.SetAlpha(alpha, "Normal")
	rd.pdf.SetLineWidth(rd.LineWidthDevice())
	rd.pdf.SetLineCapStyle(st.LineCap.String())
	scale := rd.LineWidthDevice() / st.LineWidth
	dash := make([]float64, len(st.LineDash))
	for i, d := range st.LineDash {
		dash[i] = d * scale
	}
	rd.pdf.SetDashPattern(dash, 0)
	rd.Path.AddTo(pather{rd.pdf})
	rd.pdf.DrawPath("D")
}

// coreFont maps a font to one of the standard PDF fonts,
// which need no embedding.
func coreFont(f render.Font) (family, style string) {
	switch strings.ToLower(f.Family) {
	case "times", "times new roman", "serif", "georgia":
		family = "Times"
	case "courier", "courier new", "monospace":
		family = "Courier"
	default:
		family = "Helvetica"
	}
	if f.IsBold() {
		style += "B"
	}
	if f.IsItalic() {
		style += "I"
	}
	return family, style
}

// selectFont activates the current font, with the
// scale of the current transform applied
func (rd *Renderer) selectFont() float64 {
	st := rd.Current()
	size := st.Font.Size * rd.LineWidthDevice() / st.LineWidth
	family, style := coreFont(st.Font)
	rd.pdf.SetFont(family, style, size)
	return size
}

func (rd *Renderer) FillText(text string, x, y float64) {
	st := rd.Current()
	rd.selectFont()
	r, g, b, alpha := toRGB(st.FillColor)
	rd.pdf.SetTextColor(r, g, b)
	rd.pdf.SetAlpha(alpha, "Normal")
	tr := rd.pdf.UnicodeTranslatorFromDescriptor("")
	dx, dy := st.Transform.Transform(x, y)
	rd.pdf.Text(dx, dy, tr(text))
}

// MeasureText uses the metrics of the core PDF fonts,
// in user space.
func (rd *Renderer) MeasureText(text string) render.TextMetrics {
	st := rd.Current()
	scale := rd.LineWidthDevice() / st.LineWidth
	rd.selectFont()
	tr := rd.pdf.UnicodeTranslatorFromDescriptor("")
	return render.TextMetrics{Width: rd.pdf.GetStringWidth(tr(text)) / scale, Height: st.Font.Size}
}

// OpenGroup has no effect on PDF output.
func (rd *Renderer) OpenGroup(class, id string) render.Group {
	return render.Group{Class: class, ID: id}
}

func (rd *Renderer) CloseGroup() {}
