// Implements a vector backend, writing SVG documents.
package svgrender

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/benoitkugler/okscore/render"
)

var _ render.Context = (*Renderer)(nil) // assert interface conformance

// element is a node of the SVG document being built
type element struct {
	name     string
	attrs    []xml.Attr
	children []*element
	text     string
}

func newElement(name string, attrs ...string) *element {
	el := &element{name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.set(attrs[i], attrs[i+1])
	}
	return el
}

// set adds or replaces the attribute `name`
func (el *element) set(name, value string) {
	for i, attr := range el.attrs {
		if attr.Name.Local == name {
			el.attrs[i].Value = value
			return
		}
	}
	el.attrs = append(el.attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func (el *element) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: el.name}, Attr: el.attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if el.text != "" {
		if err := enc.EncodeToken(xml.CharData(el.text)); err != nil {
			return err
		}
	}
	for _, child := range el.children {
		if err := child.encode(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Renderer builds an SVG document in memory.
// Scale and Resize act on the viewBox, so that coordinates
// are written untransformed.
type Renderer struct {
	render.Base

	width, height  float64
	scaleX, scaleY float64

	root   *element
	groups []*element // opened groups
}

// New returns a renderer for a surface of the given size.
func New(width, height float64) *Renderer {
	rd := &Renderer{Base: render.NewBase(), scaleX: 1, scaleY: 1, root: newElement("svg", "xmlns", "http://www.w3.org/2000/svg")}
	rd.Resize(width, height)
	return rd
}

// parent returns the element receiving new nodes
func (rd *Renderer) parent() *element {
	if n := len(rd.groups); n > 0 {
		return rd.groups[n-1]
	}
	return rd.root
}

func (rd *Renderer) add(el *element) { p := rd.parent(); p.children = append(p.children, el) }

func (rd *Renderer) updateViewBox() {
	rd.root.set("width", render.FormatFloat(rd.width))
	rd.root.set("height", render.FormatFloat(rd.height))
	rd.root.set("viewBox", strings.Join([]string{
		"0", "0", render.FormatFloat(rd.width / rd.scaleX), render.FormatFloat(rd.height / rd.scaleY),
	}, " "))
}

func (rd *Renderer) Clear() {
	rd.root.children = nil
	rd.groups = nil
}

// Scale shrinks the visible area of the document.
func (rd *Renderer) Scale(x, y float64) {
	if x == 0 || y == 0 {
		rd.Logger().Warn("ignoring null scale", "x", x, "y", y)
		return
	}
	rd.scaleX *= x
	rd.scaleY *= y
	rd.updateViewBox()
}

func (rd *Renderer) Resize(width, height float64) {
	rd.width, rd.height = width, height
	rd.updateViewBox()
}

// Size returns the size of the document, in pixels.
func (rd *Renderer) Size() (width, height float64) { return rd.width, rd.height }

func (rd *Renderer) paintRect(x, y, width, height float64, fill string, opacity float64) {
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		y, height = y+height, -height
	}
	el := newElement("rect",
		"x", render.FormatFloat(x), "y", render.FormatFloat(y),
		"width", render.FormatFloat(width), "height", render.FormatFloat(height),
		"fill", fill)
	if opacity < 1 {
		el.set("fill-opacity", render.FormatFloat(opacity))
	}
	el.set("stroke", "none")
	rd.add(el)
}

func (rd *Renderer) FillRect(x, y, width, height float64) {
	fill, opacity := render.ColorToHex(rd.Current().FillColor)
	rd.paintRect(x, y, width, height, fill, opacity)
}

func (rd *Renderer) ClearRect(x, y, width, height float64) {
	fill, opacity := render.ColorToHex(rd.Current().BackgroundColor)
	rd.paintRect(x, y, width, height, fill, opacity)
}

func (rd *Renderer) Fill() {
	if len(rd.Path) == 0 {
		return
	}
	fill, opacity := render.ColorToHex(rd.Current().FillColor)
	el := newElement("path", "d", rd.Path.ToSVGPath(), "fill", fill, "stroke", "none")
	if opacity < 1 {
		el.set("fill-opacity", render.FormatFloat(opacity))
	}
	rd.add(el)
}

func (rd *Renderer) Stroke() {
	if len(rd.Path) == 0 {
		return
	}
	st := rd.Current()
	stroke, opacity := render.ColorToHex(st.StrokeColor)
	el := newElement("path", "d", rd.Path.ToSVGPath(), "fill", "none",
		"stroke", stroke, "stroke-width", render.FormatFloat(st.LineWidth))
	if opacity < 1 {
		el.set("stroke-opacity", render.FormatFloat(opacity))
	}
	if st.LineCap != render.ButtCap {
		el.set("stroke-linecap", st.LineCap.String())
	}
	if len(st.LineDash) != 0 {
		chunks := make([]string, len(st.LineDash))
		for i, d := range st.LineDash {
			chunks[i] = render.FormatFloat(d)
		}
		el.set("stroke-dasharray", strings.Join(chunks, ","))
	}
	rd.add(el)
}

func (rd *Renderer) FillText(text string, x, y float64) {
	st := rd.Current()
	fill, opacity := render.ColorToHex(st.FillColor)
	el := newElement("text",
		"x", render.FormatFloat(x), "y", render.FormatFloat(y),
		"font-family", st.Font.Family,
		"font-size", render.FormatFloat(st.Font.Size)+"pt",
		"font-weight", st.Font.Weight,
		"font-style", st.Font.Style,
		"fill", fill)
	if opacity < 1 {
		el.set("fill-opacity", render.FormatFloat(opacity))
	}
	el.text = text
	rd.add(el)
}

// OpenGroup starts a <g> element; the following elements
// are nested inside, until CloseGroup.
func (rd *Renderer) OpenGroup(class, id string) render.Group {
	g := newElement("g")
	if class != "" {
		g.set("class", "vf-"+class)
	}
	if id != "" {
		g.set("id", "vf-"+id)
	}
	rd.add(g)
	rd.groups = append(rd.groups, g)
	return render.Group{Class: class, ID: id}
}

func (rd *Renderer) CloseGroup() {
	if len(rd.groups) == 0 {
		rd.Logger().Error("unmatched CloseGroup ignored")
		return
	}
	rd.groups = rd.groups[:len(rd.groups)-1]
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// WriteTo writes the SVG document to `w`.
// Groups still open are closed in the output.
func (rd *Renderer) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := xml.NewEncoder(cw)
	enc.Indent("", " ")
	if err := rd.root.encode(enc); err != nil {
		return cw.n, err
	}
	if err := enc.Flush(); err != nil {
		return cw.n, err
	}
	_, err := io.WriteString(cw, "\n")
	return cw.n, err
}
