// Implements a headless backend, which records the
// drawing operations instead of producing an output.
// It is meant for tests and layout inspection.
package recorder

import (
	"image/color"

	"github.com/benoitkugler/okscore/render"
)

var _ render.Context = (*Recorder)(nil) // assert interface conformance

// Call is one recorded method call.
type Call struct {
	Op   string
	Args []any
}

// Painted is a painted shape, in device space.
type Painted struct {
	Path  render.Path
	Color color.Color
	Group string // class of the innermost open group, if any
}

// Recorder implements render.Context, tracking state like the
// other backends and recording every call.
type Recorder struct {
	render.Base

	Width, Height float64

	Calls   []Call
	Fills   []Painted // fills, including FillRect
	Strokes []Painted
	Texts   []string

	groups []render.Group
}

// New returns a recorder for a surface of the given size.
func New(width, height float64) *Recorder {
	return &Recorder{Base: render.NewBase(), Width: width, Height: height}
}

func (rc *Recorder) record(op string, args ...any) {
	rc.Calls = append(rc.Calls, Call{Op: op, Args: args})
}

// Ops returns the names of the recorded calls.
func (rc *Recorder) Ops() []string {
	out := make([]string, len(rc.Calls))
	for i, c := range rc.Calls {
		out[i] = c.Op
	}
	return out
}

// Count returns the number of recorded calls to `op`.
func (rc *Recorder) Count(op string) int {
	n := 0
	for _, c := range rc.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls and painted shapes,
// but keeps the drawing state.
func (rc *Recorder) Reset() {
	rc.Calls, rc.Fills, rc.Strokes, rc.Texts = nil, nil, nil, nil
}

// Bounds returns the extent of every painted shape,
// or render.EmptyRect if nothing was painted.
func (rc *Recorder) Bounds() render.Rect {
	out := render.EmptyRect
	for _, p := range rc.Fills {
		out = out.Union(p.Path.Bounds())
	}
	for _, p := range rc.Strokes {
		out = out.Union(p.Path.Bounds())
	}
	return out
}

// GroupDepth returns the number of open groups.
func (rc *Recorder) GroupDepth() int { return len(rc.groups) }

func (rc *Recorder) currentGroup() string {
	if n := len(rc.groups); n > 0 {
		return rc.groups[n-1].Class
	}
	return ""
}

func (rc *Recorder) Clear() {
	rc.record("Clear")
	rc.Fills, rc.Strokes, rc.Texts = nil, nil, nil
}

func (rc *Recorder) SetFont(family string, size float64, weight string) {
	rc.record("SetFont", family, size, weight)
	rc.Base.SetFont(family, size, weight)
}

func (rc *Recorder) SetRawFont(font string) error {
	rc.record("SetRawFont", font)
	return rc.Base.SetRawFont(font)
}

func (rc *Recorder) SetFillStyle(style string) {
	rc.record("SetFillStyle", style)
	rc.Base.SetFillStyle(style)
}

func (rc *Recorder) SetBackgroundFillStyle(style string) {
	rc.record("SetBackgroundFillStyle", style)
	rc.Base.SetBackgroundFillStyle(style)
}

func (rc *Recorder) SetStrokeStyle(style string) {
	rc.record("SetStrokeStyle", style)
	rc.Base.SetStrokeStyle(style)
}

func (rc *Recorder) SetShadowColor(c string) {
	rc.record("SetShadowColor", c)
	rc.Base.SetShadowColor(c)
}

func (rc *Recorder) SetShadowBlur(blur float64) {
	rc.record("SetShadowBlur", blur)
	rc.Base.SetShadowBlur(blur)
}

func (rc *Recorder) SetLineWidth(width float64) {
	rc.record("SetLineWidth", width)
	rc.Base.SetLineWidth(width)
}

func (rc *Recorder) SetLineCap(cap render.LineCap) {
	rc.record("SetLineCap", cap)
	rc.Base.SetLineCap(cap)
}

func (rc *Recorder) SetLineDash(dash []float64) {
	rc.record("SetLineDash", dash)
	rc.Base.SetLineDash(dash)
}

func (rc *Recorder) Scale(x, y float64) {
	rc.record("Scale", x, y)
	rc.Base.Scale(x, y)
}

func (rc *Recorder) Resize(width, height float64) {
	rc.record("Resize", width, height)
	rc.Width, rc.Height = width, height
}

func (rc *Recorder) FillRect(x, y, width, height float64) {
	rc.record("FillRect", x, y, width, height)
	st := rc.Current()
	rc.Fills = append(rc.Fills, Painted{Path: render.RectPath(x, y, width, height, st.Transform), Color: st.FillColor, Group: rc.currentGroup()})
}

func (rc *Recorder) ClearRect(x, y, width, height float64) {
	rc.record("ClearRect", x, y, width, height)
}

func (rc *Recorder) BeginPath() {
	rc.record("BeginPath")
	rc.Base.BeginPath()
}

func (rc *Recorder) MoveTo(x, y float64) {
	rc.record("MoveTo", x, y)
	rc.Base.MoveTo(x, y)
}

func (rc *Recorder) LineTo(x, y float64) {
	rc.record("LineTo", x, y)
	rc.Base.LineTo(x, y)
}

func (rc *Recorder) BezierCurveTo(x1, y1, x2, y2, x, y float64) {
	rc.record("BezierCurveTo", x1, y1, x2, y2, x, y)
	rc.Base.BezierCurveTo(x1, y1, x2, y2, x, y)
}

func (rc *Recorder) QuadraticCurveTo(x1, y1, x, y float64) {
	rc.record("QuadraticCurveTo", x1, y1, x, y)
	rc.Base.QuadraticCurveTo(x1, y1, x, y)
}

func (rc *Recorder) Arc(x, y, radius, startAngle, endAngle float64, antiClockwise bool) {
	rc.record("Arc", x, y, radius, startAngle, endAngle, antiClockwise)
	rc.Base.Arc(x, y, radius, startAngle, endAngle, antiClockwise)
}

func (rc *Recorder) ClosePath() {
	rc.record("ClosePath")
	rc.Base.ClosePath()
}

func (rc *Recorder) Glow() { rc.record("Glow") }

func (rc *Recorder) Fill() {
	rc.record("Fill")
	if len(rc.Path) == 0 {
		return
	}
	path := append(render.Path(nil), rc.Path...)
	rc.Fills = append(rc.Fills, Painted{Path: path, Color: rc.Current().FillColor, Group: rc.currentGroup()})
}

func (rc *Recorder) Stroke() {
	rc.record("Stroke")
	if len(rc.Path) == 0 {
		return
	}
	path := append(render.Path(nil), rc.Path...)
	rc.Strokes = append(rc.Strokes, Painted{Path: path, Color: rc.Current().StrokeColor, Group: rc.currentGroup()})
}

func (rc *Recorder) FillText(text string, x, y float64) {
	rc.record("FillText", text, x, y)
	rc.Texts = append(rc.Texts, text)
}

func (rc *Recorder) MeasureText(text string) render.TextMetrics {
	rc.record("MeasureText", text)
	return rc.Base.MeasureText(text)
}

func (rc *Recorder) Save() {
	rc.record("Save")
	rc.Base.Save()
}

func (rc *Recorder) Restore() {
	rc.record("Restore")
	rc.Base.Restore()
}

func (rc *Recorder) OpenGroup(class, id string) render.Group {
	rc.record("OpenGroup", class, id)
	g := render.Group{Class: class, ID: id}
	rc.groups = append(rc.groups, g)
	return g
}

func (rc *Recorder) CloseGroup() {
	rc.record("CloseGroup")
	if len(rc.groups) == 0 {
		rc.Logger().Error("unmatched CloseGroup ignored")
		return
	}
	rc.groups = rc.groups[:len(rc.groups)-1]
}
