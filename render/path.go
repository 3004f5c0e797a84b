package render

import (
	"fmt"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// This file defines the basic path structure, recorded
// by the backends between BeginPath and Fill or Stroke.

var _ rasterx.Adder = (*Path)(nil) // assert interface conformance

// Operation groups the different path commands
type Operation interface {
	// add itself on `q`
	addTo(q rasterx.Adder)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

// starts a new sub path at the given point.
func (op MoveTo) addTo(q rasterx.Adder) {
	q.Stop(false) // implicit close if currently in path.
	q.Start(fixed.Point26_6(op))
}

func (op LineTo) addTo(q rasterx.Adder) { q.Line(fixed.Point26_6(op)) }

func (op QuadTo) addTo(q rasterx.Adder) { q.QuadBezier(op[0], op[1]) }

func (op CubicTo) addTo(q rasterx.Adder) { q.CubeBezier(op[0], op[1], op[2]) }

func (op Close) addTo(q rasterx.Adder) { q.Stop(true) }

// Path describes a sequence of basic operations, in device space.
// Higher-level shapes (rectangles, arcs) are reduced to a path.
type Path []Operation

// AddTo replays the path on `q`.
func (p Path) AddTo(q rasterx.Adder) {
	for _, op := range p {
		op.addTo(q)
	}
	q.Stop(false)
}

// ToSVGPath returns the SVG path data of the path.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = "M" + formatPoints(fixed.Point26_6(op))
		case LineTo:
			chunks[i] = "L" + formatPoints(fixed.Point26_6(op))
		case QuadTo:
			chunks[i] = "Q" + formatPoints(op[0], op[1])
		case CubicTo:
			chunks[i] = "C" + formatPoints(op[0], op[1], op[2])
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

func formatPoints(points ...fixed.Point26_6) string {
	chunks := make([]string, len(points))
	for i, pt := range points {
		x, y := FixedToF(pt)
		chunks[i] = FormatFloat(x) + "," + FormatFloat(y)
	}
	return strings.Join(chunks, " ")
}

// FormatFloat returns the shortest representation of `f`,
// rounded to 3 decimals.
func FormatFloat(f float64) string {
	s := fmt.Sprintf("%.3f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// FToFixed converts a point to fixed coordinates.
func FToFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// FixedToF converts a fixed point to float coordinates.
func FixedToF(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// RectPath returns the closed path of the rectangle (x, y, w, h),
// with the transform `m` applied.
func RectPath(x, y, w, h float64, m rasterx.Matrix2D) Path {
	tr := func(x, y float64) fixed.Point26_6 { return FToFixed(m.Transform(x, y)) }
	return Path{
		MoveTo(tr(x, y)),
		LineTo(tr(x+w, y)),
		LineTo(tr(x+w, y+h)),
		LineTo(tr(x, y+h)),
		Close{},
	}
}
