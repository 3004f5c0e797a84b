package render

import (
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/srwiley/rasterx"
)

// State holds the drawing state saved and restored
// by Save and Restore.
type State struct {
	Font Font

	FillColor, StrokeColor, BackgroundColor color.Color

	LineWidth float64
	LineCap   LineCap
	LineDash  []float64 // nil for plain lines

	ShadowColor color.Color
	ShadowBlur  float64

	Transform rasterx.Matrix2D // current transform
}

// DefaultState is the state of a fresh context:
// black fill and stroke, white background, 1 unit wide lines.
var DefaultState = State{
	Font:            DefaultFont,
	FillColor:       color.Black,
	StrokeColor:     color.Black,
	BackgroundColor: color.White,
	LineWidth:       1,
	LineCap:         ButtCap,
	ShadowColor:     color.Transparent,
	Transform:       rasterx.Identity,
}

// StateStack implements the Save / Restore mechanism.
type StateStack struct {
	current State
	saved   []State
}

// NewStateStack returns a stack starting with DefaultState.
func NewStateStack() StateStack {
	return StateStack{current: DefaultState}
}

// Current returns the active state, which may be modified in place.
func (st *StateStack) Current() *State { return &st.current }

// Depth returns the number of pending Save calls.
func (st *StateStack) Depth() int { return len(st.saved) }

// Push saves a copy of the active state.
func (st *StateStack) Push() {
	saved := st.current
	saved.LineDash = slices.Clone(st.current.LineDash)
	st.saved = append(st.saved, saved)
}

// Pop reverts to the last saved state. It returns false
// (and does nothing) if there is no saved state.
func (st *StateStack) Pop() bool {
	n := len(st.saved)
	if n == 0 {
		return false
	}
	st.current = st.saved[n-1]
	st.saved = st.saved[:n-1]
	return true
}

// Reset discards the saved states and restores DefaultState.
func (st *StateStack) Reset() {
	st.current = DefaultState
	st.saved = st.saved[:0]
}

var discard = slog.New(slog.DiscardHandler)

// Base implements the state and path construction parts of Context,
// which are shared by all the backends.
// Painting operations are left to the embedding type.
// Points are recorded in device space: the current transform is
// applied when they are added.
type Base struct {
	StateStack

	// Path is the current path.
	Path Path

	Text TextMeasurer

	logger *slog.Logger

	// current point and sub path start, in user space
	curX, curY     float64
	startX, startY float64
	hasCurrent     bool
	pendingMove    bool // set after ClosePath
}

// NewBase returns a Base using DefaultState.
func NewBase() Base {
	return Base{StateStack: NewStateStack()}
}

// SetLogger sets the logger used to report invalid
// drawing parameters. A nil logger discards them.
func (b *Base) SetLogger(logger *slog.Logger) { b.logger = logger }

// Logger returns the logger in use, never nil.
func (b *Base) Logger() *slog.Logger {
	if b.logger == nil {
		return discard
	}
	return b.logger
}

func (b *Base) SetFont(family string, size float64, weight string) {
	if weight == "" {
		weight = "normal"
	}
	b.current.Font = Font{Family: family, Size: size, Weight: weight, Style: "normal"}
}

func (b *Base) SetRawFont(font string) error {
	f, err := ParseFont(font)
	if err != nil {
		return err
	}
	b.current.Font = f
	return nil
}

// parseColor returns the parsed color or `fallback` if `style`
// is invalid.
func (b *Base) parseColor(style string, fallback color.Color) color.Color {
	c, err := ParseColor(style)
	if err != nil {
		b.Logger().Warn("ignoring style", "err", err)
		return fallback
	}
	return c
}

func (b *Base) SetFillStyle(style string) {
	b.current.FillColor = b.parseColor(style, b.current.FillColor)
}

func (b *Base) SetBackgroundFillStyle(style string) {
	b.current.BackgroundColor = b.parseColor(style, b.current.BackgroundColor)
}

func (b *Base) SetStrokeStyle(style string) {
	b.current.StrokeColor = b.parseColor(style, b.current.StrokeColor)
}

func (b *Base) SetShadowColor(c string) {
	b.current.ShadowColor = b.parseColor(c, b.current.ShadowColor)
}

func (b *Base) SetShadowBlur(blur float64) { b.current.ShadowBlur = blur }

func (b *Base) SetLineWidth(width float64) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		b.Logger().Warn("ignoring line width", "width", width)
		return
	}
	b.current.LineWidth = width
}

func (b *Base) SetLineCap(cap LineCap) {
	if !cap.Valid() {
		b.Logger().Warn("ignoring line cap", "cap", uint8(cap))
		return
	}
	b.current.LineCap = cap
}

func (b *Base) SetLineDash(dash []float64) {
	for _, d := range dash {
		if d < 0 {
			b.Logger().Warn("ignoring line dash", "dash", dash)
			return
		}
	}
	b.current.LineDash = slices.Clone(dash)
}

// Scale multiplies the current transform.
func (b *Base) Scale(x, y float64) {
	b.current.Transform = b.current.Transform.Scale(x, y)
}

func (b *Base) Save() { b.Push() }

func (b *Base) Restore() {
	if !b.Pop() {
		b.Logger().Error("unmatched Restore ignored")
	}
}

// LineWidthDevice returns the line width with the scale
// of the current transform applied.
func (b *Base) LineWidthDevice() float64 {
	m := b.current.Transform
	sx, sy := math.Hypot(m.A, m.B), math.Hypot(m.C, m.D)
	return b.current.LineWidth * (sx + sy) / 2
}

func (b *Base) MeasureText(text string) TextMetrics {
	tm, err := b.Text.Measure(b.current.Font, text)
	if err != nil {
		b.Logger().Error("measuring text", "err", err)
	}
	return tm
}

func (b *Base) Glow() {}

func (b *Base) toDevice(x, y float64) (fx, fy float64) {
	return b.current.Transform.Transform(x, y)
}

func (b *Base) BeginPath() {
	b.Path.Clear()
	b.hasCurrent, b.pendingMove = false, false
}

func (b *Base) MoveTo(x, y float64) {
	b.Path.Start(FToFixed(b.toDevice(x, y)))
	b.curX, b.curY, b.startX, b.startY = x, y, x, y
	b.hasCurrent, b.pendingMove = true, false
}

// ensure starts a sub path if needed
func (b *Base) ensure(x, y float64) {
	if !b.hasCurrent {
		b.MoveTo(x, y)
	} else if b.pendingMove {
		b.MoveTo(b.curX, b.curY)
	}
}

func (b *Base) LineTo(x, y float64) {
	b.ensure(x, y)
	b.Path.Line(FToFixed(b.toDevice(x, y)))
	b.curX, b.curY = x, y
}

func (b *Base) BezierCurveTo(x1, y1, x2, y2, x, y float64) {
	b.ensure(x1, y1)
	b.Path.CubeBezier(FToFixed(b.toDevice(x1, y1)), FToFixed(b.toDevice(x2, y2)), FToFixed(b.toDevice(x, y)))
	b.curX, b.curY = x, y
}

func (b *Base) QuadraticCurveTo(x1, y1, x, y float64) {
	b.ensure(x1, y1)
	b.Path.QuadBezier(FToFixed(b.toDevice(x1, y1)), FToFixed(b.toDevice(x, y)))
	b.curX, b.curY = x, y
}

func (b *Base) Arc(x, y, radius, startAngle, endAngle float64, antiClockwise bool) {
	if radius < 0 {
		b.Logger().Warn("ignoring arc with negative radius", "radius", radius)
		return
	}
	x0, y0, curves := ArcToCubics(x, y, radius, startAngle, endAngle, antiClockwise)
	if b.hasCurrent && !b.pendingMove {
		b.LineTo(x0, y0)
	} else {
		b.MoveTo(x0, y0)
	}
	for _, c := range curves {
		b.BezierCurveTo(c[0], c[1], c[2], c[3], c[4], c[5])
	}
}

func (b *Base) ClosePath() {
	if !b.hasCurrent {
		return
	}
	b.Path.Stop(true)
	b.curX, b.curY = b.startX, b.startY
	b.pendingMove = true
}
