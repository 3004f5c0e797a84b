// Implements the renderable notation elements placed on a stave,
// starting with the bar note: a bar line living in a voice.
package note

import (
	"errors"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/benoitkugler/okscore/render"
)

var (
	// ErrNoContext is returned when drawing an element
	// without rendering context.
	ErrNoContext = errors.New("no rendering context attached to the element")
	// ErrNoStave is returned when drawing an element
	// which is not attached to a stave.
	ErrNoStave = errors.New("no stave attached to the element")
	// ErrNoTickContext is returned when the horizontal position
	// of an element is required before layout.
	ErrNoTickContext = errors.New("no tick context attached to the element: it must be formatted first")
)

var discard = slog.New(slog.DiscardHandler)

var lastID atomic.Uint64

func newID() string { return "auto" + strconv.FormatUint(lastID.Add(1), 10) }

// Style is applied around the drawing of an element.
// Zero fields are left unchanged.
type Style struct {
	ShadowColor string
	ShadowBlur  float64
	FillStyle   string
	StrokeStyle string
	LineWidth   float64
}

// Element holds what every renderable element has:
// an id, a rendering context, an optional style and a logger.
type Element struct {
	id       string
	category string
	ctx      render.Context
	style    *Style
	rendered bool
	logger   *slog.Logger
}

func (e *Element) init(category string) {
	e.id = newID()
	e.category = category
}

// ID returns the unique id of the element, used to
// name its groups in structured outputs.
func (e *Element) ID() string { return e.id }

func (e *Element) SetID(id string) { e.id = id }

// Category returns the name of the element type, like "BarNote".
func (e *Element) Category() string { return e.category }

func (e *Element) SetContext(ctx render.Context) { e.ctx = ctx }

func (e *Element) Context() render.Context { return e.ctx }

// CheckContext returns the rendering context or ErrNoContext.
func (e *Element) CheckContext() (render.Context, error) {
	if e.ctx == nil {
		return nil, ErrNoContext
	}
	return e.ctx, nil
}

func (e *Element) SetStyle(style *Style) { e.style = style }

func (e *Element) Style() *Style { return e.style }

// ApplyStyle saves the state of `ctx` and applies the element style.
// It must be balanced by RestoreStyle.
func (e *Element) ApplyStyle(ctx render.Context) {
	ctx.Save()
	s := e.style
	if s == nil {
		return
	}
	if s.ShadowColor != "" {
		ctx.SetShadowColor(s.ShadowColor)
	}
	if s.ShadowBlur != 0 {
		ctx.SetShadowBlur(s.ShadowBlur)
	}
	if s.FillStyle != "" {
		ctx.SetFillStyle(s.FillStyle)
	}
	if s.StrokeStyle != "" {
		ctx.SetStrokeStyle(s.StrokeStyle)
	}
	if s.LineWidth != 0 {
		ctx.SetLineWidth(s.LineWidth)
	}
}

// RestoreStyle reverts what ApplyStyle did.
func (e *Element) RestoreStyle(ctx render.Context) { ctx.Restore() }

func (e *Element) IsRendered() bool { return e.rendered }

func (e *Element) setRendered() { e.rendered = true }

// SetLogger sets the logger receiving the debug traces
// of the element. A nil logger discards them.
func (e *Element) SetLogger(logger *slog.Logger) { e.logger = logger }

// Logger returns the logger in use, never nil.
func (e *Element) Logger() *slog.Logger {
	if e.logger == nil {
		return discard
	}
	return e.logger
}
