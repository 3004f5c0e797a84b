// Implements the five-line staff notes are drawn on.
package stave

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/okscore/barline"
	"github.com/benoitkugler/okscore/render"
)

// ErrNoContext is returned when drawing a stave
// without rendering context.
var ErrNoContext = errors.New("no rendering context attached to the stave")

const (
	// Padding is the horizontal space added before the notes.
	Padding = 12
	// LineThickness is the thickness of the staff lines.
	LineThickness = 1
)

// Options holds the geometry and appearance of a stave.
type Options struct {
	SpacingBetweenLines float64 // in pixels
	NumLines            int
	SpaceAboveStaffLn   float64 // in lines
	SpaceBelowStaffLn   float64 // in lines
	LineColor           string

	BeginBar, EndBar barline.Kind
}

// DefaultOptions are the options used when none are given.
var DefaultOptions = Options{
	SpacingBetweenLines: 10,
	NumLines:            5,
	SpaceAboveStaffLn:   4,
	SpaceBelowStaffLn:   4,
	LineColor:           "#999999",
	BeginBar:            barline.Single,
	EndBar:              barline.Single,
}

// Stave is a staff positioned on the drawing surface.
type Stave struct {
	x, y, width float64
	opts        Options

	noteStartX float64
	ctx        render.Context
	rendered   bool
}

// New returns a stave whose top left corner is (x, y).
// If `opts` is nil, DefaultOptions are used.
func New(x, y, width float64, opts *Options) *Stave {
	st := &Stave{x: x, y: y, width: width, opts: DefaultOptions}
	if opts != nil {
		st.opts = *opts
	}
	if st.opts.NumLines <= 0 {
		st.opts.NumLines = DefaultOptions.NumLines
	}
	if st.opts.SpacingBetweenLines <= 0 {
		st.opts.SpacingBetweenLines = DefaultOptions.SpacingBetweenLines
	}
	st.noteStartX = x + 5
	return st
}

func (st *Stave) X() float64     { return st.x }
func (st *Stave) Y() float64     { return st.y }
func (st *Stave) Width() float64 { return st.width }

// Options returns a copy of the stave options.
func (st *Stave) Options() Options { return st.opts }

func (st *Stave) SetContext(ctx render.Context) { st.ctx = ctx }

func (st *Stave) Context() render.Context { return st.ctx }

// CheckContext returns the rendering context or ErrNoContext.
func (st *Stave) CheckContext() (render.Context, error) {
	if st.ctx == nil {
		return nil, ErrNoContext
	}
	return st.ctx, nil
}

func (st *Stave) NumLines() int { return st.opts.NumLines }

func (st *Stave) SpacingBetweenLines() float64 { return st.opts.SpacingBetweenLines }

// YForLine returns the y coordinate of the line `line` (0 for the top line).
func (st *Stave) YForLine(line int) float64 {
	return st.y + (float64(line)+st.opts.SpaceAboveStaffLn)*st.opts.SpacingBetweenLines
}

func (st *Stave) TopLineTopY() float64 {
	return st.YForLine(0) - LineThickness/2.
}

func (st *Stave) BottomLineBottomY() float64 {
	return st.YForLine(st.opts.NumLines-1) + LineThickness/2.
}

// Height returns the total height, including the space
// above and below the lines.
func (st *Stave) Height() float64 {
	lines := float64(st.opts.NumLines-1) + st.opts.SpaceAboveStaffLn + st.opts.SpaceBelowStaffLn
	return lines * st.opts.SpacingBetweenLines
}

// NoteStartX returns the x coordinate where notes may begin.
func (st *Stave) NoteStartX() float64 { return st.noteStartX }

func (st *Stave) SetNoteStartX(x float64) { st.noteStartX = x }

// NoteEndX returns the x coordinate where notes must end.
func (st *Stave) NoteEndX() float64 { return st.x + st.width - Padding }

func (st *Stave) SetBeginBar(kind barline.Kind) { st.opts.BeginBar = kind }

func (st *Stave) SetEndBar(kind barline.Kind) { st.opts.EndBar = kind }

// IsRendered returns true once Draw has succeeded.
func (st *Stave) IsRendered() bool { return st.rendered }

// Draw paints the staff lines, then the begin and end bar lines.
func (st *Stave) Draw() error {
	ctx, err := st.CheckContext()
	if err != nil {
		return err
	}

	ctx.Save()
	ctx.OpenGroup("stave", "")
	ctx.SetStrokeStyle(st.opts.LineColor)
	ctx.SetFillStyle(st.opts.LineColor)
	ctx.SetLineWidth(LineThickness)
	for line := 0; line < st.opts.NumLines; line++ {
		y := st.YForLine(line)
		ctx.BeginPath()
		ctx.MoveTo(st.x, y)
		ctx.LineTo(st.x+st.width, y)
		ctx.Stroke()
	}
	ctx.CloseGroup()
	ctx.Restore()

	begin := barline.New(st.opts.BeginBar)
	begin.SetX(st.x)
	if st.opts.BeginBar == barline.RepeatBegin || st.opts.BeginBar == barline.RepeatBoth {
		// keep the thick line inside the stave
		begin.SetX(st.x + 2)
	}
	if err := begin.Draw(ctx, st); err != nil {
		return fmt.Errorf("drawing stave: %w", err)
	}
	end := barline.New(st.opts.EndBar)
	end.SetX(st.x + st.width - LineThickness)
	if err := end.Draw(ctx, st); err != nil {
		return fmt.Errorf("drawing stave: %w", err)
	}
	st.rendered = true
	return nil
}
