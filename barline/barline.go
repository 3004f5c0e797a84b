package barline

import (
	"fmt"
	"math"

	"github.com/benoitkugler/okscore/render"
)

// Staff exposes the vertical geometry of the staff
// a bar line is drawn on.
type Staff interface {
	// TopLineTopY returns the top edge of the first line.
	TopLineTopY() float64
	// BottomLineBottomY returns the bottom edge of the last line.
	BottomLineBottomY() float64
	NumLines() int
	SpacingBetweenLines() float64
}

// Style is applied around the bar line drawing.
// Empty fields are left unchanged.
type Style struct {
	FillStyle   string
	ShadowColor string
	ShadowBlur  float64
}

// Barline draws one bar line at a given horizontal position.
type Barline struct {
	kind  Kind
	x     float64
	id    string
	style *Style
}

// New returns a bar line of the given kind, positioned at 0.
func New(kind Kind) *Barline { return &Barline{kind: kind} }

func (b *Barline) Kind() Kind { return b.kind }

func (b *Barline) SetKind(kind Kind) { b.kind = kind }

func (b *Barline) X() float64 { return b.x }

func (b *Barline) SetX(x float64) { b.x = x }

// SetID sets the id of the group wrapping the drawing.
func (b *Barline) SetID(id string) { b.id = id }

func (b *Barline) SetStyle(s *Style) { b.style = s }

const (
	thinWidth  = 1
	thickWidth = 3
	dotRadius  = 2
)

// Draw paints the bar line on `ctx`, spanning the lines of `staff`.
// The drawing is wrapped in a "stavebarline" group.
func (b *Barline) Draw(ctx render.Context, staff Staff) error {
	if !b.kind.Valid() {
		return fmt.Errorf("drawing bar line: %w: %d", ErrUnknownKind, b.kind)
	}
	if b.style != nil {
		ctx.Save()
		defer ctx.Restore()
		if b.style.FillStyle != "" {
			ctx.SetFillStyle(b.style.FillStyle)
		}
		if b.style.ShadowColor != "" {
			ctx.SetShadowColor(b.style.ShadowColor)
			ctx.SetShadowBlur(b.style.ShadowBlur)
		}
	}

	ctx.OpenGroup("stavebarline", b.id)
	defer ctx.CloseGroup()

	x := b.x
	switch b.kind {
	case Single:
		drawVerticalBar(ctx, staff, x, false)
	case Double:
		drawVerticalBar(ctx, staff, x, true)
	case End:
		drawVerticalEndBar(ctx, staff, x)
	case RepeatBegin:
		drawRepeatBar(ctx, staff, x, true)
	case RepeatEnd:
		drawRepeatBar(ctx, staff, x, false)
	case RepeatBoth:
		drawRepeatBar(ctx, staff, x, false)
		drawRepeatBar(ctx, staff, x, true)
	case None:
	}
	return nil
}

func drawVerticalBar(ctx render.Context, staff Staff, x float64, double bool) {
	topY, botY := staff.TopLineTopY(), staff.BottomLineBottomY()
	if double {
		ctx.FillRect(x-3, topY, thinWidth, botY-topY)
	}
	ctx.FillRect(x, topY, thinWidth, botY-topY)
}

func drawVerticalEndBar(ctx render.Context, staff Staff, x float64) {
	topY, botY := staff.TopLineTopY(), staff.BottomLineBottomY()
	ctx.FillRect(x-5, topY, thinWidth, botY-topY)
	ctx.FillRect(x-2, topY, thickWidth, botY-topY)
}

// drawRepeatBar draws a thin and a thick line, with the two
// dots on the side of the repeated section
func drawRepeatBar(ctx render.Context, staff Staff, x float64, begin bool) {
	topY, botY := staff.TopLineTopY(), staff.BottomLineBottomY()
	shift := 3.
	if !begin {
		shift = -5
	}
	ctx.FillRect(x+shift, topY, thinWidth, botY-topY)
	ctx.FillRect(x-2, topY, thickWidth, botY-topY)

	if begin {
		shift += 4
	} else {
		shift -= 4
	}
	dotX := x + shift + dotRadius/2.

	// the dots surround the middle line
	spacing := staff.SpacingBetweenLines()
	yOffset := float64(staff.NumLines()-1) * spacing
	yOffset = yOffset/2 - spacing/2
	dotY := topY + yOffset + dotRadius/2.

	for range 2 {
		ctx.BeginPath()
		ctx.Arc(dotX, dotY, dotRadius, 0, 2*math.Pi, false)
		ctx.Fill()
		dotY += spacing
	}
}
