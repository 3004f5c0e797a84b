package note

import (
	"github.com/benoitkugler/okscore/stave"
)

// TickContext holds the horizontal position
// assigned to a group of simultaneous elements by the layout.
type TickContext struct {
	x float64
}

func NewTickContext(x float64) *TickContext { return &TickContext{x: x} }

// X returns the position, relative to the start of the notes
// on the stave.
func (tc *TickContext) X() float64 { return tc.x }

func (tc *TickContext) SetX(x float64) { tc.x = x }

// ModifierContext groups the elements sharing modifiers
// (accidentals, dots, ...) so that they are formatted together.
type ModifierContext struct {
	members      []Tickable
	preFormatted bool
}

func (mc *ModifierContext) AddMember(t Tickable) {
	mc.members = append(mc.members, t)
	mc.preFormatted = false
}

func (mc *ModifierContext) Members() []Tickable { return mc.members }

func (mc *ModifierContext) IsPreFormatted() bool { return mc.preFormatted }

// PreFormat lays out the modifiers of the members.
func (mc *ModifierContext) PreFormat() { mc.preFormatted = true }

// Tickable is implemented by the elements a formatter can lay out.
type Tickable interface {
	Width() float64
	// IgnoreTicks returns true for elements without duration.
	IgnoreTicks() bool
	SetTickContext(tc *TickContext)
	SetStave(st *stave.Stave)
	// Prepare registers the element in `mc` and pre-formats it.
	Prepare(mc *ModifierContext)
}

var _ Tickable = (*Note)(nil)

// Note is the base of the elements placed in a voice.
type Note struct {
	Element

	width, xShift float64
	ignoreTicks   bool
	preFormatted  bool

	tickContext     *TickContext
	modifierContext *ModifierContext
	stave           *stave.Stave
}

func (n *Note) Width() float64 { return n.width }

func (n *Note) SetWidth(width float64) { n.width = width }

func (n *Note) XShift() float64 { return n.xShift }

// SetXShift moves the element horizontally, relatively
// to its tick context.
func (n *Note) SetXShift(x float64) { n.xShift = x }

func (n *Note) IgnoreTicks() bool { return n.ignoreTicks }

func (n *Note) IsPreFormatted() bool { return n.preFormatted }

func (n *Note) SetPreFormatted(b bool) { n.preFormatted = b }

func (n *Note) TickContext() *TickContext { return n.tickContext }

func (n *Note) SetTickContext(tc *TickContext) {
	n.tickContext = tc
	n.preFormatted = false
}

func (n *Note) ModifierContext() *ModifierContext { return n.modifierContext }

func (n *Note) Stave() *stave.Stave { return n.stave }

// SetStave attaches the note to `st`, also using the stave
// rendering context if it has one.
func (n *Note) SetStave(st *stave.Stave) {
	n.stave = st
	if st != nil && st.Context() != nil {
		n.SetContext(st.Context())
	}
}

// CheckStave returns the stave or ErrNoStave.
func (n *Note) CheckStave() (*stave.Stave, error) {
	if n.stave == nil {
		return nil, ErrNoStave
	}
	return n.stave, nil
}

// AddToModifierContext registers the note in `mc`.
func (n *Note) AddToModifierContext(mc *ModifierContext) *Note {
	n.modifierContext = mc
	mc.AddMember(n)
	n.preFormatted = false
	return n
}

// PreFormat formats the modifier context of the note, if any.
func (n *Note) PreFormat() *Note {
	if n.preFormatted {
		return n
	}
	if n.modifierContext != nil {
		n.modifierContext.PreFormat()
	}
	n.preFormatted = true
	return n
}

func (n *Note) Prepare(mc *ModifierContext) {
	n.AddToModifierContext(mc)
	n.PreFormat()
}

// AbsoluteX returns the x coordinate of the note on the
// drawing surface. It fails with ErrNoTickContext before layout.
func (n *Note) AbsoluteX() (float64, error) {
	if n.tickContext == nil {
		return 0, ErrNoTickContext
	}
	x := n.tickContext.X() + n.xShift
	if n.stave != nil {
		x += n.stave.NoteStartX() + stave.Padding
	}
	return x, nil
}
