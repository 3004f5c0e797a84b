package note

import (
	"fmt"

	"github.com/benoitkugler/okscore/barline"
)

// barNoteWidths is the horizontal space taken by each kind of bar.
var barNoteWidths = [...]float64{
	barline.Single:      8,
	barline.Double:      12,
	barline.End:         15,
	barline.RepeatBegin: 14,
	barline.RepeatEnd:   14,
	barline.RepeatBoth:  18,
	barline.None:        0,
}

var _ Tickable = (*BarNote)(nil)

// BarNote is a bar line placed in a voice, between two measures.
// It takes horizontal space but no musical time.
type BarNote struct {
	Note

	kind barline.Kind
}

// NewBarNote returns a single bar note.
func NewBarNote() *BarNote {
	b := &BarNote{}
	b.init("BarNote")
	b.ignoreTicks = true
	b.setKind(barline.Single)
	return b
}

// NewBarNoteOf returns a bar note of the given kind,
// or ErrUnknownKind.
func NewBarNoteOf(kind barline.Kind) (*BarNote, error) {
	b := NewBarNote()
	if err := b.SetKind(kind); err != nil {
		return nil, err
	}
	return b, nil
}

// Kind returns the kind of bar line drawn.
func (b *BarNote) Kind() barline.Kind { return b.kind }

func (b *BarNote) setKind(kind barline.Kind) {
	b.kind = kind
	b.width = barNoteWidths[kind]
}

// SetKind changes the kind of bar line, and the width accordingly.
// An invalid kind is rejected and leaves the note unchanged.
func (b *BarNote) SetKind(kind barline.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("bar note: %w: %d", barline.ErrUnknownKind, kind)
	}
	b.setKind(kind)
	return nil
}

// SetKindName is the same as SetKind, using the
// name of the kind, like "repeatBegin".
func (b *BarNote) SetKindName(name string) error {
	kind, err := barline.ParseKind(name)
	if err != nil {
		return fmt.Errorf("bar note: %w", err)
	}
	b.setKind(kind)
	return nil
}

// IgnoreTicks always returns true: bar notes have no duration.
func (b *BarNote) IgnoreTicks() bool { return true }

// AddToModifierContext does nothing: bar notes have no modifiers.
func (b *BarNote) AddToModifierContext(*ModifierContext) *BarNote { return b }

// PreFormat only marks the note as pre-formatted.
func (b *BarNote) PreFormat() *BarNote {
	b.SetPreFormatted(true)
	return b
}

func (b *BarNote) Prepare(mc *ModifierContext) {
	b.AddToModifierContext(mc)
	b.PreFormat()
}

// Draw paints the bar line at the position assigned by the layout.
// The note must have a context, a stave and a tick context.
func (b *BarNote) Draw() error {
	ctx, err := b.CheckContext()
	if err != nil {
		return fmt.Errorf("drawing bar note %s: %w", b.ID(), err)
	}
	st, err := b.CheckStave()
	if err != nil {
		return fmt.Errorf("drawing bar note %s: %w", b.ID(), err)
	}
	x, err := b.AbsoluteX()
	if err != nil {
		return fmt.Errorf("drawing bar note %s: %w", b.ID(), err)
	}
	b.Logger().Debug("rendering bar line", "id", b.ID(), "kind", b.kind, "x", x)

	if b.Style() != nil {
		b.ApplyStyle(ctx)
	}
	bar := barline.New(b.kind)
	bar.SetX(x)
	// the note opens no group of its own: the bar line group
	// carries the note id so the output can be matched to it
	bar.SetID(b.ID())
	err = bar.Draw(ctx, st)
	if b.Style() != nil {
		b.RestoreStyle(ctx)
	}
	if err != nil {
		return fmt.Errorf("drawing bar note %s: %w", b.ID(), err)
	}

	b.setRendered()
	return nil
}
