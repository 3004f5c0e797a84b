package note

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/okscore/stave"
)

// ErrNotEnoughSpace is returned by Justify when the notes
// are wider than the stave.
var ErrNotEnoughSpace = errors.New("not enough space on the stave")

// Justify attaches `notes` to `st`, pre-formats them and assigns each one
// a tick context, spreading them so that the first starts at the beginning
// of the stave note area and the last ends at its end.
// A single note is placed at the beginning.
func Justify(st *stave.Stave, notes ...Tickable) error {
	if len(notes) == 0 {
		return nil
	}
	var total float64
	for _, n := range notes {
		total += n.Width()
	}
	available := st.NoteEndX() - st.NoteStartX() - stave.Padding
	free := available - total
	if free < 0 {
		return fmt.Errorf("%w: notes need %g, stave has %g", ErrNotEnoughSpace, total, available)
	}
	var gap float64
	if len(notes) > 1 {
		gap = free / float64(len(notes)-1)
	}

	var mc ModifierContext
	x := 0.
	for _, n := range notes {
		n.SetStave(st)
		n.SetTickContext(NewTickContext(x))
		n.Prepare(&mc)
		x += n.Width() + gap
	}
	return nil
}
