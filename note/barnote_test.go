package note

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/benoitkugler/okscore/barline"
	"github.com/benoitkugler/okscore/recorder"
	"github.com/benoitkugler/okscore/stave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarNoteWidths(t *testing.T) {
	for kind, width := range map[barline.Kind]float64{
		barline.Single:      8,
		barline.Double:      12,
		barline.End:         15,
		barline.RepeatBegin: 14,
		barline.RepeatEnd:   14,
		barline.RepeatBoth:  18,
		barline.None:        0,
	} {
		b, err := NewBarNoteOf(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, b.Kind())
		assert.Equal(t, width, b.Width(), kind)
		assert.True(t, b.IgnoreTicks())
	}

	_, err := NewBarNoteOf(barline.Kind(20))
	assert.ErrorIs(t, err, barline.ErrUnknownKind)
}

func TestNewBarNote(t *testing.T) {
	b := NewBarNote()
	assert.Equal(t, barline.Single, b.Kind())
	assert.Equal(t, 8., b.Width())
	assert.True(t, b.IgnoreTicks())
	assert.Equal(t, "BarNote", b.Category())
	assert.True(t, strings.HasPrefix(b.ID(), "auto"))
	assert.NotEqual(t, b.ID(), NewBarNote().ID())
	assert.False(t, b.IsRendered())
	assert.False(t, b.IsPreFormatted())

	d, err := NewBarNoteOf(barline.Double)
	require.NoError(t, err)
	assert.Equal(t, barline.Double, d.Kind())
	assert.Equal(t, 12., d.Width())
}

func TestSetKind(t *testing.T) {
	for kind := barline.Single; kind <= barline.None; kind++ {
		byValue, byName := NewBarNote(), NewBarNote()
		require.NoError(t, byValue.SetKind(kind))
		require.NoError(t, byName.SetKindName(kind.String()))
		assert.Equal(t, byValue.Kind(), byName.Kind())
		assert.Equal(t, byValue.Width(), byName.Width())
		assert.True(t, byName.IgnoreTicks())
	}

	b := NewBarNote()
	require.NoError(t, b.SetKind(barline.RepeatBoth))
	assert.ErrorIs(t, b.SetKindName("triple"), barline.ErrUnknownKind)
	assert.ErrorIs(t, b.SetKind(barline.Kind(7)), barline.ErrUnknownKind)
	// unchanged
	assert.Equal(t, barline.RepeatBoth, b.Kind())
	assert.Equal(t, 18., b.Width())
}

func TestLayoutNoOps(t *testing.T) {
	var mc ModifierContext
	b := NewBarNote()
	assert.Same(t, b, b.AddToModifierContext(&mc))
	assert.Empty(t, mc.Members())
	assert.Nil(t, b.ModifierContext())
	assert.False(t, b.IsPreFormatted())

	assert.Same(t, b, b.PreFormat())
	assert.True(t, b.IsPreFormatted())
	assert.Same(t, b, b.PreFormat())
	assert.True(t, b.IsPreFormatted())
	assert.False(t, mc.IsPreFormatted())
}

func TestDrawUnbound(t *testing.T) {
	rc := recorder.New(400, 150)
	st := stave.New(10, 0, 300, nil)

	b := NewBarNote()
	assert.ErrorIs(t, b.Draw(), ErrNoContext)

	b.SetContext(rc)
	assert.ErrorIs(t, b.Draw(), ErrNoStave)

	b.SetStave(st)
	assert.ErrorIs(t, b.Draw(), ErrNoTickContext)

	assert.Empty(t, rc.Calls)
	assert.False(t, b.IsRendered())
}

func TestSetStaveContext(t *testing.T) {
	rc := recorder.New(400, 150)
	st := stave.New(10, 0, 300, nil)
	b := NewBarNote()
	b.SetStave(st)
	assert.Nil(t, b.Context())

	st.SetContext(rc)
	b.SetStave(st)
	assert.Same(t, rc, b.Context())
}

func TestDraw(t *testing.T) {
	rc := recorder.New(400, 150)
	st := stave.New(10, 0, 300, nil)
	st.SetContext(rc)

	b := NewBarNote()
	b.SetID("bar1")
	b.SetStave(st)
	b.SetTickContext(NewTickContext(0))
	require.NoError(t, b.Draw())
	assert.True(t, b.IsRendered())

	// no style: no state bracket
	assert.Equal(t, []string{"OpenGroup", "FillRect", "CloseGroup"}, rc.Ops())
	assert.Equal(t, []any{"stavebarline", "bar1"}, rc.Calls[0].Args)
	// tick x + note start + padding
	assert.Equal(t, []any{27., 39.5, 1., 41.}, rc.Calls[1].Args)
	assert.Equal(t, 0, rc.Depth())

	rc.Reset()
	b.SetXShift(5)
	require.NoError(t, b.Draw())
	assert.Equal(t, 32., rc.Calls[1].Args[0])
}

func TestDrawStyle(t *testing.T) {
	rc := recorder.New(400, 150)
	st := stave.New(10, 0, 300, nil)
	st.SetContext(rc)

	b := NewBarNote()
	b.SetStave(st)
	b.SetTickContext(NewTickContext(0))
	b.SetStyle(&Style{FillStyle: "red", LineWidth: 2})
	require.NoError(t, b.Draw())

	assert.Equal(t, []string{
		"Save", "SetFillStyle", "SetLineWidth",
		"OpenGroup", "FillRect", "CloseGroup", "Restore",
	}, rc.Ops())
	assert.Equal(t, 0, rc.Depth())
	assert.Equal(t, 1., rc.Current().LineWidth)
}

func TestDrawKinds(t *testing.T) {
	for kind := barline.Single; kind <= barline.None; kind++ {
		rc := recorder.New(400, 150)
		st := stave.New(10, 0, 300, nil)
		st.SetContext(rc)
		b, err := NewBarNoteOf(kind)
		require.NoError(t, err)
		b.SetStave(st)
		b.SetTickContext(NewTickContext(100))
		require.NoError(t, b.Draw(), kind)
		assert.Equal(t, 1, rc.Count("OpenGroup"))
		if kind == barline.None {
			assert.Empty(t, rc.Fills)
		} else {
			assert.NotEmpty(t, rc.Fills)
		}
	}
}

func TestDrawLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rc := recorder.New(400, 150)
	st := stave.New(10, 0, 300, nil)
	st.SetContext(rc)
	b := NewBarNote()
	b.SetStave(st)
	b.SetTickContext(NewTickContext(0))
	b.SetLogger(logger)
	require.NoError(t, b.Draw())

	out := buf.String()
	assert.Contains(t, out, "rendering bar line")
	assert.Contains(t, out, "kind=single")
	assert.Contains(t, out, "x=27")

	// the default logger discards
	b.SetLogger(nil)
	buf.Reset()
	require.NoError(t, b.Draw())
	assert.Empty(t, buf.String())
	assert.Same(t, b.Logger(), NewBarNote().Logger())
}
