package barline

import (
	"testing"

	"github.com/benoitkugler/okscore/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiveLines mimics a default stave with its top line at y = 40
type fiveLines struct{}

func (fiveLines) TopLineTopY() float64         { return 39.5 }
func (fiveLines) BottomLineBottomY() float64   { return 80.5 }
func (fiveLines) NumLines() int                { return 5 }
func (fiveLines) SpacingBetweenLines() float64 { return 10 }

func TestParseKind(t *testing.T) {
	for k := Single; k <= None; k++ {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	assert.Equal(t, "repeatBoth", RepeatBoth.String())

	_, err := ParseKind("triple")
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = ParseKind("Single") // names are case sensitive
	assert.ErrorIs(t, err, ErrUnknownKind)

	assert.False(t, Kind(42).Valid())
	assert.Equal(t, "<unknown Kind 42>", Kind(42).String())
}

func TestKindText(t *testing.T) {
	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("end")))
	assert.Equal(t, End, k)
	assert.ErrorIs(t, k.UnmarshalText([]byte("fin")), ErrUnknownKind)
	assert.Equal(t, End, k)

	b, err := RepeatBegin.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "repeatBegin", string(b))
	_, err = Kind(9).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func drawKind(t *testing.T, kind Kind) *recorder.Recorder {
	t.Helper()
	rc := recorder.New(200, 100)
	b := New(kind)
	b.SetX(100)
	require.NoError(t, b.Draw(rc, fiveLines{}))
	return rc
}

func TestDrawRects(t *testing.T) {
	for _, test := range []struct {
		kind  Kind
		rects [][4]float64
	}{
		{Single, [][4]float64{{100, 39.5, 1, 41}}},
		{Double, [][4]float64{{97, 39.5, 1, 41}, {100, 39.5, 1, 41}}},
		{End, [][4]float64{{95, 39.5, 1, 41}, {98, 39.5, 3, 41}}},
		{RepeatBegin, [][4]float64{{103, 39.5, 1, 41}, {98, 39.5, 3, 41}}},
		{RepeatEnd, [][4]float64{{95, 39.5, 1, 41}, {98, 39.5, 3, 41}}},
		{RepeatBoth, [][4]float64{{95, 39.5, 1, 41}, {98, 39.5, 3, 41}, {103, 39.5, 1, 41}, {98, 39.5, 3, 41}}},
		{None, nil},
	} {
		rc := drawKind(t, test.kind)
		var rects [][4]float64
		for _, c := range rc.Calls {
			if c.Op == "FillRect" {
				rects = append(rects, [4]float64{c.Args[0].(float64), c.Args[1].(float64), c.Args[2].(float64), c.Args[3].(float64)})
			}
		}
		assert.Equal(t, test.rects, rects, test.kind)

		// always wrapped in a group
		ops := rc.Ops()
		assert.Equal(t, "OpenGroup", ops[0], test.kind)
		assert.Equal(t, "CloseGroup", ops[len(ops)-1], test.kind)
	}
}

func TestRepeatDots(t *testing.T) {
	rc := drawKind(t, RepeatBegin)
	require.Equal(t, 2, rc.Count("Arc"))
	var centers [][2]float64
	for _, c := range rc.Calls {
		if c.Op == "Arc" {
			centers = append(centers, [2]float64{c.Args[0].(float64), c.Args[1].(float64)})
			assert.Equal(t, float64(dotRadius), c.Args[2])
		}
	}
	// dots right of the bar, in the two middle spaces
	assert.Equal(t, [][2]float64{{108, 55.5}, {108, 65.5}}, centers)

	rc = drawKind(t, RepeatEnd)
	for _, c := range rc.Calls {
		if c.Op == "Arc" {
			assert.Equal(t, 92., c.Args[0])
		}
	}

	rc = drawKind(t, RepeatBoth)
	assert.Equal(t, 4, rc.Count("Arc"))
	assert.Equal(t, 4, rc.Count("Fill"))
}

func TestDrawStyle(t *testing.T) {
	rc := recorder.New(200, 100)
	b := New(Single)
	b.SetID("b1")
	b.SetStyle(&Style{FillStyle: "red", ShadowColor: "black", ShadowBlur: 2})
	require.NoError(t, b.Draw(rc, fiveLines{}))

	assert.Equal(t, []string{
		"Save", "SetFillStyle", "SetShadowColor", "SetShadowBlur",
		"OpenGroup", "FillRect", "CloseGroup", "Restore",
	}, rc.Ops())
	assert.Equal(t, []any{"stavebarline", "b1"}, rc.Calls[4].Args)
	assert.Equal(t, 0, rc.Depth())
}

func TestDrawInvalidKind(t *testing.T) {
	rc := recorder.New(200, 100)
	err := New(Kind(12)).Draw(rc, fiveLines{})
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Empty(t, rc.Calls)
}
