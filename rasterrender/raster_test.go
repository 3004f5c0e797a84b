package rasterrender

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/benoitkugler/okscore/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgba(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func countPainted(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				n++
			}
		}
	}
	return n
}

func TestFillRect(t *testing.T) {
	rd := New(20, 20)
	rd.SetFillStyle("#ff0000")
	rd.FillRect(5, 5, 10, 10)

	img := rd.Image()
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, rgba(img, 10, 10))
	assert.Equal(t, color.RGBA{}, rgba(img, 2, 2))
	assert.Equal(t, color.RGBA{}, rgba(img, 17, 17))
}

func TestScale(t *testing.T) {
	rd := New(20, 20)
	rd.Scale(2, 2)
	rd.FillRect(5, 5, 2, 2) // covers 10..14 in device space

	img := rd.Image()
	assert.Equal(t, uint8(0xff), rgba(img, 12, 12).A)
	assert.Equal(t, uint8(0), rgba(img, 6, 6).A)
}

func TestClearRect(t *testing.T) {
	rd := New(10, 10)
	rd.FillRect(0, 0, 10, 10)
	rd.SetBackgroundFillStyle("#0000ff")
	rd.ClearRect(0, 0, 5, 10)

	img := rd.Image()
	assert.Equal(t, color.RGBA{0, 0, 0xff, 0xff}, rgba(img, 2, 5))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, rgba(img, 7, 5))

	rd.Clear()
	assert.Equal(t, 0, countPainted(img))
}

func TestStroke(t *testing.T) {
	rd := New(30, 30)
	rd.SetStrokeStyle("#00ff00")
	rd.SetLineWidth(4)
	rd.BeginPath()
	rd.MoveTo(5, 15)
	rd.LineTo(25, 15)
	rd.Stroke()

	img := rd.Image()
	assert.Equal(t, color.RGBA{0, 0xff, 0, 0xff}, rgba(img, 15, 15))
	assert.Equal(t, uint8(0), rgba(img, 15, 5).A)

	// the path is preserved after painting
	assert.NotEmpty(t, rd.Path)
}

func TestStrokeUnknownCap(t *testing.T) {
	rd := New(50, 50)
	rd.SetLineCap(render.LineCap(5))
	assert.Equal(t, render.ButtCap, rd.Current().LineCap)
	rd.BeginPath()
	rd.MoveTo(5, 5)
	rd.LineTo(45, 5)
	assert.NotPanics(t, rd.Stroke)
	assert.Greater(t, countPainted(rd.Image()), 0)
}

func TestArcFill(t *testing.T) {
	rd := New(30, 30)
	rd.BeginPath()
	rd.Arc(15, 15, 5, 0, 2*math.Pi, false)
	rd.Fill()

	img := rd.Image()
	assert.Equal(t, uint8(0xff), rgba(img, 15, 15).A)
	assert.Equal(t, uint8(0), rgba(img, 15, 25).A)
	// roughly the area of the disc, with antialiased edges
	painted := float64(countPainted(img))
	assert.Greater(t, painted, math.Pi*16)
	assert.Less(t, painted, math.Pi*49)
}

func TestSaveRestore(t *testing.T) {
	rd := New(10, 10)
	rd.Save()
	rd.SetFillStyle("#ff0000")
	rd.Restore()
	rd.FillRect(0, 0, 10, 10)
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, rgba(rd.Image(), 5, 5))
}

func TestTextAndPNG(t *testing.T) {
	rd := New(100, 30)
	rd.SetFont("Arial", 14, "")
	rd.FillText("Coda", 5, 20)
	assert.Greater(t, countPainted(rd.Image()), 0)

	rd.Resize(50, 40)
	assert.Equal(t, image.Rect(0, 0, 50, 40), rd.Image().Bounds())
	assert.Equal(t, 0, countPainted(rd.Image()))

	var buf bytes.Buffer
	require.NoError(t, rd.EncodePNG(&buf))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, 40, cfg.Height)
}
