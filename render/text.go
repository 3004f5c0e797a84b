package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// the Go fonts stand in for every family requested,
// only the weight and style are honored
var goFonts = sync.OnceValues(func() ([4]*opentype.Font, error) {
	var out [4]*opentype.Font
	for i, ttf := range [4][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return out, fmt.Errorf("loading Go fonts: %w", err)
		}
		out[i] = f
	}
	return out, nil
})

type faceKey struct {
	variant int
	size    float64
}

// TextMeasurer resolves fonts to faces and measures strings.
// Faces are cached, so a TextMeasurer should be reused.
// The zero value is ready to use.
type TextMeasurer struct {
	faces map[faceKey]font.Face
}

// Face returns the face used for `f`.
func (tm *TextMeasurer) Face(f Font) (font.Face, error) {
	variant := 0
	if f.IsBold() {
		variant |= 1
	}
	if f.IsItalic() {
		variant |= 2
	}
	key := faceKey{variant: variant, size: f.Size}
	if face, ok := tm.faces[key]; ok {
		return face, nil
	}
	fonts, err := goFonts()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fonts[variant], &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	if tm.faces == nil {
		tm.faces = make(map[faceKey]font.Face)
	}
	tm.faces[key] = face
	return face, nil
}

// Measure returns the advance width of `text` and the line height of `f`.
func (tm *TextMeasurer) Measure(f Font, text string) (TextMetrics, error) {
	face, err := tm.Face(f)
	if err != nil {
		return TextMetrics{}, err
	}
	advance := font.MeasureString(face, text)
	metrics := face.Metrics()
	return TextMetrics{
		Width:  float64(advance) / 64,
		Height: float64(metrics.Ascent+metrics.Descent) / 64,
	}, nil
}
