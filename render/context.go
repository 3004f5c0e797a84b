// Defines the drawing capabilities a score element needs,
// independently of the output format.
// Concrete backends live in okscore/svgrender, okscore/rasterrender
// and okscore/pdfrender; okscore/recorder is a headless one.
package render

// TextMetrics is returned by MeasureText. Only Width is guaranteed:
// Height is zero when the backend has no reliable value.
type TextMetrics struct {
	Width, Height float64
}

// Group identifies a logical group of drawing operations,
// as opened by OpenGroup.
// Backends without structured output simply return the
// class and id they were given.
type Group struct {
	Class, ID string
}

// Context knows how to do the actual draw operations,
// but doesn't need any music knowledge.
// Coordinates are in user space: the current transform
// (see Scale) is applied by the backend.
type Context interface {
	// Clear erases the whole surface.
	Clear()

	// SetFont selects the font used by FillText and MeasureText.
	// An empty weight means normal.
	SetFont(family string, size float64, weight string)
	// SetRawFont selects a font from a CSS font shorthand,
	// like "italic bold 10pt Arial".
	SetRawFont(font string) error

	SetFillStyle(style string)
	// SetBackgroundFillStyle sets the color used by ClearRect.
	SetBackgroundFillStyle(style string)
	SetStrokeStyle(style string)
	SetShadowColor(color string)
	SetShadowBlur(blur float64)
	SetLineWidth(width float64)
	SetLineCap(cap LineCap)
	// SetLineDash sets the dash pattern (nil or empty for plain lines)
	SetLineDash(dash []float64)

	// Scale multiplies the current transform.
	Scale(x, y float64)
	// Resize changes the size of the drawing surface.
	Resize(width, height float64)

	FillRect(x, y, width, height float64)
	// ClearRect paints the rectangle with the background fill style.
	ClearRect(x, y, width, height float64)

	// BeginPath discards the current path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(x1, y1, x2, y2, x, y float64)
	QuadraticCurveTo(x1, y1, x, y float64)
	// Arc adds a circular arc centered on (x, y), going from startAngle to
	// endAngle (in radians, clockwise unless antiClockwise is true).
	Arc(x, y, radius, startAngle, endAngle float64, antiClockwise bool)
	ClosePath()

	// Glow is kept for compatibility and does nothing on the
	// provided backends.
	Glow()
	// Fill fills the current path with the fill style.
	// The path is preserved.
	Fill()
	// Stroke strokes the current path with the stroke style.
	// The path is preserved.
	Stroke()

	FillText(text string, x, y float64)
	MeasureText(text string) TextMetrics

	// Save pushes the current drawing state.
	Save()
	// Restore reverts the changes made since the matching Save.
	// An unmatched Restore is ignored.
	Restore()

	OpenGroup(class, id string) Group
	CloseGroup()
}
