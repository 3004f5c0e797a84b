package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	errBadColor = errors.New("invalid color")
	errBadFont  = errors.New("invalid font")
)

// ParseColor parses a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(r, g, b), rgba(r, g, b, a), 'none', 'transparent'
// and the CSS named colors.
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "none", "transparent":
		return color.NRGBA{}, nil
	case "":
		return nil, fmt.Errorf("%w: empty string", errBadColor)
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	if strings.HasPrefix(v, "#") {
		return parseHexColor(v[1:])
	}
	if strings.HasPrefix(v, "rgb") {
		return parseRGBColor(v)
	}
	return nil, fmt.Errorf("%w: %q", errBadColor, s)
}

func parseHexColor(v string) (color.Color, error) {
	switch len(v) {
	case 3, 4: // expand shorthand
		var b strings.Builder
		for _, r := range v {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		v = b.String()
	case 6, 8:
	default:
		return nil, fmt.Errorf("%w: #%s", errBadColor, v)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: #%s", errBadColor, v)
	}
	if len(v) == 6 {
		n = n<<8 | 0xff
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

func parseRGBColor(v string) (color.Color, error) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open == -1 || end < open {
		return nil, fmt.Errorf("%w: %q", errBadColor, v)
	}
	fields := strings.Split(v[open+1:end], ",")
	if len(fields) != 3 && len(fields) != 4 {
		return nil, fmt.Errorf("%w: %q", errBadColor, v)
	}
	var channels [4]uint8
	channels[3] = 0xff
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if i == 3 { // alpha, as a fraction
			a, err := strconv.ParseFloat(field, 64)
			if err != nil || a < 0 || a > 1 {
				return nil, fmt.Errorf("%w: alpha %q", errBadColor, field)
			}
			channels[3] = uint8(a*255 + 0.5)
			continue
		}
		var (
			f   float64
			err error
		)
		if strings.HasSuffix(field, "%") {
			f, err = strconv.ParseFloat(strings.TrimSuffix(field, "%"), 64)
			f = f * 255 / 100
		} else {
			f, err = strconv.ParseFloat(field, 64)
		}
		if err != nil || f < 0 || f > 255 {
			return nil, fmt.Errorf("%w: channel %q", errBadColor, field)
		}
		channels[i] = uint8(f + 0.5)
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// ColorToHex returns the #rrggbb form of `c`, and its opacity in [0, 1].
func ColorToHex(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}

// LineCap defines how to draw caps on the ends of lines
type LineCap uint8

const (
	ButtCap LineCap = iota // default value
	RoundCap
	SquareCap
)

// Valid returns true for the defined caps.
func (c LineCap) Valid() bool { return c <= SquareCap }

func (c LineCap) String() string {
	switch c {
	case ButtCap:
		return "butt"
	case RoundCap:
		return "round"
	case SquareCap:
		return "square"
	default:
		return "<unknown LineCap>"
	}
}

// ParseLineCap accepts the canvas names 'butt', 'round' and 'square'.
func ParseLineCap(s string) (LineCap, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butt":
		return ButtCap, nil
	case "round":
		return RoundCap, nil
	case "square":
		return SquareCap, nil
	default:
		return 0, fmt.Errorf("invalid line cap %q", s)
	}
}

// Font describes the font used for text operations.
// Size is expressed in points.
type Font struct {
	Family string
	Size   float64
	Weight string // "normal", "bold", or a numeric CSS weight
	Style  string // "normal" or "italic"
}

// DefaultFont is the font of a fresh context.
var DefaultFont = Font{Family: "Arial", Size: 10, Weight: "normal", Style: "normal"}

// IsBold returns true for 'bold', 'bolder' and numeric weights >= 600.
func (f Font) IsBold() bool {
	switch f.Weight {
	case "bold", "bolder":
		return true
	}
	w, err := strconv.Atoi(f.Weight)
	return err == nil && w >= 600
}

// IsItalic returns true for 'italic' and 'oblique' styles.
func (f Font) IsItalic() bool {
	return f.Style == "italic" || f.Style == "oblique"
}

// String returns the CSS shorthand of the font.
func (f Font) String() string {
	return fmt.Sprintf("%s %s %spt %s", f.Style, f.Weight, FormatFloat(f.Size), f.Family)
}

// ParseFont parses a CSS font shorthand:
//
//	[style] [weight] size[pt|px] family
//
// px sizes are converted to points.
func ParseFont(s string) (Font, error) {
	fields := strings.Fields(s)
	out := Font{Weight: "normal", Style: "normal"}
	sizeIndex := -1
	for i, field := range fields {
		switch field {
		case "normal":
			continue
		case "italic", "oblique":
			out.Style = field
			continue
		case "bold", "bolder", "lighter":
			out.Weight = field
			continue
		}
		if size, ok := parseFontSize(field); ok {
			out.Size = size
			sizeIndex = i
			break
		}
		if _, err := strconv.Atoi(field); err == nil {
			out.Weight = field
			continue
		}
		return Font{}, fmt.Errorf("%w: unexpected %q in %q", errBadFont, field, s)
	}
	if sizeIndex == -1 {
		return Font{}, fmt.Errorf("%w: missing size in %q", errBadFont, s)
	}
	out.Family = strings.Trim(strings.Join(fields[sizeIndex+1:], " "), `"'`)
	if out.Family == "" {
		return Font{}, fmt.Errorf("%w: missing family in %q", errBadFont, s)
	}
	return out, nil
}

func parseFontSize(s string) (float64, bool) {
	factor := 1.
	switch {
	case strings.HasSuffix(s, "pt"):
		s = strings.TrimSuffix(s, "pt")
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
		factor = 0.75
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f * factor, true
}
