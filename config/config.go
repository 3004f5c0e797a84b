// Implements the TOML description of a rendering job:
// the output surface, the stave and the bars to draw on it.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/okscore/barline"
	"github.com/benoitkugler/okscore/render"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned when a configuration is
// well formed but not usable.
var ErrInvalid = errors.New("invalid configuration")

// Format is an output format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
	PDF Format = "pdf"
)

func (f Format) Valid() bool { return f == SVG || f == PNG || f == PDF }

// FormatFromPath returns the format matching the extension of `path`,
// or an empty string.
func FormatFromPath(path string) Format {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	if f := Format(strings.ToLower(path[i+1:])); f.Valid() {
		return f
	}
	return ""
}

type Stave struct {
	X       float64      `toml:"x"`
	Y       float64      `toml:"y"`
	Width   float64      `toml:"width"`
	Spacing float64      `toml:"spacing"`
	Lines   int          `toml:"lines"`
	Color   string       `toml:"color"`
	Begin   barline.Kind `toml:"begin"`
	End     barline.Kind `toml:"end"`
}

type Style struct {
	Font       string `toml:"font"`
	Fill       string `toml:"fill"`
	Stroke     string `toml:"stroke"`
	Background string `toml:"background"`
}

// Config describes one rendering job.
type Config struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// Scale is applied to the whole drawing.
	Scale  float64 `toml:"scale"`
	Format Format  `toml:"format"`
	// Title is centered above the stave, if not empty.
	Title string `toml:"title"`

	Stave Stave `toml:"stave"`
	Style Style `toml:"style"`

	// Bars are drawn between the begin and end bars of the stave.
	Bars []barline.Kind `toml:"bars"`
}

// Default returns the configuration used for missing keys.
func Default() Config {
	return Config{
		Width:  500,
		Height: 150,
		Scale:  1,
		Format: SVG,
		Stave: Stave{
			X:       10,
			Y:       0,
			Width:   480,
			Spacing: 10,
			Lines:   5,
			Color:   "#999999",
			Begin:   barline.Single,
			End:     barline.End,
		},
		Style: Style{
			Font:       "10pt Arial",
			Fill:       "black",
			Stroke:     "black",
			Background: "white",
		},
	}
}

// Read decodes a configuration from `r`, starting from Default.
// Unknown keys are rejected. The result is validated.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("reading configuration: %s", strict.String())
		}
		return Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Open reads the configuration stored in `filename`.
func Open(filename string) (Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}

// Write encodes the configuration as TOML.
func (cfg Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks the values which can't be used to render.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Width <= 0 || cfg.Height <= 0 {
		errs = append(errs, fmt.Errorf("surface size must be positive, got %gx%g", cfg.Width, cfg.Height))
	}
	if cfg.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %g", cfg.Scale))
	}
	if !cfg.Format.Valid() {
		errs = append(errs, fmt.Errorf("unsupported format %q", cfg.Format))
	}
	if cfg.Stave.Width <= 0 {
		errs = append(errs, fmt.Errorf("stave width must be positive, got %g", cfg.Stave.Width))
	}
	if cfg.Stave.Lines <= 0 {
		errs = append(errs, fmt.Errorf("stave must have at least one line, got %d", cfg.Stave.Lines))
	}
	if cfg.Stave.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("stave spacing must be positive, got %g", cfg.Stave.Spacing))
	}
	for _, c := range []string{cfg.Stave.Color, cfg.Style.Fill, cfg.Style.Stroke, cfg.Style.Background} {
		if _, err := render.ParseColor(c); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := render.ParseFont(cfg.Style.Font); err != nil {
		errs = append(errs, err)
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
