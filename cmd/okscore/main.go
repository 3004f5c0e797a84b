// Command okscore renders a stave and its bar lines,
// described by a TOML file, to SVG, PNG or PDF.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/okscore/barline"
	"github.com/benoitkugler/okscore/config"
	"github.com/benoitkugler/okscore/note"
	"github.com/benoitkugler/okscore/pdfrender"
	"github.com/benoitkugler/okscore/rasterrender"
	"github.com/benoitkugler/okscore/render"
	"github.com/benoitkugler/okscore/stave"
	"github.com/benoitkugler/okscore/svgrender"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "okscore: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("okscore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  string
		outPath     string
		format      string
		verbose     bool
		printConfig bool
	)
	fs.StringVar(&configPath, "config", "", "TOML file describing the score (default values if empty)")
	fs.StringVar(&outPath, "o", "", "output file (default score.<format>)")
	fs.StringVar(&format, "format", "", "output format: svg, png or pdf (default from the output extension, then the configuration)")
	fs.BoolVar(&verbose, "v", false, "log the rendering steps")
	fs.BoolVar(&printConfig, "print-config", false, "print the effective configuration and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: okscore [options]")
		fmt.Fprintln(stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Open(configPath)
		if err != nil {
			return err
		}
	}
	switch {
	case format != "":
		cfg.Format = config.Format(format)
	case outPath != "":
		if f := config.FormatFromPath(outPath); f != "" {
			cfg.Format = f
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if printConfig {
		return cfg.Write(stdout)
	}

	if outPath == "" {
		outPath = "score." + string(cfg.Format)
	}

	encode, err := renderScore(cfg, logger)
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("score written", "path", outPath, "format", cfg.Format)
	return nil
}

const titleBaseline = 20

type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// newBackend returns the rendering context for `format`
// and the function writing its output.
func newBackend(format config.Format, width, height float64) (render.Context, func(io.Writer) error) {
	switch format {
	case config.PNG:
		rd := rasterrender.New(width, height)
		return rd, rd.EncodePNG
	case config.PDF:
		rd := pdfrender.New(width, height)
		return rd, rd.Output
	default:
		rd := svgrender.New(width, height)
		return rd, func(w io.Writer) error {
			_, err := rd.WriteTo(w)
			return err
		}
	}
}

// renderScore draws the score described by `cfg` and returns
// the function writing the result.
func renderScore(cfg config.Config, logger *slog.Logger) (func(io.Writer) error, error) {
	ctx, encode := newBackend(cfg.Format, cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	if ls, ok := ctx.(loggerSetter); ok {
		ls.SetLogger(logger)
	}
	ctx.Scale(cfg.Scale, cfg.Scale)

	ctx.SetBackgroundFillStyle(cfg.Style.Background)
	ctx.ClearRect(0, 0, cfg.Width, cfg.Height)
	ctx.SetFillStyle(cfg.Style.Fill)
	ctx.SetStrokeStyle(cfg.Style.Stroke)
	if err := ctx.SetRawFont(cfg.Style.Font); err != nil {
		return nil, err
	}

	if cfg.Title != "" {
		m := ctx.MeasureText(cfg.Title)
		ctx.FillText(cfg.Title, (cfg.Width-m.Width)/2, titleBaseline)
	}

	st := stave.New(cfg.Stave.X, cfg.Stave.Y, cfg.Stave.Width, &stave.Options{
		SpacingBetweenLines: cfg.Stave.Spacing,
		NumLines:            cfg.Stave.Lines,
		SpaceAboveStaffLn:   stave.DefaultOptions.SpaceAboveStaffLn,
		SpaceBelowStaffLn:   stave.DefaultOptions.SpaceBelowStaffLn,
		LineColor:           cfg.Stave.Color,
		BeginBar:            cfg.Stave.Begin,
		EndBar:              cfg.Stave.End,
	})
	st.SetContext(ctx)
	if err := st.Draw(); err != nil {
		return nil, err
	}

	// invisible bars at both ends keep the
	// configured ones away from the stave bars
	kinds := append([]barline.Kind{barline.None}, cfg.Bars...)
	kinds = append(kinds, barline.None)
	notes := make([]*note.BarNote, len(kinds))
	tickables := make([]note.Tickable, len(kinds))
	for i, kind := range kinds {
		b, err := note.NewBarNoteOf(kind)
		if err != nil {
			return nil, err
		}
		b.SetLogger(logger)
		notes[i], tickables[i] = b, b
	}
	if err := note.Justify(st, tickables...); err != nil {
		return nil, err
	}
	for _, b := range notes {
		if err := b.Draw(); err != nil {
			return nil, err
		}
	}
	logger.Debug("score drawn", "bars", len(cfg.Bars))
	return encode, nil
}
