package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/okscore/barline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
width = 600
format = "png"
bars = ["double", "repeatBoth", "single"]

[stave]
width = 560
begin = "repeatBegin"
end = "end"

[style]
fill = "#333"
`

func TestRead(t *testing.T) {
	cfg, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 600., cfg.Width)
	assert.Equal(t, 150., cfg.Height) // default
	assert.Equal(t, PNG, cfg.Format)
	assert.Equal(t, 560., cfg.Stave.Width)
	assert.Equal(t, 5, cfg.Stave.Lines)
	assert.Equal(t, barline.RepeatBegin, cfg.Stave.Begin)
	assert.Equal(t, barline.End, cfg.Stave.End)
	assert.Equal(t, []barline.Kind{barline.Double, barline.RepeatBoth, barline.Single}, cfg.Bars)
	assert.Equal(t, "#333", cfg.Style.Fill)
	assert.Equal(t, "black", cfg.Style.Stroke)
}

func TestReadErrors(t *testing.T) {
	for _, input := range []string{
		`widht = 600`,                // unknown key
		`bars = ["triple"]`,          // unknown kind
		`format = "gif"`,             // unsupported
		`width = -1`,                 // negative
		"[style]\nfill = \"#12345\"", // bad color
		"[style]\nfont = \"Arial\"",  // no size
		`width = `,                   // syntax
	} {
		_, err := Read(strings.NewReader(input))
		assert.Error(t, err, input)
	}

	_, err := Read(strings.NewReader(`format = "gif"`))
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Read(strings.NewReader(`bars = ["triple"]`))
	assert.ErrorContains(t, err, "unknown bar line kind")
}

func TestValidateDefault(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Stave.Lines = 0
	cfg.Scale = 0
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "line")
	assert.Contains(t, err.Error(), "scale")
}

func TestWriteRoundTrip(t *testing.T) {
	cfg, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))
	assert.Contains(t, buf.String(), "repeatBoth")

	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	cfg, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, PNG, cfg.Format)

	_, err = Open(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, PDF, FormatFromPath("out/score.PDF"))
	assert.Equal(t, SVG, FormatFromPath("score.svg"))
	assert.Equal(t, Format(""), FormatFromPath("score.gif"))
	assert.Equal(t, Format(""), FormatFromPath("score"))
}
