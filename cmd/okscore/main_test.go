package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/okscore/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const job = `
title = "Etude"
bars = ["single", "double", "repeatBoth"]

[stave]
begin = "repeatBegin"
end = "end"
`

func writeJob(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.toml")
	require.NoError(t, os.WriteFile(path, []byte(job), 0o644))
	return path
}

func TestRunFormats(t *testing.T) {
	jobPath := writeJob(t)
	for _, test := range []struct {
		file   string
		header string
	}{
		{"score.svg", "<svg"},
		{"score.png", "\x89PNG"},
		{"score.pdf", "%PDF-"},
	} {
		out := filepath.Join(t.TempDir(), test.file)
		var stdout, stderr bytes.Buffer
		require.NoError(t, run([]string{"-config", jobPath, "-o", out}, &stdout, &stderr), test.file)

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(content[:min(len(content), 64)]), test.header, test.file)
		assert.Contains(t, stderr.String(), "score written")
	}
}

func TestRunFormatFlag(t *testing.T) {
	out := filepath.Join(t.TempDir(), "score.out")
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-format", "svg", "-o", out, "-v"}, &stdout, &stderr))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "vf-stavebarline")
	assert.Contains(t, stderr.String(), "rendering bar line")
}

func TestRunSVGContent(t *testing.T) {
	out := filepath.Join(t.TempDir(), "score.svg")
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", writeJob(t), "-o", out}, &stdout, &stderr))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(content)
	assert.Contains(t, svg, "Etude")
	// stave bars, 3 configured bars and the 2 invisible ones
	assert.Equal(t, 7, strings.Count(svg, `class="vf-stavebarline"`))
}

func TestRunPrintConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-config", writeJob(t), "-print-config"}, &stdout, &stderr))

	cfg, err := config.Read(&stdout)
	require.NoError(t, err)
	assert.Equal(t, "Etude", cfg.Title)
	assert.Len(t, cfg.Bars, 3)
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.ErrorIs(t, run([]string{"-format", "gif"}, &stdout, &stderr), config.ErrInvalid)
	assert.Error(t, run([]string{"-unknown"}, &stdout, &stderr))
	assert.ErrorIs(t, run([]string{"-config", filepath.Join(t.TempDir(), "none.toml")}, &stdout, &stderr), os.ErrNotExist)

	// too many bars for the stave
	path := filepath.Join(t.TempDir(), "job.toml")
	require.NoError(t, os.WriteFile(path, []byte("bars = [\"end\", \"end\", \"end\"]\n[stave]\nwidth = 40"), 0o644))
	assert.Error(t, run([]string{"-config", path, "-o", filepath.Join(t.TempDir(), "out.svg")}, &stdout, &stderr))
}
