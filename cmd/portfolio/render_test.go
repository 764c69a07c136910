package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/db"
)

func testRenderConfig(t *testing.T, formats ...string) config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Profile = exampleProfile
	cfg.OutputDir = t.TempDir()
	cfg.Formats = formats
	cfg.MaxPages = 0
	cfg.CreationDate = "2024-01-01T00:00:00Z"
	return cfg
}

func TestRenderExports_AllFormats(t *testing.T) {
	cfg := testRenderConfig(t, config.FormatMarkdown, config.FormatLaTeX, config.FormatPDF)

	var out bytes.Buffer
	outputs, err := renderExports(context.Background(), cfg, &out)
	require.NoError(t, err)
	require.Len(t, outputs, 3)

	assert.Equal(t, config.FormatPDF, outputs[0].format)
	assert.Equal(t, config.FormatLaTeX, outputs[1].format)
	assert.Equal(t, config.FormatMarkdown, outputs[2].format)

	pdf, err := os.ReadFile(filepath.Join(cfg.OutputDir, "Alex_Rivera_Resume.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.Positive(t, outputs[0].pages)

	tex, err := os.ReadFile(filepath.Join(cfg.OutputDir, "Alex_Rivera_Resume.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(tex), "ALEX RIVERA")

	md, err := os.ReadFile(filepath.Join(cfg.OutputDir, "Alex_Rivera_Resume.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# ALEX RIVERA")
}

func TestRenderExports_Deterministic(t *testing.T) {
	first := testRenderConfig(t, config.FormatPDF)
	second := first
	second.OutputDir = t.TempDir()

	_, err := renderExports(context.Background(), first, &bytes.Buffer{})
	require.NoError(t, err)
	_, err = renderExports(context.Background(), second, &bytes.Buffer{})
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(first.OutputDir, "Alex_Rivera_Resume.pdf"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second.OutputDir, "Alex_Rivera_Resume.pdf"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderExports_CustomFileName(t *testing.T) {
	cfg := testRenderConfig(t, config.FormatPDF, config.FormatMarkdown)
	cfg.FileName = "cv.pdf"

	_, err := renderExports(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(cfg.OutputDir, "cv.pdf"))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "cv.md"))
}

func TestRenderExports_PageLimitExceeded(t *testing.T) {
	cfg := testRenderConfig(t, config.FormatPDF)
	dir := t.TempDir()

	// Enough bullets to push the experience section past one page
	var bullets []string
	for i := 0; i < 60; i++ {
		bullets = append(bullets, `"Delivered a measurable improvement to a production system used by thousands of people every day"`)
	}
	cfg.Profile = writeFile(t, dir, "long.json", `{
  "name": "Long Profile",
  "contact": {"email": "long@example.com"},
  "experience": [{"title": "Engineer", "organization": "Acme", "dates": "2020 - 2024",
    "responsibilities": [`+strings.Join(bullets, ",")+`]}]
}`)
	cfg.MaxPages = 1

	var out bytes.Buffer
	_, err := renderExports(context.Background(), cfg, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout constraint")
	assert.Contains(t, out.String(), "page_overflow")
}

func TestRenderExports_OversizedResponsibility(t *testing.T) {
	cfg := testRenderConfig(t, config.FormatPDF)
	cfg.Profile = writeFile(t, t.TempDir(), "oversized.json", `{
  "name": "Long Bullet",
  "contact": {"email": "long@example.com"},
  "experience": [{"title": "Engineer", "organization": "Acme", "dates": "2020 - 2024",
    "responsibilities": ["`+strings.Repeat("word ", 2000)+`"]}]
}`)
	cfg.Verbose = true

	var out bytes.Buffer
	outputs, err := renderExports(context.Background(), cfg, &out)
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.FileExists(t, outputs[0].path)
	assert.Contains(t, out.String(), "bottom_margin")
}

func TestRenderExports_Verbose(t *testing.T) {
	cfg := testRenderConfig(t, config.FormatPDF)
	cfg.Verbose = true

	var out bytes.Buffer
	_, err := renderExports(context.Background(), cfg, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Alex Rivera")
	assert.Contains(t, out.String(), "Alex_Rivera_Resume.pdf")
}

func TestRecordRenders_SQLite(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "renders.db")
	outputs := []renderOutput{
		{format: config.FormatPDF, path: "/tmp/out/Alex_Rivera_Resume.pdf", size: 1234, pages: 2},
		{format: config.FormatMarkdown, path: "/tmp/out/Alex_Rivera_Resume.md", size: 321},
	}

	ctx := context.Background()
	require.NoError(t, recordRenders(ctx, url, outputs))

	store, err := db.Connect(ctx, url)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	renders, err := store.ListRenders(ctx, 10)
	require.NoError(t, err)
	require.Len(t, renders, 2)
	for _, r := range renders {
		assert.Equal(t, "cli", r.Source)
	}
}

func TestSortOutputs(t *testing.T) {
	outputs := []renderOutput{
		{format: config.FormatMarkdown, path: "a.md"},
		{format: config.FormatPDF, path: "a.pdf"},
		{format: config.FormatLaTeX, path: "a.tex"},
		{format: config.FormatPDF, path: "b.pdf"},
	}
	sortOutputs(outputs)

	var paths []string
	for _, o := range outputs {
		paths = append(paths, o.path)
	}
	assert.Equal(t, []string{"a.pdf", "b.pdf", "a.tex", "a.md"}, paths)
}

func TestNormalizeFormats(t *testing.T) {
	assert.Equal(t, []string{"pdf", "md"}, normalizeFormats([]string{" PDF", ".md", "pdf", ""}))
	assert.Nil(t, normalizeFormats(nil))
}

func TestRenderCommand_UnknownFormat(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "render", "--profile", exampleProfile, "--format", "docx", "--out-dir", t.TempDir())
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown format")
}
