package main

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio/internal/config"
)

func TestValidateData_Examples(t *testing.T) {
	cfg := config.Defaults()
	cfg.Profile = exampleProfile
	cfg.Projects = exampleProjects

	var out bytes.Buffer
	require.NoError(t, validateData(context.Background(), cfg, false, &out))

	assert.Contains(t, out.String(), "Profile "+exampleProfile+" is valid")
	assert.Contains(t, out.String(), "3 project(s)")
	assert.Contains(t, out.String(), "NO VIOLATIONS FOUND")
}

func TestValidateData_BadCatalog(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Profile = exampleProfile
	cfg.Projects = writeFile(t, dir, "projects.json", `{"projects": [{"id": 1, "title": "No categories"}]}`)

	err := validateData(context.Background(), cfg, false, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projects")
}

func TestValidateData_DuplicateProjectIDs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Profile = exampleProfile
	cfg.Projects = writeFile(t, dir, "projects.json", `{"projects": [
		{"id": 1, "title": "A", "categories": ["web-dev"]},
		{"id": 1, "title": "B", "categories": ["ai"]}
	]}`)

	err := validateData(context.Background(), cfg, false, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestValidateData_CompileTeX(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		t.Skip("pdflatex not installed")
	}
	cfg := config.Defaults()
	cfg.Profile = exampleProfile
	cfg.Projects = exampleProjects
	cfg.MaxPages = 0

	var out bytes.Buffer
	require.NoError(t, validateData(context.Background(), cfg, true, &out))
	assert.Contains(t, out.String(), "LaTeX export compiled")
}

func TestValidateCommand_MissingProfile(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate", "--profile", "does-not-exist.json")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "profile file not found")
}
