package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/layout"
	"github.com/jonathan/portfolio/internal/observability"
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/resume"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/jonathan/portfolio/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the profile and project catalog",
	Long: "Checks both data files against their JSON schemas, renders the résumé in memory " +
		"and verifies page count and layout. With --compile-tex the LaTeX export is also compiled.",
	RunE: runValidate,
}

var (
	validateProfile    string
	validateProjects   string
	validateMaxPages   int
	validateCompileTeX bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateProfile, "profile", "p", "", "Path to profile file (JSON or YAML)")
	validateCmd.Flags().StringVar(&validateProjects, "projects", "", "Path to project catalog file")
	validateCmd.Flags().IntVar(&validateMaxPages, "max-pages", 0, "Maximum page count (0 disables)")
	validateCmd.Flags().BoolVar(&validateCompileTeX, "compile-tex", false, "Also compile the LaTeX export with pdflatex")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(os.Getenv)
	if err != nil {
		return err
	}
	flagString(cmd, "profile", validateProfile, &cfg.Profile)
	flagString(cmd, "projects", validateProjects, &cfg.Projects)
	flagInt(cmd, "max-pages", validateMaxPages, &cfg.MaxPages)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return validateData(ctx, cfg, validateCompileTeX, cmd.OutOrStdout())
}

// validateData runs every check and prints the violations found.
// It fails on the first unreadable file and, after all checks, on any error-severity violation.
func validateData(ctx context.Context, cfg config.Config, compileTeX bool, out io.Writer) error {
	p, err := loadProfile(cfg.Profile)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "✓ Profile %s is valid\n", cfg.Profile)

	catalog, err := loadCatalog(cfg.Projects)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "✓ Project catalog has %d project(s)\n", len(catalog.All()))

	gen := resume.NewGenerator(nil, resume.Options{})
	art, err := gen.Generate(p)
	if err != nil {
		return err
	}
	violations, err := validation.ValidateArtifact(art.Data, art.Result, layout.DefaultGeometry(), cfg.MaxPages)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "✓ Rendered %d page(s), %d bytes\n", art.Pages, len(art.Data))

	if compileTeX {
		v, err := checkLaTeX(ctx, p, cfg.Template, cfg.MaxPages, out)
		if err != nil {
			return err
		}
		if v != nil {
			violations.Violations = append(violations.Violations, *v)
		}
	}

	printer := observability.NewPrinter(out)
	if cfg.Verbose {
		printer.PrintLayout(art.Result)
	}
	printer.PrintViolations(violations)

	if validation.HasErrors(violations) {
		return fmt.Errorf("validation failed with %d violation(s)", len(violations.Violations))
	}
	return nil
}

// checkLaTeX compiles the LaTeX export and applies the page limit to the result.
// A missing pdflatex is reported and skipped.
func checkLaTeX(ctx context.Context, p *types.Profile, templatePath string, maxPages int, out io.Writer) (*types.Violation, error) {
	tex, err := rendering.RenderLaTeX(p, templatePath)
	if err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "portfolio-validate-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	texPath := filepath.Join(workDir, "resume.tex")
	if err := os.WriteFile(texPath, []byte(tex), 0644); err != nil {
		return nil, fmt.Errorf("failed to write LaTeX source: %w", err)
	}

	pdfPath, _, err := validation.CompileLaTeX(ctx, texPath, workDir)
	if err != nil {
		if validation.IsLaTeXMissing(err) {
			_, _ = fmt.Fprintln(out, "- pdflatex not found, skipping LaTeX compilation")
			return nil, nil
		}
		return nil, err
	}

	pages, err := validation.CountPDFPagesFile(pdfPath)
	if err != nil {
		return nil, err
	}
	_, _ = fmt.Fprintf(out, "✓ LaTeX export compiled to %d page(s)\n", pages)
	return validation.CheckPageLimit(pages, maxPages), nil
}
