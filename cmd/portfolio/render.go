package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/db"
	"github.com/jonathan/portfolio/internal/layout"
	"github.com/jonathan/portfolio/internal/observability"
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/resume"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/jonathan/portfolio/internal/validation"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the résumé to PDF, LaTeX and Markdown",
	Long:  "Lays out the profile on A4 pages and writes the requested export formats to the output directory.",
	RunE:  runRender,
}

var (
	renderProfile      string
	renderOutDir       string
	renderFormats      []string
	renderTemplate     string
	renderFileName     string
	renderMaxPages     int
	renderCreationDate string
	renderRecord       bool
	renderDatabaseURL  string
)

func init() {
	renderCmd.Flags().StringVarP(&renderProfile, "profile", "p", "", "Path to profile file (JSON or YAML)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "o", "", "Directory to write exports to")
	renderCmd.Flags().StringSliceVarP(&renderFormats, "format", "f", nil, "Export formats: pdf, tex, md")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "LaTeX template override")
	renderCmd.Flags().StringVar(&renderFileName, "file-name", "", "PDF file name (default <Name>_Resume.pdf)")
	renderCmd.Flags().IntVar(&renderMaxPages, "max-pages", 0, "Fail when the PDF has more pages (0 disables)")
	renderCmd.Flags().StringVar(&renderCreationDate, "creation-date", "", "RFC 3339 timestamp to pin PDF metadata")
	renderCmd.Flags().BoolVar(&renderRecord, "record", false, "Record the renders in the database")
	renderCmd.Flags().StringVar(&renderDatabaseURL, "db-url", "", "Database URL for --record")

	rootCmd.AddCommand(renderCmd)
}

// renderOutput is one written export
type renderOutput struct {
	format string
	path   string
	size   int
	pages  int
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(os.Getenv)
	if err != nil {
		return err
	}
	flagString(cmd, "profile", renderProfile, &cfg.Profile)
	flagString(cmd, "out-dir", renderOutDir, &cfg.OutputDir)
	flagString(cmd, "template", renderTemplate, &cfg.Template)
	flagString(cmd, "file-name", renderFileName, &cfg.FileName)
	flagString(cmd, "creation-date", renderCreationDate, &cfg.CreationDate)
	flagString(cmd, "db-url", renderDatabaseURL, &cfg.DatabaseURL)
	flagInt(cmd, "max-pages", renderMaxPages, &cfg.MaxPages)
	if cmd.Flags().Changed("format") {
		cfg.Formats = normalizeFormats(renderFormats)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outputs, err := renderExports(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	for _, o := range outputs {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", o.path, o.size)
	}

	if renderRecord {
		if err := recordRenders(ctx, cfg.DatabaseURL, outputs); err != nil {
			return err
		}
	}
	return nil
}

// renderExports writes every configured format concurrently. Each format
// builds its own document, so the goroutines share only the read-only profile.
func renderExports(ctx context.Context, cfg config.Config, out io.Writer) ([]renderOutput, error) {
	p, err := loadProfile(cfg.Profile)
	if err != nil {
		return nil, err
	}
	created, err := cfg.CreationTime()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	pdfName := cfg.FileName
	if pdfName == "" {
		pdfName = resume.FileNameFor(p.Name)
	}
	base := strings.TrimSuffix(pdfName, filepath.Ext(pdfName))

	printer := observability.NewPrinter(out)
	if cfg.Verbose {
		printer.PrintProfile(p)
	}

	var (
		mu         sync.Mutex
		outputs    []renderOutput
		violations *types.Violations
		result     *layout.Result
	)
	add := func(o renderOutput) {
		mu.Lock()
		defer mu.Unlock()
		outputs = append(outputs, o)
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, format := range cfg.Formats {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			switch format {
			case config.FormatPDF:
				capability := rendering.NewCapability(nil)
				if err := capability.Init(); err != nil {
					return fmt.Errorf("PDF generation unavailable: %w", err)
				}
				gen := resume.NewGenerator(capability, resume.Options{FileName: pdfName, CreationDate: created})
				art, err := gen.Generate(p)
				if err != nil {
					return err
				}
				path, err := art.Save(cfg.OutputDir)
				if err != nil {
					return err
				}
				v, err := validation.ValidateArtifact(art.Data, art.Result, layout.DefaultGeometry(), cfg.MaxPages)
				if err != nil {
					return err
				}
				mu.Lock()
				violations, result = v, &art.Result
				mu.Unlock()
				add(renderOutput{format: format, path: path, size: len(art.Data), pages: art.Pages})

			case config.FormatLaTeX:
				tex, err := rendering.RenderLaTeX(p, cfg.Template)
				if err != nil {
					return err
				}
				path := filepath.Join(cfg.OutputDir, base+".tex")
				if err := os.WriteFile(path, []byte(tex), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				add(renderOutput{format: format, path: path, size: len(tex)})

			case config.FormatMarkdown:
				var sb strings.Builder
				if err := rendering.RenderMarkdown(&sb, p); err != nil {
					return err
				}
				path := filepath.Join(cfg.OutputDir, base+".md")
				if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				add(renderOutput{format: format, path: path, size: sb.Len()})

			default:
				return fmt.Errorf("unknown format %q", format)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortOutputs(outputs)

	if cfg.Verbose {
		if result != nil {
			printer.PrintLayout(*result)
		}
		files := make(map[string]int, len(outputs))
		for _, o := range outputs {
			files[filepath.Base(o.path)] = o.size
		}
		printer.PrintFiles(files)
	}
	if violations != nil && (cfg.Verbose || validation.HasErrors(violations)) {
		printer.PrintViolations(violations)
	}
	if validation.HasErrors(violations) {
		return outputs, fmt.Errorf("résumé violates %d layout constraint(s)", len(violations.Violations))
	}
	return outputs, nil
}

// recordRenders stores one RenderRecord per written export
func recordRenders(ctx context.Context, databaseURL string, outputs []renderOutput) error {
	store, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = store.Close() }()

	for _, o := range outputs {
		rec := &types.RenderRecord{
			Format:    o.format,
			FileName:  filepath.Base(o.path),
			Pages:     o.pages,
			SizeBytes: o.size,
			Source:    "cli",
		}
		if err := store.RecordRender(ctx, rec); err != nil {
			return fmt.Errorf("failed to record render: %w", err)
		}
	}
	return nil
}

// normalizeFormats lowercases, trims and de-duplicates, keeping first-seen order
func normalizeFormats(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	var out []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(f, ".")))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func sortOutputs(outputs []renderOutput) {
	order := map[string]int{config.FormatPDF: 0, config.FormatLaTeX: 1, config.FormatMarkdown: 2}
	slices.SortStableFunc(outputs, func(a, b renderOutput) int {
		return cmp.Compare(order[a.format], order[b.format])
	})
}
