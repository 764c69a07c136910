package validation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// CompilationTimeout bounds one pdflatex run
const CompilationTimeout = 30 * time.Second

// IsLaTeXMissing reports whether err means pdflatex is not installed
func IsLaTeXMissing(err error) bool {
	var ce *CompilationError
	return errors.As(err, &ce) && errors.Is(ce.Cause, exec.ErrNotFound)
}

// CompileLaTeX builds texPath with pdflatex inside workDir and returns the PDF path.
// An empty workDir uses a new temporary directory that the caller should remove.
func CompileLaTeX(ctx context.Context, texPath, workDir string) (pdfPath string, logOutput string, err error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return "", "", &CompilationError{
			Message: "pdflatex not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	if workDir == "" {
		workDir, err = os.MkdirTemp("", "portfolio-latex-*")
		if err != nil {
			return "", "", &CompilationError{Message: "failed to create temporary working directory", Cause: err}
		}
	} else if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", "", &CompilationError{
			Message: fmt.Sprintf("failed to create working directory: %s", workDir),
			Cause:   err,
		}
	}

	texBaseName := filepath.Base(texPath)
	workTexPath := filepath.Join(workDir, texBaseName)
	if texPath != workTexPath {
		content, err := os.ReadFile(texPath)
		if err != nil {
			return "", "", &Error{Message: fmt.Sprintf("failed to read LaTeX file: %s", texPath), Cause: err}
		}
		if err := os.WriteFile(workTexPath, content, 0644); err != nil {
			return "", "", &CompilationError{
				Message: fmt.Sprintf("failed to write LaTeX file to working directory: %s", workDir),
				Cause:   err,
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-halt-on-error", "-output-directory", workDir, workTexPath)
	var out strings.Builder
	cmd.Stdout = &out
	cmd.Stderr = &out
	runErr := cmd.Run()
	logOutput = out.String()

	pdfPath = filepath.Join(workDir, strings.TrimSuffix(texBaseName, ".tex")+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", logOutput, &CompilationError{
			Message:   "PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}
	if runErr != nil {
		return pdfPath, logOutput, &CompilationError{
			Message:   "compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}
	return pdfPath, logOutput, nil
}
