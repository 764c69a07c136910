package validation

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tsawler/tabula/reader"
)

// CountPDFPages reads the page tree of an in-memory PDF. The tabula reader
// works on files, so the document is spooled to a temporary file first.
func CountPDFPages(data []byte) (int, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return 0, &Error{Message: "not a PDF document"}
	}

	f, err := os.CreateTemp("", "portfolio-*.pdf")
	if err != nil {
		return 0, &Error{Message: "failed to spool PDF", Cause: err}
	}
	defer func() { _ = os.Remove(f.Name()) }()
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return 0, &Error{Message: "failed to spool PDF", Cause: err}
	}

	r, err := reader.NewReader(f)
	if err != nil {
		return 0, &Error{Message: "failed to parse PDF", Cause: err}
	}
	count, err := r.PageCount()
	if err != nil {
		return 0, &Error{Message: "failed to read PDF page tree", Cause: err}
	}
	return count, nil
}

// CountPDFPagesFile counts pages in the PDF at path, falling back to pdfinfo
// when the page tree cannot be parsed.
func CountPDFPagesFile(pdfPath string) (int, error) {
	count, err := countPagesWithReader(pdfPath)
	if err == nil {
		return count, nil
	}
	if _, statErr := os.Stat(pdfPath); statErr != nil {
		return 0, &Error{Message: fmt.Sprintf("failed to read PDF: %s", pdfPath), Cause: statErr}
	}

	if count, pdfinfoErr := countPagesWithPdfinfo(pdfPath); pdfinfoErr == nil {
		return count, nil
	}
	return 0, &Error{
		Message: "failed to count PDF pages and pdfinfo is not available. Please install poppler-utils",
		Cause:   err,
	}
}

func countPagesWithReader(pdfPath string) (int, error) {
	r, err := reader.Open(pdfPath)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Close() }()
	return r.PageCount()
}

// countPagesWithPdfinfo uses pdfinfo (poppler-utils) to count PDF pages
func countPagesWithPdfinfo(pdfPath string) (int, error) {
	output, err := exec.Command("pdfinfo", pdfPath).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo command failed: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		if parts := strings.Fields(line); len(parts) >= 2 {
			if count, err := strconv.Atoi(parts[1]); err == nil {
				return count, nil
			}
		}
	}
	return 0, fmt.Errorf("could not parse page count from pdfinfo output")
}
