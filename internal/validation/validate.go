package validation

import (
	"fmt"

	"github.com/jonathan/portfolio/internal/layout"
	"github.com/jonathan/portfolio/internal/types"
)

// ValidateArtifact checks a rendered PDF: its page objects must agree with the
// layout result, it must fit maxPages and the layout must respect the geometry.
func ValidateArtifact(data []byte, res layout.Result, geom layout.Geometry, maxPages int) (*types.Violations, error) {
	pages, err := CountPDFPages(data)
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}

	var all []types.Violation
	if pages != res.Pages {
		all = append(all, types.Violation{
			Type:      ViolationPageMismatch,
			Severity:  "error",
			Details:   fmt.Sprintf("PDF has %d page objects but layout produced %d pages", pages, res.Pages),
			PageCount: intPtr(pages),
		})
	}
	if v := CheckPageLimit(pages, maxPages); v != nil {
		all = append(all, *v)
	}
	all = append(all, CheckLayout(res, geom)...)

	return &types.Violations{Violations: all}, nil
}

// HasErrors reports whether any violation has error severity
func HasErrors(v *types.Violations) bool {
	if v == nil {
		return false
	}
	for _, violation := range v.Violations {
		if violation.Severity == "error" {
			return true
		}
	}
	return false
}
