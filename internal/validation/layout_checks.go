package validation

import (
	"fmt"

	"github.com/jonathan/portfolio/internal/layout"
	"github.com/jonathan/portfolio/internal/types"
)

// Violation types
const (
	ViolationPageOverflow  = "page_overflow"
	ViolationPageMismatch  = "page_count_mismatch"
	ViolationBottomMargin  = "bottom_margin"
	ViolationSplitBlock    = "split_block"
	ViolationOutsideMargin = "outside_margin"
)

// CheckPageLimit returns a violation when pages exceeds maxPages; maxPages <= 0 means no limit
func CheckPageLimit(pages, maxPages int) *types.Violation {
	if maxPages <= 0 || pages <= maxPages {
		return nil
	}
	return &types.Violation{
		Type:      ViolationPageOverflow,
		Severity:  "error",
		Details:   fmt.Sprintf("Resume has %d pages, maximum is %d", pages, maxPages),
		PageCount: intPtr(pages),
		MaxPages:  intPtr(maxPages),
	}
}

// CheckLayout verifies a layout result against its geometry: every flowed
// run stays between Top and Bottom and inside the side margins, and no
// block is spread over two pages.
//
// A block that starts at the top row of its page, or is taller than the
// usable page, cannot be moved to avoid the bottom boundary. Its overflow
// is reported as a warning; any other run below Bottom is an error.
func CheckLayout(res layout.Result, geom layout.Geometry) []types.Violation {
	var violations []types.Violation
	blockPage := make(map[int]int)
	const eps = 1e-6
	oversized := oversizedBlocks(res, geom, eps)

	for _, p := range res.Placements {
		if p.Kind == layout.KindCaption {
			continue
		}

		if p.Y > geom.Bottom+eps {
			v := types.Violation{
				Type:             ViolationBottomMargin,
				Severity:         "error",
				Details:          fmt.Sprintf("%s on page %d ends at %.1f, below the %.1f boundary", p.Kind, p.Page, p.Y, geom.Bottom),
				AffectedSections: []string{string(p.Kind)},
			}
			if oversized[p.Block] {
				v.Severity = "warning"
				v.Details = fmt.Sprintf("%s on page %d does not fit on a single page and runs to %.1f", p.Kind, p.Page, p.Y)
			}
			violations = append(violations, v)
		}
		if p.X < geom.Margin-eps || p.X > geom.PageWidth-geom.Margin+eps {
			violations = append(violations, types.Violation{
				Type:             ViolationOutsideMargin,
				Severity:         "warning",
				Details:          fmt.Sprintf("%s on page %d starts at x=%.1f, outside the margins", p.Kind, p.Page, p.X),
				AffectedSections: []string{string(p.Kind)},
			})
		}

		if first, ok := blockPage[p.Block]; !ok {
			blockPage[p.Block] = p.Page
		} else if first != p.Page {
			violations = append(violations, types.Violation{
				Type:             ViolationSplitBlock,
				Severity:         "error",
				Details:          fmt.Sprintf("block %d (%s) continues from page %d onto page %d", p.Block, p.Kind, first, p.Page),
				AffectedSections: []string{string(p.Kind)},
			})
		}
	}
	return violations
}

// oversizedBlocks marks the blocks whose overflow no page break could avoid
func oversizedBlocks(res layout.Result, geom layout.Geometry, eps float64) map[int]bool {
	first := make(map[int]float64)
	last := make(map[int]float64)
	for _, p := range res.Placements {
		if p.Kind == layout.KindCaption {
			continue
		}
		if _, ok := first[p.Block]; !ok {
			first[p.Block] = p.Y
		}
		last[p.Block] = p.Y
	}

	out := make(map[int]bool)
	for block, top := range first {
		if top <= geom.Top+eps || last[block]-top+geom.LineHeight > geom.Bottom-geom.Top+eps {
			out[block] = true
		}
	}
	return out
}

func intPtr(i int) *int {
	return &i
}
