// Package snapshot prints a served portfolio page to PDF with headless Chrome.
package snapshot

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a whole PrintPage call
const DefaultTimeout = 30 * time.Second

// Result is one printed page
type Result struct {
	URL   string
	Title string
	HTML  string
	PDF   []byte
}

// Options tune PrintPage
type Options struct {
	Timeout time.Duration
	// WaitFor is a selector that must be visible before printing; "body" when empty
	WaitFor string
	// Landscape prints the page sideways
	Landscape bool
	Verbose   bool
}

// PrintPage loads target in a headless browser and prints it to PDF.
// Requires Chrome/Chromium to be installed on the system.
func PrintPage(ctx context.Context, target string, opts Options) (*Result, error) {
	if err := checkURL(target); err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.WaitFor == "" {
		opts.WaitFor = "body"
	}
	if opts.Verbose {
		log.Printf("[SNAPSHOT] Starting headless browser for: %s", target)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	res := &Result{URL: target}
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.WaitVisible(opts.WaitFor),
		chromedp.OuterHTML("html", &res.HTML),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithLandscape(opts.Landscape).
				Do(ctx)
			if err != nil {
				return err
			}
			res.PDF = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &Error{URL: target, Message: "browser print failed", Cause: err}
	}

	res.Title = PageTitle(res.HTML)
	if opts.Verbose {
		log.Printf("[SNAPSHOT] Printed %q: %d bytes of HTML, %d bytes of PDF", res.Title, len(res.HTML), len(res.PDF))
	}
	return res, nil
}

// PageTitle returns the trimmed <title> text, or "" when html has none
func PageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("head title").First().Text())
}

// FileName derives a PDF name from a page title, e.g. "Alex Rivera | Portfolio" -> "Alex_Rivera_Portfolio.pdf"
func FileName(title string) string {
	fields := strings.FieldsFunc(title, func(r rune) bool {
		return !(r == '-' || r == '.' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r > 127)
	})
	if len(fields) == 0 {
		return "snapshot.pdf"
	}
	return strings.Join(fields, "_") + ".pdf"
}

func checkURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return &Error{URL: target, Message: "invalid URL", Cause: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &Error{URL: target, Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &Error{URL: target, Message: "URL has no host"}
	}
	return nil
}
