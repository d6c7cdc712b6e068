package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"github.com/pevans/tickernews/scraper"
)

// ChromeFetcher renders pages in a headless Chrome before parsing them, for
// sites that build their markup with JavaScript.
type ChromeFetcher struct {
	opts     Options
	execPath string
}

// NewChromeFetcher creates a fetcher that drives a local Chrome or Chromium
// through chromedp. A browser is started per fetch.
func NewChromeFetcher(opts Options) *ChromeFetcher {
	return &ChromeFetcher{opts: opts.withDefaults()}
}

// WithExecPath pins the browser binary instead of letting chromedp search for
// one.
func (f *ChromeFetcher) WithExecPath(path string) *ChromeFetcher {
	f.execPath = path
	return f
}

func (f *ChromeFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", true),
		chromedp.UserAgent(f.opts.UserAgent),
	)
	if f.execPath != "" {
		opts = append(opts, chromedp.ExecPath(f.execPath))
	}
	return opts
}

// Fetch navigates to url, waits for the body and parses the rendered HTML.
func (f *ChromeFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	doc, err := f.render(ctx, url)
	if err != nil {
		log.Printf("WARN: Render of %s failed: %v", url, err)
		return nil, &scraper.FetchError{URL: url, Err: err}
	}
	return doc, nil
}

func (f *ChromeFetcher) render(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, f.allocatorOptions()...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp failed to render page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}
