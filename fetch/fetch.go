package fetch

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/tickernews/scraper"
)

// DefaultUserAgent identifies tickernews to the sites it fetches.
const DefaultUserAgent = "tickernews/1.0 (ticker news collector)"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 10 * time.Second

// Fetcher retrieves a URL and returns its parsed document tree.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Options configures a fetcher.
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// New returns the fetcher for the named renderer: "http" (or empty) for a
// plain GET, "chrome" for a headless browser render.
func New(renderer string, opts Options) (Fetcher, error) {
	switch renderer {
	case "", "http":
		return NewHTTPFetcher(opts), nil
	case "chrome":
		return NewChromeFetcher(opts), nil
	default:
		return nil, fmt.Errorf("%w: unknown renderer %q", scraper.ErrInvalidArgument, renderer)
	}
}

// HTTPFetcher fetches documents with a plain HTTP GET.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher backed by net/http.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	opts = opts.withDefaults()
	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
	}
}

// Fetch performs a GET for url and parses the response body. Any failure is
// logged and returned as a *scraper.FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	doc, err := f.fetch(ctx, url)
	if err != nil {
		log.Printf("WARN: Fetch of %s failed: %v", url, err)
		return nil, &scraper.FetchError{URL: url, Err: err}
	}
	return doc, nil
}

func (f *HTTPFetcher) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}
