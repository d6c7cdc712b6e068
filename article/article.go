package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/tickernews/fetch"
	"github.com/pevans/tickernews/scraper"
)

// Detail holds the fields extracted from one article page.
type Detail struct {
	Date  time.Time `json:"date"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
}

// Extractor fetches article pages and extracts their details.
type Extractor struct {
	fetcher fetch.Fetcher
	config  scraper.ArticleConfig
}

// NewExtractor creates an extractor. Empty fields in config fall back to
// scraper.DefaultArticleConfig.
func NewExtractor(fetcher fetch.Fetcher, config scraper.ArticleConfig) *Extractor {
	return &Extractor{
		fetcher: fetcher,
		config:  config.WithDefaults(),
	}
}

// Fetch retrieves the article at url and extracts its details. Fetch and
// extraction errors are returned as-is; nothing is retried.
func (e *Extractor) Fetch(ctx context.Context, url string) (*Detail, error) {
	doc, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return Extract(doc, e.config, url)
}

// Extract pulls the date, title and body out of doc. Each selector must match
// at least one element; the first match is used.
func Extract(doc *goquery.Document, config scraper.ArticleConfig, url string) (*Detail, error) {
	dateSel, err := first(doc, config.DateSelector, url)
	if err != nil {
		return nil, err
	}
	titleSel, err := first(doc, config.TitleSelector, url)
	if err != nil {
		return nil, err
	}
	bodySel, err := first(doc, config.BodySelector, url)
	if err != nil {
		return nil, err
	}

	date, err := ParseDate(dateSel.Text(), config.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}

	return &Detail{
		Date:  date,
		Title: normalize(titleSel.Text()),
		Body:  normalize(bodySel.Text()),
	}, nil
}

// ParseDate parses an article timestamp such as "March 1, 2024, 9:05 AM"
// using layout. The result is in UTC.
func ParseDate(text, layout string) (time.Time, error) {
	text = strings.TrimSpace(text)
	date, err := time.Parse(layout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q does not match %q", scraper.ErrParseFailure, text, layout)
	}
	return date, nil
}

func first(doc *goquery.Document, selector, url string) (*goquery.Selection, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, &scraper.MissingElementError{URL: url, Selector: selector}
	}
	return sel, nil
}

// normalize collapses runs of whitespace into single spaces.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
