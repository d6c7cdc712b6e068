package search

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/tickernews/fetch"
	"github.com/pevans/tickernews/scraper"
)

// DefaultGoogleURL is the search endpoint queried by GoogleCollector.
const DefaultGoogleURL = "https://www.google.com/search"

// GoogleCollector pages through Google's news vertical, restricting results
// to one domain and date range.
type GoogleCollector struct {
	fetcher fetch.Fetcher
	config  scraper.SearchConfig

	// BaseURL is the search endpoint; it defaults to DefaultGoogleURL.
	BaseURL string
}

// NewGoogleCollector creates a collector. Empty selectors in config fall back
// to scraper.DefaultSearchConfig.
func NewGoogleCollector(fetcher fetch.Fetcher, config scraper.SearchConfig) *GoogleCollector {
	return &GoogleCollector{
		fetcher: fetcher,
		config:  config.WithDefaults(),
		BaseURL: DefaultGoogleURL,
	}
}

// BuildQuery combines the search term with a domain restriction and an
// after/before date filter.
func BuildQuery(term, domain string, start, end time.Time) string {
	return term +
		" inurl:" + domain +
		" after:" + start.Format(time.DateOnly) +
		" before:" + end.Format(time.DateOnly)
}

// PageURL returns the results page URL for page index page of query.
func PageURL(base, query string, page int) string {
	return base + "?q=" + url.QueryEscape(query) +
		"&tbm=nws&start=" + strconv.Itoa(scraper.PageSize*page)
}

// Collect requests up to maxPages result pages and returns every result card
// found, in page order then document order. It stops at the first page with
// no result cards. A zero start or end is resolved from the current time.
func (g *GoogleCollector) Collect(
	ctx context.Context,
	term, domain string,
	start, end time.Time,
	maxPages int,
) ([]Item, error) {
	if maxPages < 1 {
		return nil, fmt.Errorf("%w: max pages must be a positive integer, got %d", scraper.ErrInvalidArgument, maxPages)
	}

	start, end = ResolveRange(start, end, time.Now())
	query := BuildQuery(term, domain, start, end)

	var items []Item
	for page := 0; page < maxPages; page++ {
		pageURL := PageURL(g.BaseURL, query, page)

		doc, err := g.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		results := doc.Find(g.config.ResultSelector)
		if results.Length() == 0 {
			log.Printf("INFO: No results for %q on page %d, stopping", term, page)
			break
		}

		pageItems, err := g.extractPage(results, pageURL)
		if err != nil {
			return nil, err
		}
		items = append(items, pageItems...)
	}

	return items, nil
}

// extractPage reads the link and summary of every result card. The link
// selector may be written relative to the card or to the whole page (as in
// ".dbsr a"); both are matched within the card.
func (g *GoogleCollector) extractPage(results *goquery.Selection, pageURL string) ([]Item, error) {
	items := make([]Item, 0, results.Length())

	var extractErr error
	results.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		link := findInCard(card, g.config.LinkSelector).First()
		href, ok := link.Attr("href")
		if !ok {
			extractErr = &scraper.MissingElementError{URL: pageURL, Selector: g.config.LinkSelector}
			return false
		}

		summary := findInCard(card, g.config.SummarySelector).First()
		if summary.Length() == 0 {
			extractErr = &scraper.MissingElementError{URL: pageURL, Selector: g.config.SummarySelector}
			return false
		}

		items = append(items, Item{
			URL:     href,
			Summary: strings.TrimSpace(summary.Text()),
		})
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return items, nil
}

// findInCard matches selector against the card's descendants, falling back
// to the card and its descendants together so that selectors naming the
// card itself still resolve.
func findInCard(card *goquery.Selection, selector string) *goquery.Selection {
	if sel := card.Find(selector); sel.Length() > 0 {
		return sel
	}
	return card.AddSelection(card.Find("*")).Filter(selector)
}
