package search

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/pevans/tickernews/scraper"
)

// DefaultFeedURL is the Yahoo Finance per-ticker headline feed. The %s verb
// receives the escaped term.
const DefaultFeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US"

// FeedCollector discovers articles from a per-ticker RSS or Atom headline
// feed instead of a search engine. Only items linking into the domain and
// published within the date range are kept. The end is exclusive, so with the
// default range items published today are dropped, as with the search engine.
type FeedCollector struct {
	parser *gofeed.Parser

	// URLTemplate is the feed URL with one %s for the term; it defaults to
	// DefaultFeedURL.
	URLTemplate string
}

// NewFeedCollector creates a feed collector using client for HTTP. A nil
// client uses gofeed's default.
func NewFeedCollector(client *http.Client, userAgent string) *FeedCollector {
	fp := gofeed.NewParser()
	fp.Client = client
	if userAgent != "" {
		fp.UserAgent = userAgent
	}
	return &FeedCollector{
		parser:      fp,
		URLTemplate: DefaultFeedURL,
	}
}

// Collect fetches the feed for term and returns at most
// maxPages*scraper.PageSize matching items in feed order.
func (f *FeedCollector) Collect(
	ctx context.Context,
	term, domain string,
	start, end time.Time,
	maxPages int,
) ([]Item, error) {
	if maxPages < 1 {
		return nil, fmt.Errorf("%w: max pages must be a positive integer, got %d", scraper.ErrInvalidArgument, maxPages)
	}

	start, end = ResolveRange(start, end, time.Now())
	feedURL := fmt.Sprintf(f.URLTemplate, url.QueryEscape(term))

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		log.Printf("WARN: Feed %s failed: %v", feedURL, err)
		return nil, &scraper.FetchError{URL: feedURL, Err: fmt.Errorf("failed to parse feed: %w", err)}
	}

	limit := maxPages * scraper.PageSize
	match := domainMatcher(domain)

	items := make([]Item, 0)
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		if entry.Link == "" || !match(entry.Link) {
			continue
		}
		if !inRange(entry, start, end) {
			continue
		}
		items = append(items, Item{
			URL:     entry.Link,
			Summary: strings.TrimSpace(entry.Description),
		})
	}

	return items, nil
}

// domainMatcher mimics the search engine's inurl: operator: a link matches
// when it contains the domain without its scheme.
func domainMatcher(domain string) func(string) bool {
	needle := domain
	if i := strings.Index(needle, "://"); i >= 0 {
		needle = needle[i+3:]
	}
	return func(link string) bool {
		return strings.Contains(link, needle)
	}
}

// inRange reports whether the item was published in [start, end). Items
// without a date are kept.
func inRange(entry *gofeed.Item, start, end time.Time) bool {
	published := entry.PublishedParsed
	if published == nil {
		published = entry.UpdatedParsed
	}
	if published == nil {
		return true
	}
	return !published.Before(start) && published.Before(end)
}
