package overview

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pevans/tickernews/article"
	"github.com/pevans/tickernews/search"
)

// DefaultDomain is the news listing path searches are restricted to.
const DefaultDomain = "https://finance.yahoo.com/news"

// Mode selects how the builder reacts to a failed search or article.
type Mode int

const (
	// Strict aborts the whole overview on the first failure.
	Strict Mode = iota
	// BestEffort records the failure and moves on to the next article or
	// ticker.
	BestEffort
)

// Row is one article about one ticker.
type Row struct {
	Ticker  string    `json:"ticker"`
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	URL     string    `json:"url"`
}

// Failure records a ticker search or an article fetch that did not produce
// a row. URL is empty when the search itself failed.
type Failure struct {
	Ticker string `json:"ticker"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func newFailure(ticker, url string, err error) Failure {
	return Failure{
		Ticker: strings.ToUpper(ticker),
		URL:    url,
		Reason: err.Error(),
		Err:    err,
	}
}

func (f Failure) Error() string {
	if f.URL == "" {
		return fmt.Sprintf("%s: search failed: %v", f.Ticker, f.Err)
	}
	return fmt.Sprintf("%s: %s: %v", f.Ticker, f.URL, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Overview is the result of one Build call. Rows are sorted by ticker, then
// date.
type Overview struct {
	RunID    uuid.UUID `json:"run_id"`
	Rows     []Row     `json:"rows"`
	Failures []Failure `json:"failures,omitempty"`
}

// Options controls a Build call. Zero Start and End are resolved when Build
// runs: End to today and Start to a week earlier. Zero MaxPages means
// search.DefaultMaxPages.
type Options struct {
	Start    time.Time
	End      time.Time
	MaxPages int
	Mode     Mode
}

// Builder discovers and fetches articles for a list of tickers.
type Builder struct {
	collector search.Collector
	extractor *article.Extractor

	// Domain restricts the search; it defaults to DefaultDomain.
	Domain string
	// Now supplies the current time for default dates.
	Now func() time.Time
}

// NewBuilder creates a builder.
func NewBuilder(collector search.Collector, extractor *article.Extractor) *Builder {
	return &Builder{
		collector: collector,
		extractor: extractor,
		Domain:    DefaultDomain,
		Now:       time.Now,
	}
}

// NewRow combines a search result with the article it points to. The summary
// and URL come from the search result; the article body is not kept.
func NewRow(ticker string, item search.Item, detail *article.Detail) Row {
	return Row{
		Ticker:  strings.ToUpper(ticker),
		Date:    detail.Date,
		Title:   detail.Title,
		Summary: item.Summary,
		URL:     item.URL,
	}
}

// SortRows orders rows by ticker then date. Ties keep their input order.
func SortRows(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(a.Ticker, b.Ticker); c != 0 {
			return c
		}
		return a.Date.Compare(b.Date)
	})
}

// Build searches for each ticker in order, fetches every article found and
// returns the rows sorted by ticker and date. In Strict mode the first
// failure is returned and no overview is produced.
func (b *Builder) Build(ctx context.Context, tickers []string, opts Options) (*Overview, error) {
	start, end := search.ResolveRange(opts.Start, opts.End, b.Now())
	maxPages := opts.MaxPages
	if maxPages == 0 {
		maxPages = search.DefaultMaxPages
	}

	ov := &Overview{RunID: uuid.New(), Rows: []Row{}}
	log.Printf("INFO: Overview %s: %d tickers from %s to %s",
		ov.RunID, len(tickers), start.Format(time.DateOnly), end.Format(time.DateOnly))

	for _, ticker := range tickers {
		items, err := b.collector.Collect(ctx, ticker, b.Domain, start, end, maxPages)
		if err != nil {
			failure := newFailure(ticker, "", err)
			if opts.Mode == Strict {
				return nil, failure
			}
			log.Printf("WARN: Overview %s: %v", ov.RunID, failure)
			ov.Failures = append(ov.Failures, failure)
			continue
		}

		built := 0
		for _, item := range items {
			detail, err := b.extractor.Fetch(ctx, item.URL)
			if err != nil {
				failure := newFailure(ticker, item.URL, err)
				if opts.Mode == Strict {
					return nil, failure
				}
				log.Printf("WARN: Overview %s: %v", ov.RunID, failure)
				ov.Failures = append(ov.Failures, failure)
				continue
			}

			ov.Rows = append(ov.Rows, NewRow(ticker, item, detail))
			built++
		}

		log.Printf("INFO: Overview %s: %s done, %d of %d results built", ov.RunID, strings.ToUpper(ticker), built, len(items))
	}

	SortRows(ov.Rows)

	return ov, nil
}
