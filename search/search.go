package search

import (
	"context"
	"time"
)

// DefaultLookbackDays is how many calendar days back a search reaches when no
// start date is given.
const DefaultLookbackDays = 7

// DefaultMaxPages is the page limit used when callers have no preference.
const DefaultMaxPages = 3

// Item is one search result: the matched article URL and the snippet the
// search engine showed for it.
type Item struct {
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Collector discovers candidate articles for a term within a domain and date
// range. Results are returned in discovery order.
type Collector interface {
	Collect(ctx context.Context, term, domain string, start, end time.Time, maxPages int) ([]Item, error)
}

// ResolveRange fills a zero start or end from now: end defaults to today and
// start to DefaultLookbackDays calendar days before today. It is evaluated on
// every call.
func ResolveRange(start, end, now time.Time) (time.Time, time.Time) {
	today := truncateDay(now)
	if end.IsZero() {
		end = today
	}
	if start.IsZero() {
		start = today.AddDate(0, 0, -DefaultLookbackDays)
	}
	return start, end
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
