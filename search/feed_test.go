package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/pevans/tickernews/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const headlineFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Yahoo! Finance: TSLA News</title>
	<item>
		<title>In range</title>
		<link>https://finance.yahoo.com/news/in-range-1.html</link>
		<description>  Tesla shares rose. </description>
		<pubDate>Tue, 27 Feb 2024 14:00:00 +0000</pubDate>
	</item>
	<item>
		<title>Other domain</title>
		<link>https://www.example.com/news/tesla.html</link>
		<description>Elsewhere</description>
		<pubDate>Tue, 27 Feb 2024 15:00:00 +0000</pubDate>
	</item>
	<item>
		<title>Too old</title>
		<link>https://finance.yahoo.com/news/too-old.html</link>
		<description>Old news</description>
		<pubDate>Mon, 01 Jan 2024 09:00:00 +0000</pubDate>
	</item>
	<item>
		<title>On end date</title>
		<link>https://finance.yahoo.com/news/on-end.html</link>
		<description>Excluded by before:</description>
		<pubDate>Fri, 01 Mar 2024 09:00:00 +0000</pubDate>
	</item>
	<item>
		<title>Undated</title>
		<link>https://finance.yahoo.com/news/undated.html</link>
		<description>No date</description>
	</item>
</channel>
</rss>`

func newFeedServer(t *testing.T, body string) (*httptest.Server, *[]string) {
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.String())
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &requested
}

// TestFeedCollector_FiltersDomainAndRange verifies items outside the domain
// or date range are dropped
func TestFeedCollector_FiltersDomainAndRange(t *testing.T) {
	srv, requested := newFeedServer(t, headlineFeed)

	collector := NewFeedCollector(srv.Client(), "")
	collector.URLTemplate = srv.URL + "/rss?s=%s"

	items, err := collector.Collect(context.Background(), "tsla", "https://finance.yahoo.com/news", start, end, 1)
	require.NoError(t, err)

	assert.Equal(t, []Item{
		{URL: "https://finance.yahoo.com/news/in-range-1.html", Summary: "Tesla shares rose."},
		{URL: "https://finance.yahoo.com/news/undated.html", Summary: "No date"},
	}, items)
	require.Len(t, *requested, 1)
	assert.Equal(t, "/rss?s=tsla", (*requested)[0])
}

// TestFeedCollector_Limit verifies the page limit caps the item count
func TestFeedCollector_Limit(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>T</title>`)
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<item><title>%d</title><link>https://finance.yahoo.com/news/%d.html</link></item>`, i, i)
	}
	b.WriteString(`</channel></rss>`)
	srv, _ := newFeedServer(t, b.String())

	collector := NewFeedCollector(srv.Client(), "")
	collector.URLTemplate = srv.URL + "/rss?s=%s"

	items, err := collector.Collect(context.Background(), "tsla", "finance.yahoo.com/news", start, end, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2*scraper.PageSize)
}

// TestFeedCollector_InvalidMaxPages verifies the precondition is checked
// before any request
func TestFeedCollector_InvalidMaxPages(t *testing.T) {
	srv, requested := newFeedServer(t, headlineFeed)

	collector := NewFeedCollector(srv.Client(), "")
	collector.URLTemplate = srv.URL + "/rss?s=%s"

	_, err := collector.Collect(context.Background(), "tsla", "d", start, end, 0)
	assert.ErrorIs(t, err, scraper.ErrInvalidArgument)
	assert.Empty(t, *requested)
}

// TestFeedCollector_InvalidFeed verifies unparseable feeds fail
func TestFeedCollector_InvalidFeed(t *testing.T) {
	srv, _ := newFeedServer(t, "this is not a feed")

	collector := NewFeedCollector(srv.Client(), "")
	collector.URLTemplate = srv.URL + "/rss?s=%s"

	_, err := collector.Collect(context.Background(), "tsla", "d", start, end, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, scraper.ErrNetworkFailure)
	assert.Contains(t, err.Error(), "failed to parse feed")
}

// TestDomainMatcher verifies the scheme is ignored
func TestDomainMatcher(t *testing.T) {
	match := domainMatcher("https://finance.yahoo.com/news")

	assert.True(t, match("https://finance.yahoo.com/news/a.html"))
	assert.True(t, match("http://finance.yahoo.com/news/a.html"))
	assert.False(t, match("https://finance.yahoo.com/video/a.html"))
}

// TestInRange_Boundaries verifies the range is start-inclusive and
// end-exclusive
func TestInRange_Boundaries(t *testing.T) {
	atStart := start
	atEnd := end
	justBefore := end.Add(-time.Second)

	assert.True(t, inRange(&gofeed.Item{PublishedParsed: &atStart}, start, end))
	assert.True(t, inRange(&gofeed.Item{PublishedParsed: &justBefore}, start, end))
	assert.False(t, inRange(&gofeed.Item{PublishedParsed: &atEnd}, start, end))
	assert.True(t, inRange(&gofeed.Item{UpdatedParsed: &atStart}, start, end), "should fall back to updated time")
}
